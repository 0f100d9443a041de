// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"context"

	"github.com/saitachain/staking/api/events"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/saita"
)

// eventReader walks committed blocks from a position and returns the
// matching events of the blocks not read yet.
type eventReader struct {
	db     *eventdb.EventDB
	best   func() (uint32, bool)
	filter eventdb.EventFilter
	next   uint32
}

type readerFilter struct {
	Module    string
	Name      string
	Account   *saita.Address
	Validator *saita.Address
}

func newEventReader(db *eventdb.EventDB, best func() (uint32, bool), next uint32, f readerFilter) *eventReader {
	return &eventReader{
		db:   db,
		best: best,
		filter: eventdb.EventFilter{
			Module:    f.Module,
			Name:      f.Name,
			Account:   f.Account,
			Validator: f.Validator,
			Order:     eventdb.ASC,
		},
		next: next,
	}
}

// Read returns the events of blocks [next, best] and moves past them.
func (r *eventReader) Read(ctx context.Context) ([]*events.Event, error) {
	best, ok := r.best()
	if !ok || best < r.next {
		return nil, nil
	}
	filter := r.filter
	filter.Range = &eventdb.Range{From: r.next, To: best}
	evs, err := r.db.FilterEvents(ctx, &filter)
	if err != nil {
		return nil, err
	}
	r.next = best + 1

	msgs := make([]*events.Event, 0, len(evs))
	for _, ev := range evs {
		msgs = append(msgs, events.ConvertStoredEvent(ev))
	}
	return msgs, nil
}
