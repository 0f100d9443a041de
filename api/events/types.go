// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/saitachain/staking/api/utils"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/saita"
)

type Event struct {
	BlockNumber *uint32        `json:"blockNumber,omitempty"`
	Index       *uint32        `json:"index,omitempty"`
	Era         uint32         `json:"era"`
	Module      string         `json:"module"`
	Name        string         `json:"name"`
	Account     *saita.Address `json:"account,omitempty"`
	Validator   *saita.Address `json:"validator,omitempty"`
	Amount      *string        `json:"amount,omitempty"`
	Value       uint64         `json:"value"`
}

type Range struct {
	From *uint32 `json:"from"`
	To   *uint32 `json:"to"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

type EventFilter struct {
	Range     *Range         `json:"range"`
	Module    string         `json:"module"`
	Name      string         `json:"name"`
	Account   *saita.Address `json:"account"`
	Validator *saita.Address `json:"validator"`
	Options   *Options       `json:"options"`
	Order     eventdb.Order  `json:"order"`
}

func optionalAddress(addr saita.Address) *saita.Address {
	if addr.IsZero() {
		return nil
	}
	return &addr
}

// ConvertEvent renders an event emitted by a call.
func ConvertEvent(ev *events.Event) *Event {
	out := &Event{
		Era:       uint32(ev.Era),
		Module:    ev.Module,
		Name:      ev.Name,
		Account:   optionalAddress(ev.Account),
		Validator: optionalAddress(ev.Validator),
		Value:     ev.Value,
	}
	if ev.Amount != nil {
		amount := utils.FormatAmount(ev.Amount)
		out.Amount = &amount
	}
	return out
}

// ConvertStoredEvent renders a committed event.
func ConvertStoredEvent(ev *eventdb.Event) *Event {
	out := ConvertEvent(&events.Event{
		Module:    ev.Module,
		Name:      ev.Name,
		Era:       ev.Era,
		Account:   ev.Account,
		Validator: ev.Validator,
		Amount:    ev.Amount,
		Value:     ev.Value,
	})
	blockNumber, index := ev.BlockNumber, ev.Index
	out.BlockNumber = &blockNumber
	out.Index = &index
	return out
}

func convertFilter(f *EventFilter) *eventdb.EventFilter {
	filter := &eventdb.EventFilter{
		Module:    f.Module,
		Name:      f.Name,
		Account:   f.Account,
		Validator: f.Validator,
		Order:     f.Order,
	}
	if f.Range != nil {
		r := &eventdb.Range{}
		if f.Range.From != nil {
			r.From = *f.Range.From
		}
		switch {
		case f.Range.To != nil:
			r.To = *f.Range.To
		case r.From == 0:
			r = nil
		default:
			// To below From leaves the range open ended
			r.To = 0
		}
		filter.Range = r
	}
	if f.Options != nil {
		filter.Options = &eventdb.Options{Offset: f.Options.Offset, Limit: f.Options.Limit}
	}
	return filter
}
