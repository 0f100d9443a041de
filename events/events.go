// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/saita"
)

// Event is a notification emitted by a native module.
// Unused fields are left zero.
type Event struct {
	Module    string
	Name      string
	Era       saita.EraIndex
	Account   saita.Address
	Validator saita.Address
	Amount    *uint256.Int
	Value     uint64
}

// Emitter receives events from modules.
type Emitter interface {
	Emit(ev *Event)
}

// Recorder buffers the events of the current block. Events of a reverted
// call are dropped with Truncate.
type Recorder struct {
	events []*Event
}

func (r *Recorder) Emit(ev *Event) {
	r.events = append(r.events, ev)
}

// Len returns the count of buffered events.
func (r *Recorder) Len() int {
	return len(r.events)
}

// Truncate drops events emitted after the first n.
func (r *Recorder) Truncate(n int) {
	if n < len(r.events) {
		r.events = r.events[:n]
	}
}

// Since returns events emitted after the first n.
func (r *Recorder) Since(n int) []*Event {
	if n >= len(r.events) {
		return nil
	}
	return r.events[n:]
}

// Drain returns all buffered events and resets the recorder.
func (r *Recorder) Drain() []*Event {
	evs := r.events
	r.events = nil
	return evs
}

// Discard is an emitter dropping everything.
var Discard Emitter = discard{}

type discard struct{}

func (discard) Emit(*Event) {}
