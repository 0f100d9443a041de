// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/saitachain/staking/saita"
)

type change struct {
	key   storageKey
	value rlp.RawValue
}

// Stage abstracts changes on the state, ordered by key.
type Stage struct {
	state   *State
	changes []change
}

func newStage(state *State, changes map[storageKey]rlp.RawValue) *Stage {
	sorted := make([]change, 0, len(changes))
	for k, v := range changes {
		sorted = append(sorted, change{k, v})
	}
	slices.SortFunc(sorted, func(a, b change) int {
		return bytes.Compare(a.key.dbKey(), b.key.dbKey())
	})
	return &Stage{state: state, changes: sorted}
}

// Len returns the count of changed entries.
func (s *Stage) Len() int {
	return len(s.changes)
}

// Hash computes the digest of all changes. Replicas applying the same calls
// in the same order produce the same hash.
func (s *Stage) Hash() saita.Bytes32 {
	return saita.Blake2bFn(func(w io.Writer) {
		for _, c := range s.changes {
			w.Write(c.key.dbKey())
			rlp.Encode(w, []byte(c.value))
		}
	})
}

// Commit writes all changes into the store atomically.
func (s *Stage) Commit() (saita.Bytes32, error) {
	bulk := s.state.store.Bulk()
	for _, c := range s.changes {
		var err error
		if len(c.value) == 0 {
			err = bulk.Delete(c.key.dbKey())
		} else {
			err = bulk.Put(c.key.dbKey(), c.value)
		}
		if err != nil {
			return saita.Bytes32{}, &Error{err}
		}
	}
	if err := bulk.Write(); err != nil {
		return saita.Bytes32{}, &Error{err}
	}
	s.state.reset(s.changes)
	return s.Hash(), nil
}
