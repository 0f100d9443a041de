// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package unlocking keeps the withdrawal requests of liquid stakers. Each
// account owns a list of chunks ordered by target era.
package unlocking

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/saita"
)

var slotChunks = storage.Slot("unlockings")

// Chunk is an amount that becomes claimable at TargetEra.
type Chunk struct {
	Value     *uint256.Int
	TargetEra saita.EraIndex
}

type Chunks []Chunk

// Merge adds value to the chunk targeting era, or appends a new chunk.
func (c Chunks) Merge(value *uint256.Int, era saita.EraIndex) (Chunks, error) {
	for i := range c {
		if c[i].TargetEra != era {
			continue
		}
		sum, err := fixedpoint.Add(c[i].Value, value)
		if err != nil {
			return nil, err
		}
		merged := append(Chunks(nil), c...)
		merged[i].Value = sum
		return merged, nil
	}
	return append(append(Chunks(nil), c...), Chunk{Value: new(uint256.Int).Set(value), TargetEra: era}), nil
}

// Partition splits the chunks into the sum of those due at current and the rest.
func (c Chunks) Partition(current saita.EraIndex) (due *uint256.Int, kept Chunks, err error) {
	due = fixedpoint.Zero()
	for _, chunk := range c {
		if chunk.TargetEra > current {
			kept = append(kept, chunk)
			continue
		}
		if due, err = fixedpoint.Add(due, chunk.Value); err != nil {
			return nil, nil, err
		}
	}
	return due, kept, nil
}

// Total sums all chunks.
func (c Chunks) Total() (*uint256.Int, error) {
	total, _, err := c.Partition(^saita.EraIndex(0))
	return total, err
}

// Repository stores the chunks of every account.
type Repository struct {
	chunks *storage.Mapping[saita.Address, Chunks]
}

func New(sctx *storage.Context) *Repository {
	return &Repository{chunks: storage.NewMapping[saita.Address, Chunks](sctx, slotChunks)}
}

// Get returns the chunks of account. ok is false when the account has none.
func (r *Repository) Get(account saita.Address) (chunks Chunks, ok bool, err error) {
	if chunks, err = r.chunks.Get(account); err != nil {
		return nil, false, err
	}
	return chunks, len(chunks) > 0, nil
}

// Set replaces the chunks of account. An empty list removes the entry.
func (r *Repository) Set(account saita.Address, chunks Chunks) error {
	if len(chunks) == 0 {
		r.chunks.Delete(account)
		return nil
	}
	return r.chunks.Set(account, chunks)
}
