// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/saita"
)

// IndividualExposure is the stake of one nominator behind a validator.
type IndividualExposure struct {
	Who   saita.Address
	Value *uint256.Int
}

// Exposure is the stake backing a validator in an era.
type Exposure struct {
	Total  *uint256.Int
	Own    *uint256.Int
	Others []IndividualExposure
}

// IsEmpty reports whether no stake backs the validator.
func (e *Exposure) IsEmpty() bool {
	return e == nil || e.Total == nil || e.Total.IsZero()
}

// ValidatorPoints pairs a validator with its era points.
type ValidatorPoints struct {
	Validator saita.Address
	Points    uint32
}

// EraRewardPoints are the points earned by validators in an era, kept sorted by validator.
type EraRewardPoints struct {
	Total      uint32
	Individual []ValidatorPoints
}

// Points returns the points of validator.
func (p *EraRewardPoints) Points(validator saita.Address) uint32 {
	for _, vp := range p.Individual {
		if vp.Validator == validator {
			return vp.Points
		}
	}
	return 0
}

func (p *EraRewardPoints) add(validator saita.Address, points uint32) {
	p.Total += points
	for i := range p.Individual {
		if p.Individual[i].Validator == validator {
			p.Individual[i].Points += points
			return
		}
	}
	i := 0
	for i < len(p.Individual) && p.Individual[i].Validator.Compare(validator) < 0 {
		i++
	}
	p.Individual = append(p.Individual, ValidatorPoints{})
	copy(p.Individual[i+1:], p.Individual[i:])
	p.Individual[i] = ValidatorPoints{validator, points}
}

// Validator is a registered validator.
type Validator struct {
	Commission uint32 // percent
	SelfBond   *uint256.Int
}

// UnlockChunk is bonded value that becomes withdrawable at Era.
type UnlockChunk struct {
	Value *uint256.Int
	Era   saita.EraIndex
}

// Ledger tracks the bonded funds of a stash.
type Ledger struct {
	Total     *uint256.Int
	Active    *uint256.Int
	Unlocking []UnlockChunk
}

// IsEmpty reports whether the stash has no ledger.
func (l *Ledger) IsEmpty() bool {
	return l == nil || l.Total == nil || l.Total.IsZero()
}
