// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package matching

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/storage"
)

var slotLedger = storage.Slot("matching-pool")

// Service loads and stores the matching ledger singleton.
type Service struct {
	ledger *storage.Value[*Ledger]
}

func New(sctx *storage.Context) *Service {
	return &Service{ledger: storage.NewValue[*Ledger](sctx, slotLedger)}
}

// Get returns the current ledger.
func (s *Service) Get() (*Ledger, error) {
	l, err := s.ledger.Get()
	if err != nil {
		return nil, err
	}
	l.Stake.normalize()
	l.Unstake.normalize()
	return l, nil
}

// Update applies fn to the ledger and stores the result. Nothing is stored when fn fails.
func (s *Service) Update(fn func(l *Ledger) error) error {
	l, err := s.Get()
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	return s.ledger.Set(l)
}

func (s *Service) AddStake(amount *uint256.Int) error {
	return s.Update(func(l *Ledger) error { return l.AddStake(amount) })
}

func (s *Service) AddUnstake(amount *uint256.Int) error {
	return s.Update(func(l *Ledger) error { return l.AddUnstake(amount) })
}
