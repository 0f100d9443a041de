// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package payout keeps the queue of validators awaiting a payout pass and the
// history of rewards paid to each account.
package payout

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/saita"
)

var (
	slotPending    = storage.Slot("pending-payouts")
	slotBeneficial = storage.Slot("beneficial-reward-record")
)

type Service struct {
	pending    *storage.AddressSet
	beneficial *storage.Mapping[saita.Address, *uint256.Int]
}

func New(sctx *storage.Context) *Service {
	return &Service{
		pending:    storage.NewAddressSet(sctx, slotPending),
		beneficial: storage.NewMapping[saita.Address, *uint256.Int](sctx, slotBeneficial),
	}
}

// Pending lists queued validators, ascending.
func (s *Service) Pending() ([]saita.Address, error) {
	return s.pending.Members()
}

func (s *Service) IsPending(validator saita.Address) (bool, error) {
	return s.pending.Contains(validator)
}

// Enqueue adds validator and reports false when it was already queued.
func (s *Service) Enqueue(validator saita.Address) (bool, error) {
	return s.pending.Add(validator)
}

func (s *Service) Dequeue(validator saita.Address) error {
	_, err := s.pending.Remove(validator)
	return err
}

// Beneficial returns the total reward ever paid to account.
func (s *Service) Beneficial(account saita.Address) (*uint256.Int, error) {
	return s.beneficial.Get(account)
}

// Record adds amount to the reward history of account.
func (s *Service) Record(account saita.Address, amount *uint256.Int) error {
	current, err := s.beneficial.Get(account)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(current, amount)
	if err != nil {
		return err
	}
	return s.beneficial.Set(account, sum)
}
