// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package bonds tracks how much each depositor bonded through the pool.
package bonds

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/saita"
)

var slotBonds = storage.Slot("bonds")

type Ledger struct {
	bonds *storage.Mapping[saita.Address, *uint256.Int]
}

func New(sctx *storage.Context) *Ledger {
	return &Ledger{bonds: storage.NewMapping[saita.Address, *uint256.Int](sctx, slotBonds)}
}

// Get returns the amount bonded by who, zero if none.
func (l *Ledger) Get(who saita.Address) (*uint256.Int, error) {
	return l.bonds.Get(who)
}

// Credit adds amount to the bond of who.
func (l *Ledger) Credit(who saita.Address, amount *uint256.Int) error {
	current, err := l.bonds.Get(who)
	if err != nil {
		return err
	}
	sum, err := fixedpoint.Add(current, amount)
	if err != nil {
		return err
	}
	return l.set(who, sum)
}

// Debit takes amount from the bond of who. The entry is removed when it
// reaches zero.
func (l *Ledger) Debit(who saita.Address, amount *uint256.Int) error {
	exists, err := l.bonds.Exists(who)
	if err != nil {
		return err
	}
	if !exists {
		return reverts.ErrNotBonded
	}
	current, err := l.bonds.Get(who)
	if err != nil {
		return err
	}
	if current.Lt(amount) {
		return reverts.ErrInsufficientBonded
	}
	return l.set(who, new(uint256.Int).Sub(current, amount))
}

func (l *Ledger) set(who saita.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		l.bonds.Delete(who)
		return nil
	}
	return l.bonds.Set(who, amount)
}
