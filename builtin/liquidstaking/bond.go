// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/saita"
)

// Bond bonds amount of the pool custody balance on behalf of who. The first
// bond of the pool creates its stash, later ones extend it.
func (l *LiquidStaking) Bond(who saita.Address, amount *uint256.Int) error {
	ledger, err := l.staking.Ledger(l.params.Account)
	if err != nil {
		return err
	}
	if ledger.IsEmpty() {
		err = l.staking.Bond(l.params.Account, amount)
	} else {
		err = l.staking.BondExtra(l.params.Account, amount)
	}
	if err != nil {
		return err
	}
	if err := l.bonds.Credit(who, amount); err != nil {
		return err
	}
	return l.emitWithEra("Bonded", who, amount)
}

// BondExtra extends the pool stash by amount on behalf of who.
func (l *LiquidStaking) BondExtra(who saita.Address, amount *uint256.Int) error {
	if err := l.staking.BondExtra(l.params.Account, amount); err != nil {
		return err
	}
	if err := l.bonds.Credit(who, amount); err != nil {
		return err
	}
	return l.emitWithEra("BondedExtra", who, amount)
}

// Unbond schedules amount of the pool stash for unlocking. who can unbond
// no more than it bonded.
func (l *LiquidStaking) Unbond(who saita.Address, amount *uint256.Int) error {
	if err := l.bonds.Debit(who, amount); err != nil {
		return err
	}
	if err := l.staking.Unbond(l.params.Account, amount); err != nil {
		return err
	}
	return l.emitWithEra("Unbonded", who, amount)
}

// Rebond moves up to amount of the unlocking pool stash back to active and
// credits who with what was actually rebonded.
func (l *LiquidStaking) Rebond(who saita.Address, amount *uint256.Int) error {
	if err := l.requireStaked(who); err != nil {
		return err
	}
	before, err := l.staking.Ledger(l.params.Account)
	if err != nil {
		return err
	}
	if err := l.staking.Rebond(l.params.Account, amount); err != nil {
		return err
	}
	after, err := l.staking.Ledger(l.params.Account)
	if err != nil {
		return err
	}
	rebonded := new(uint256.Int).Sub(after.Active, before.Active)
	if err := l.bonds.Credit(who, rebonded); err != nil {
		return err
	}
	return l.emitWithEra("Rebonded", who, rebonded)
}

// WithdrawUnbonded releases the unlocked part of the pool stash. Anyone may call it.
func (l *LiquidStaking) WithdrawUnbonded(who saita.Address) error {
	released, err := l.staking.WithdrawUnbonded(l.params.Account)
	if err != nil {
		return err
	}
	return l.emitWithEra("WithdrawnUnbonded", who, released)
}

// Nominate sets the validators backed by the pool stash. Only stakers may
// nominate, and only once the pool holds at least the minimum nominator bond.
func (l *LiquidStaking) Nominate(who saita.Address, targets []saita.Address) error {
	if err := l.requireStaked(who); err != nil {
		return err
	}
	total, err := l.totalStaked.Get()
	if err != nil {
		return err
	}
	if total.Lt(l.staking.MinNominatorBond()) {
		return reverts.ErrCannotNominate
	}
	if err := l.staking.Nominate(l.params.Account, targets); err != nil {
		return err
	}
	logger.Debug("nominated", "who", who, "targets", len(targets))

	era, err := l.staking.CurrentEra()
	if err != nil {
		return err
	}
	l.emitter.Emit(&events.Event{
		Module:  module,
		Name:    "Nominated",
		Era:     era,
		Account: who,
		Value:   uint64(len(targets)),
	})
	return nil
}

func (l *LiquidStaking) emitWithEra(name string, who saita.Address, amount *uint256.Int) error {
	era, err := l.staking.CurrentEra()
	if err != nil {
		return err
	}
	l.emit(name, era, who, amount)
	return nil
}
