// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/saita"
)

// Ledger returns the bonded ledger of stash.
func (s *Staking) Ledger(stash saita.Address) (*Ledger, error) {
	l, err := s.ledgers.Get(stash)
	if err != nil {
		return nil, err
	}
	if l.Total == nil {
		l.Total = fixedpoint.Zero()
	}
	if l.Active == nil {
		l.Active = fixedpoint.Zero()
	}
	return l, nil
}

func (s *Staking) setLedger(stash saita.Address, l *Ledger) error {
	if l.IsEmpty() {
		s.ledgers.Delete(stash)
		return nil
	}
	return s.ledgers.Set(stash, l)
}

func (s *Staking) ensureFunds(stash saita.Address, total *uint256.Int) error {
	free, err := s.balances.FreeBalance(saita.SAITA, stash)
	if err != nil {
		return err
	}
	if free.Lt(total) {
		return ErrInsufficientFunds
	}
	return nil
}

// Bond locks value of stash's free balance.
func (s *Staking) Bond(stash saita.Address, value *uint256.Int) error {
	l, err := s.Ledger(stash)
	if err != nil {
		return err
	}
	if !l.IsEmpty() {
		return ErrAlreadyBonded
	}
	if err := s.ensureFunds(stash, value); err != nil {
		return err
	}
	logger.Debug("bond", "stash", stash, "value", value)
	return s.setLedger(stash, &Ledger{Total: new(uint256.Int).Set(value), Active: new(uint256.Int).Set(value)})
}

// BondExtra adds value to an existing bond.
func (s *Staking) BondExtra(stash saita.Address, value *uint256.Int) error {
	l, err := s.Ledger(stash)
	if err != nil {
		return err
	}
	if l.IsEmpty() {
		return ErrNotStash
	}
	if l.Total, err = fixedpoint.Add(l.Total, value); err != nil {
		return err
	}
	if l.Active, err = fixedpoint.Add(l.Active, value); err != nil {
		return err
	}
	if err := s.ensureFunds(stash, l.Total); err != nil {
		return err
	}
	return s.setLedger(stash, l)
}

// Unbond schedules value of the active bond to unlock after the bonding duration.
func (s *Staking) Unbond(stash saita.Address, value *uint256.Int) error {
	l, err := s.Ledger(stash)
	if err != nil {
		return err
	}
	if l.IsEmpty() {
		return ErrNotStash
	}
	if l.Active.Lt(value) {
		return ErrInsufficientBond
	}
	current, err := s.CurrentEra()
	if err != nil {
		return err
	}
	era := current + s.params.BondingDuration

	l.Active = new(uint256.Int).Sub(l.Active, value)
	if n := len(l.Unlocking); n > 0 && l.Unlocking[n-1].Era == era {
		if l.Unlocking[n-1].Value, err = fixedpoint.Add(l.Unlocking[n-1].Value, value); err != nil {
			return err
		}
	} else {
		l.Unlocking = append(l.Unlocking, UnlockChunk{Value: value, Era: era})
	}
	logger.Debug("unbond", "stash", stash, "value", value, "era", era)
	return s.setLedger(stash, l)
}

// Rebond moves up to value from unlocking chunks, latest first, back to the
// active bond.
func (s *Staking) Rebond(stash saita.Address, value *uint256.Int) error {
	l, err := s.Ledger(stash)
	if err != nil {
		return err
	}
	if l.IsEmpty() {
		return ErrNotStash
	}
	if len(l.Unlocking) == 0 {
		return ErrNoUnlockChunk
	}
	remaining := new(uint256.Int).Set(value)
	for len(l.Unlocking) > 0 && !remaining.IsZero() {
		last := &l.Unlocking[len(l.Unlocking)-1]
		if last.Value.Gt(remaining) {
			last.Value = new(uint256.Int).Sub(last.Value, remaining)
			l.Active = new(uint256.Int).Add(l.Active, remaining)
			remaining.Clear()
			break
		}
		l.Active = new(uint256.Int).Add(l.Active, last.Value)
		remaining.Sub(remaining, last.Value)
		l.Unlocking = l.Unlocking[:len(l.Unlocking)-1]
	}
	return s.setLedger(stash, l)
}

// WithdrawUnbonded releases unlocked chunks and returns the released amount.
func (s *Staking) WithdrawUnbonded(stash saita.Address) (*uint256.Int, error) {
	l, err := s.Ledger(stash)
	if err != nil {
		return nil, err
	}
	if l.IsEmpty() {
		return nil, ErrNotStash
	}
	current, err := s.CurrentEra()
	if err != nil {
		return nil, err
	}
	released := fixedpoint.Zero()
	kept := l.Unlocking[:0]
	for _, chunk := range l.Unlocking {
		if chunk.Era <= current {
			released.Add(released, chunk.Value)
		} else {
			kept = append(kept, chunk)
		}
	}
	l.Unlocking = kept
	if l.Total, err = fixedpoint.Sub(l.Total, released); err != nil {
		return nil, err
	}
	if l.IsEmpty() {
		s.nominations.Delete(stash)
		if _, err := s.nominators.Remove(stash); err != nil {
			return nil, err
		}
	}
	return released, s.setLedger(stash, l)
}

// Nominate sets the validators the stash backs.
func (s *Staking) Nominate(stash saita.Address, targets []saita.Address) error {
	l, err := s.Ledger(stash)
	if err != nil {
		return err
	}
	if l.IsEmpty() {
		return ErrNotStash
	}
	if len(targets) == 0 {
		return ErrEmptyTargets
	}
	if len(targets) > saita.MaxNominations {
		return ErrTooManyTargets
	}
	sorted := slices.Clone(targets)
	saita.SortAddresses(sorted)
	sorted = slices.Compact(sorted)
	for _, t := range sorted {
		ok, err := s.validators.Contains(t)
		if err != nil {
			return err
		}
		if !ok {
			return ErrBadTarget
		}
	}
	if _, err := s.nominators.Add(stash); err != nil {
		return err
	}
	logger.Debug("nominate", "stash", stash, "targets", len(sorted))
	return s.nominations.Set(stash, sorted)
}

// Nominations returns the validators nominated by stash, ascending.
func (s *Staking) Nominations(stash saita.Address) ([]saita.Address, error) {
	return s.nominations.Get(stash)
}
