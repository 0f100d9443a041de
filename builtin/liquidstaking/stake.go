// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/saita"
)

// Stake deposits amount of the native currency into the pool and mints the
// same amount of the liquid currency to who.
func (l *LiquidStaking) Stake(who saita.Address, amount *uint256.Int) error {
	if amount.Lt(l.params.MinStake) {
		return reverts.ErrStakeTooSmall
	}
	if _, ok, err := l.assets.Decimals(saita.SSAITA); err != nil {
		return err
	} else if !ok {
		return reverts.ErrInvalidLiquidCurrency
	}
	logger.Debug("stake", "who", who, "amount", amount)

	if err := l.assets.Mint(saita.SSAITA, who, amount); err != nil {
		return err
	}
	if err := l.assets.Transfer(saita.SAITA, who, l.params.Account, amount, false); err != nil {
		return err
	}
	if err := l.creditStake(who, amount); err != nil {
		return err
	}
	if err := l.matchingService.AddStake(amount); err != nil {
		return err
	}

	era, err := l.staking.CurrentEra()
	if err != nil {
		return err
	}
	l.emit("Staked", era, who, amount)
	metricStakeVolume().AddWithLabel(fixedpoint.WholeUnits(amount, saita.NativeDecimals), map[string]string{"direction": "stake"})
	return nil
}

// TargetEra returns the era at which an unstake requested now becomes claimable.
func (l *LiquidStaking) TargetEra() (saita.EraIndex, error) {
	current, err := l.staking.CurrentEra()
	if err != nil {
		return 0, err
	}
	return current + l.staking.BondingDuration() + 1, nil
}

// Unstake burns amount of the liquid currency held by who and schedules the
// same amount of the native currency to be claimable at TargetEra. A burn
// shortfall up to DustTolerance is ignored.
func (l *LiquidStaking) Unstake(who saita.Address, amount *uint256.Int) error {
	if err := l.requireStaked(who); err != nil {
		return err
	}
	burned, err := l.assets.BurnBestEffort(saita.SSAITA, who, amount)
	if err != nil {
		return err
	}
	if shortfall := new(uint256.Int).Sub(amount, burned); shortfall.Gt(l.params.DustTolerance) {
		return reverts.ErrInsufficientBalance
	}
	if err := l.debitStake(who, amount); err != nil {
		return err
	}

	current, err := l.staking.CurrentEra()
	if err != nil {
		return err
	}
	target := current + l.staking.BondingDuration() + 1
	chunks, _, err := l.unlockings.Get(who)
	if err != nil {
		return err
	}
	if chunks, err = chunks.Merge(amount, target); err != nil {
		return err
	}
	if err := l.unlockings.Set(who, chunks); err != nil {
		return err
	}
	if err := l.matchingService.AddUnstake(amount); err != nil {
		return err
	}
	logger.Debug("unstake", "who", who, "amount", amount, "targetEra", target)

	l.emit("Unlocked", target, who, amount)
	l.emit("Unstaked", current, who, amount)
	metricStakeVolume().AddWithLabel(fixedpoint.WholeUnits(amount, saita.NativeDecimals), map[string]string{"direction": "unstake"})
	return nil
}

// ClaimFor pays dest every unlock chunk due at the current era.
func (l *LiquidStaking) ClaimFor(dest saita.Address) error {
	chunks, ok, err := l.unlockings.Get(dest)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNoUnlockings
	}
	current, err := l.staking.CurrentEra()
	if err != nil {
		return err
	}
	due, kept, err := chunks.Partition(current)
	if err != nil {
		return err
	}
	if len(kept) == len(chunks) {
		return reverts.ErrNothingToClaim
	}
	if err := l.assets.Transfer(saita.SAITA, l.params.Account, dest, due, false); err != nil {
		return err
	}
	if err := l.unlockings.Set(dest, kept); err != nil {
		return err
	}
	logger.Debug("claimed", "dest", dest, "amount", due, "remaining", len(kept))

	l.emit("ClaimedFor", current, dest, due)
	metricStakeVolume().AddWithLabel(fixedpoint.WholeUnits(due, saita.NativeDecimals), map[string]string{"direction": "claim"})
	return nil
}
