// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package liquidstaking

import (
	"slices"

	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/saita"
)

// ClaimReward queues who for a share of the reward the pool earns this era.
// The first claim of an era requests payouts for the validators the pool
// nominates.
func (l *LiquidStaking) ClaimReward(who saita.Address) error {
	if err := l.requireStaked(who); err != nil {
		return err
	}
	queue, err := l.rewardQueue.Get()
	if err != nil {
		return err
	}
	if slices.Contains(queue, who) {
		return reverts.ErrWaitTheEraToComplete
	}
	if len(queue) == 0 {
		if err := l.requestPayouts(); err != nil {
			return err
		}
	}
	if err := l.rewardQueue.Set(append(queue, who)); err != nil {
		return err
	}
	return l.emitWithEra("Rewarded", who, nil)
}

// requestPayouts queues a payout for every nominated validator that is still
// registered and not already pending.
func (l *LiquidStaking) requestPayouts() error {
	targets, err := l.staking.Nominations(l.params.Account)
	if err != nil {
		return err
	}
	for _, v := range targets {
		ok, err := l.staking.IsValidator(v)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		pending, err := l.payouts.IsPending(v)
		if err != nil {
			return err
		}
		if pending {
			continue
		}
		if err := l.payouts.RequestPayout(v); err != nil {
			return err
		}
	}
	return nil
}

// OnPayout collects the reward paid to the pool custody account.
func (l *LiquidStaking) OnPayout(account saita.Address, amount *uint256.Int) error {
	if account != l.params.Account || amount.IsZero() {
		return nil
	}
	current, err := l.distributable.Get()
	if err != nil {
		return err
	}
	if current, err = fixedpoint.Add(current, amount); err != nil {
		return err
	}
	logger.Debug("pool rewarded", "amount", amount, "distributable", current)
	return l.distributable.Set(current)
}

// ClaimDerivative mints who's share of the distributable reward in the
// liquid currency and adds it to who's stake. Shares are taken against the
// total stake as it was before the round started.
func (l *LiquidStaking) ClaimDerivative(who saita.Address) error {
	queue, err := l.rewardQueue.Get()
	if err != nil {
		return err
	}
	idx := slices.Index(queue, who)
	if idx < 0 {
		return reverts.ErrAccountNotInDerivativeReward
	}
	if err := l.rewardQueue.Set(slices.Delete(queue, idx, idx+1)); err != nil {
		return err
	}

	reward, err := l.derivativeShare(who)
	if err != nil {
		return err
	}
	if !reward.IsZero() {
		if err := l.assets.Mint(saita.SSAITA, who, reward); err != nil {
			return err
		}
		if err := l.creditStake(who, reward); err != nil {
			return err
		}
		distributed, err := l.distributed.Get()
		if err != nil {
			return err
		}
		if distributed, err = fixedpoint.Add(distributed, reward); err != nil {
			return err
		}
		if err := l.distributed.Set(distributed); err != nil {
			return err
		}
	}
	logger.Debug("derivative received", "who", who, "amount", reward)
	return l.emitWithEra("DerivativeReceived", who, reward)
}

// derivativeShare is stake(who) × distributable / total, where total
// excludes what this round already credited.
func (l *LiquidStaking) derivativeShare(who saita.Address) (*uint256.Int, error) {
	distributable, err := l.distributable.Get()
	if err != nil {
		return nil, err
	}
	if distributable.IsZero() {
		return fixedpoint.Zero(), nil
	}
	stake, err := l.stakes.Get(who)
	if err != nil {
		return nil, err
	}
	total, err := l.totalStaked.Get()
	if err != nil {
		return nil, err
	}
	distributed, err := l.distributed.Get()
	if err != nil {
		return nil, err
	}
	if total, err = fixedpoint.Sub(total, distributed); err != nil {
		return nil, err
	}
	if total.IsZero() {
		return fixedpoint.Zero(), nil
	}
	return fixedpoint.MulDiv(stake, distributable, total)
}

// DistributeDerivativeRewards pays every queued account, in request order,
// then resets the round.
func (l *LiquidStaking) DistributeDerivativeRewards() error {
	queue, err := l.rewardQueue.Get()
	if err != nil {
		return err
	}
	for _, who := range queue {
		if err := l.ClaimDerivative(who); err != nil {
			return err
		}
	}
	return l.ResetReward()
}

// ResetReward clears the reward queue and the distributable reward.
func (l *LiquidStaking) ResetReward() error {
	distributable, err := l.distributable.Get()
	if err != nil {
		return err
	}
	distributed, err := l.distributed.Get()
	if err != nil {
		return err
	}
	if leftover, err := fixedpoint.Sub(distributable, distributed); err == nil && !leftover.IsZero() {
		logger.Info("derivative round closed", "distributable", distributable, "distributed", distributed)
	}
	l.rewardQueue.Delete()
	l.distributable.Delete()
	l.distributed.Delete()
	return nil
}
