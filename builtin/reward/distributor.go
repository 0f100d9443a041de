// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/saita"
)

// RequestPayout queues validator for the next payout pass.
func (r *Reward) RequestPayout(validator saita.Address) error {
	ok, err := r.staking.IsValidator(validator)
	if err != nil {
		return err
	}
	if !ok {
		return reverts.ErrNoSuchValidator
	}
	added, err := r.payoutService.Enqueue(validator)
	if err != nil {
		return err
	}
	if !added {
		return reverts.ErrWaitTheEraToComplete
	}
	r.emitter.Emit(&events.Event{Module: module, Name: "PayoutRequested", Validator: validator})
	r.observePending()
	return nil
}

// ClaimRewards pays validator and then every nominator with an accrual
// behind it, and takes validator off the queue. Paid accruals are zeroed, so
// calling it again before the next calculation pays nothing.
func (r *Reward) ClaimRewards(validator saita.Address) error {
	amount, err := r.accrualService.TakeValidator(validator)
	if err != nil {
		return err
	}
	if err := r.pay(validator, validator, amount); err != nil {
		return err
	}

	nominators, err := r.accrualService.Nominators(validator)
	if err != nil {
		return err
	}
	for _, n := range nominators {
		amount, err := r.accrualService.TakeNominator(validator, n)
		if err != nil {
			return err
		}
		if err := r.pay(validator, n, amount); err != nil {
			return err
		}
	}
	r.accrualService.ForgetNominators(validator)

	pending, err := r.payoutService.IsPending(validator)
	if err != nil {
		return err
	}
	if pending {
		if err := r.payoutService.Dequeue(validator); err != nil {
			return err
		}
		r.observePending()
	}
	return nil
}

// Isolate runs fn so that a failure discards every write and event of fn.
type Isolate func(fn func() error) error

// DistributePending runs ClaimRewards for every queued validator, ascending.
// A payout that fails is rolled back by isolate and stays queued; the rest of
// the queue is still paid. It returns the number of validators paid.
func (r *Reward) DistributePending(isolate Isolate) (int, error) {
	pending, err := r.payoutService.Pending()
	if err != nil {
		return 0, err
	}
	paid := 0
	for _, v := range pending {
		if err := isolate(func() error { return r.ClaimRewards(v) }); err != nil {
			logger.Warn("payout failed, validator stays queued", "validator", v, "err", err)
			continue
		}
		paid++
	}
	return paid, nil
}

// pay transfers amount from the treasury to account. A zero amount is a no-op.
func (r *Reward) pay(validator, account saita.Address, amount *uint256.Int) error {
	if amount.IsZero() {
		return nil
	}
	if err := r.assets.Transfer(saita.SAITA, r.params.Treasury, account, amount, true); err != nil {
		return err
	}
	if err := r.payoutService.Record(account, amount); err != nil {
		return err
	}
	logger.Debug("reward distributed", "validator", validator, "account", account, "amount", amount)
	r.emitter.Emit(&events.Event{Module: module, Name: "Distributed", Validator: validator, Account: account, Amount: amount})
	metricPayoutVolume().Add(fixedpoint.WholeUnits(amount, saita.NativeDecimals))

	if r.observer != nil {
		return r.observer.OnPayout(account, amount)
	}
	return nil
}

func (r *Reward) observePending() {
	pending, err := r.payoutService.Pending()
	if err != nil {
		return
	}
	metricPendingPayouts().Set(int64(len(pending)))
}
