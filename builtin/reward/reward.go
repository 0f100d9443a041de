// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes era rewards for validators and their nominators
// and pays them out of the treasury.
//
// Once per era CalculateReward credits every validator with its share of the
// era reward, weighted by era points, and splits it with its nominators by
// exposure after commission. Credits accrue until a payout is requested for
// the validator and the queue is drained with ClaimRewards.
package reward

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/reward/accrual"
	"github.com/saitachain/staking/builtin/reward/payout"
	"github.com/saitachain/staking/builtin/staking"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/saita"
)

var logger = log.WithContext("pkg", "reward")

const module = "reward"

var (
	slotBaseRewardPercent = storage.Slot("base-reward-percent")
	slotRewardPercent     = storage.Slot("reward-percent")
)

// Staking is the validator-set collaborator.
type Staking interface {
	IsValidator(v saita.Address) (bool, error)
	ElectableValidators() ([]saita.Address, error)
	Exposure(validator saita.Address, era saita.EraIndex) (*staking.Exposure, error)
	RewardPoints(era saita.EraIndex) (*staking.EraRewardPoints, error)
	Commission(validator saita.Address) (uint32, error)
}

// Assets moves the reward currency.
type Assets interface {
	Transfer(currency saita.CurrencyID, from, to saita.Address, amount *uint256.Int, keepAlive bool) error
}

// PayoutObserver is told about every non-zero payout.
type PayoutObserver interface {
	OnPayout(account saita.Address, amount *uint256.Int) error
}

type Params struct {
	Treasury                 saita.Address
	Policy                   Policy
	InitialBaseRewardPercent uint32
}

type Reward struct {
	params   Params
	staking  Staking
	assets   Assets
	emitter  events.Emitter
	observer PayoutObserver

	accrualService *accrual.Service
	payoutService  *payout.Service

	baseRewardPercent *storage.Value[uint32]
	rewardPercent     *storage.Value[uint32]
}

func New(sctx *storage.Context, params Params, staking Staking, assets Assets, emitter events.Emitter) *Reward {
	if params.Policy == nil {
		params.Policy = Annualized{TotalMinutesPerYear: saita.TotalMinutesPerYear, EraMinutes: saita.EraMinutes}
	}
	if emitter == nil {
		emitter = events.Discard
	}
	return &Reward{
		params:  params,
		staking: staking,
		assets:  assets,
		emitter: emitter,

		accrualService: accrual.New(sctx),
		payoutService:  payout.New(sctx),

		baseRewardPercent: storage.NewValue[uint32](sctx, slotBaseRewardPercent),
		rewardPercent:     storage.NewValue[uint32](sctx, slotRewardPercent),
	}
}

// SetObserver installs the observer of payouts.
func (r *Reward) SetObserver(o PayoutObserver) {
	r.observer = o
}

//
// Getters - no state change
//

func (r *Reward) Treasury() saita.Address {
	return r.params.Treasury
}

// BaseRewardPercent is the annual percent used by the next calculation.
func (r *Reward) BaseRewardPercent() (uint32, error) {
	exists, err := r.baseRewardPercent.Exists()
	if err != nil || !exists {
		return r.params.InitialBaseRewardPercent, err
	}
	return r.baseRewardPercent.Get()
}

// RewardPercent is the percent set by governance, if any, to be promoted at
// the end of the era.
func (r *Reward) RewardPercent() (uint32, bool, error) {
	exists, err := r.rewardPercent.Exists()
	if err != nil || !exists {
		return 0, false, err
	}
	v, err := r.rewardPercent.Get()
	return v, err == nil, err
}

// ValidatorReward returns the unpaid reward of validator.
func (r *Reward) ValidatorReward(validator saita.Address) (*uint256.Int, error) {
	return r.accrualService.Validator(validator)
}

// NominatorReward returns the unpaid reward of nominator behind validator.
func (r *Reward) NominatorReward(validator, nominator saita.Address) (*uint256.Int, error) {
	return r.accrualService.Nominator(validator, nominator)
}

// RewardedNominators lists the nominators with an unpaid reward behind validator.
func (r *Reward) RewardedNominators(validator saita.Address) ([]saita.Address, error) {
	return r.accrualService.Nominators(validator)
}

// PendingPayouts lists validators queued for payout, ascending.
func (r *Reward) PendingPayouts() ([]saita.Address, error) {
	return r.payoutService.Pending()
}

func (r *Reward) IsPending(validator saita.Address) (bool, error) {
	return r.payoutService.IsPending(validator)
}

// BeneficialReward returns the total reward ever paid to account.
func (r *Reward) BeneficialReward(account saita.Address) (*uint256.Int, error) {
	return r.payoutService.Beneficial(account)
}

//
// Setters - state change
//

// SetRewardPercent stores the percent promoted at the end of the era.
func (r *Reward) SetRewardPercent(value uint32) error {
	if value > 100 {
		return reverts.ErrInvalidRewardPercent
	}
	if err := r.rewardPercent.Set(value); err != nil {
		return err
	}
	logger.Info("reward percent set", "value", value)
	r.emitter.Emit(&events.Event{Module: module, Name: "RewardPercentSet", Value: uint64(value)})
	return nil
}

// PromoteRewardPercent makes the governance percent the base of the next calculation.
func (r *Reward) PromoteRewardPercent() error {
	value, ok, err := r.RewardPercent()
	if err != nil || !ok {
		return err
	}
	return r.baseRewardPercent.Set(value)
}

// CheckValidatorReward announces the unpaid reward of validator.
func (r *Reward) CheckValidatorReward(validator saita.Address) error {
	amount, err := r.accrualService.Validator(validator)
	if err != nil {
		return err
	}
	r.emitter.Emit(&events.Event{Module: module, Name: "ValidatorRewardChecked", Validator: validator, Amount: amount})
	return nil
}

// CheckNominatorReward announces the unpaid reward of every nominator behind validator.
func (r *Reward) CheckNominatorReward(validator saita.Address) error {
	nominators, err := r.accrualService.Nominators(validator)
	if err != nil {
		return err
	}
	for _, n := range nominators {
		amount, err := r.accrualService.Nominator(validator, n)
		if err != nil {
			return err
		}
		r.emitter.Emit(&events.Event{Module: module, Name: "NominatorRewardChecked", Validator: validator, Account: n, Amount: amount})
	}
	return nil
}
