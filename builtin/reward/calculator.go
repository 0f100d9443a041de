// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"slices"

	"github.com/holiman/uint256"
	"github.com/wk8/go-ordered-map/v2"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/staking"
	"github.com/saitachain/staking/events"
	"github.com/saitachain/staking/saita"
)

// creditKey addresses one accrual. Without nominated it is the validator's
// own entry.
type creditKey struct {
	validator saita.Address
	nominator saita.Address
	nominated bool
}

// Split is the division of one validator's era reward.
type Split struct {
	Validator  *uint256.Int
	Nominators []NominatorShare
}

type NominatorShare struct {
	Who    saita.Address
	Amount *uint256.Int
}

// SplitReward divides validatorEraReward between the validator and its
// nominators: commission first, the rest pro rata to exposure. Every share
// is truncated; remainders are not redistributed. Nominators come out in
// ascending order.
func SplitReward(validatorEraReward *uint256.Int, commission uint32, exposure *staking.Exposure) (*Split, error) {
	if len(exposure.Others) == 0 {
		return &Split{Validator: new(uint256.Int).Set(validatorEraReward)}, nil
	}
	commissionShare, err := fixedpoint.Percent(uint64(commission)).MulTrunc(validatorEraReward)
	if err != nil {
		return nil, err
	}
	remaining, err := fixedpoint.Sub(validatorEraReward, commissionShare)
	if err != nil {
		return nil, err
	}
	ownShare, err := fixedpoint.MulDiv(remaining, exposure.Own, exposure.Total)
	if err != nil {
		return nil, err
	}
	validatorShare, err := fixedpoint.Add(commissionShare, ownShare)
	if err != nil {
		return nil, err
	}

	others := slices.Clone(exposure.Others)
	slices.SortStableFunc(others, func(a, b staking.IndividualExposure) int {
		return a.Who.Compare(b.Who)
	})
	split := &Split{Validator: validatorShare, Nominators: make([]NominatorShare, 0, len(others))}
	for _, n := range others {
		share, err := fixedpoint.MulDiv(remaining, n.Value, exposure.Total)
		if err != nil {
			return nil, err
		}
		split.Nominators = append(split.Nominators, NominatorShare{Who: n.Who, Amount: share})
	}
	return split, nil
}

// consistent reports whether the parts of an exposure fit in its total.
func consistent(exposure *staking.Exposure) bool {
	sum := new(uint256.Int).Set(exposure.Own)
	for _, n := range exposure.Others {
		if n.Value == nil {
			return false
		}
		if _, overflow := sum.AddOverflow(sum, n.Value); overflow {
			return false
		}
	}
	return !sum.Gt(exposure.Total)
}

// CalculateReward credits the rewards of era. Validators are visited in
// ascending order; a validator without points or exposure earns nothing.
// Accruals only grow here.
func (r *Reward) CalculateReward(era saita.EraIndex) error {
	points, err := r.staking.RewardPoints(era)
	if err != nil {
		return err
	}
	if points.Total == 0 {
		logger.Warn("no reward points in era, skip reward calculation", "era", era)
		return nil
	}
	validators, err := r.staking.ElectableValidators()
	if err != nil {
		return err
	}
	basePercent, err := r.BaseRewardPercent()
	if err != nil {
		return err
	}
	totalPoints := uint256.NewInt(uint64(points.Total))

	plan := orderedmap.New[creditKey, *uint256.Int]()
	credit := func(key creditKey, amount *uint256.Int) error {
		if amount.IsZero() {
			return nil
		}
		sum := amount
		if prev, ok := plan.Get(key); ok {
			var err error
			if sum, err = fixedpoint.Add(prev, amount); err != nil {
				return err
			}
		}
		plan.Set(key, sum)
		return nil
	}

	for _, v := range validators {
		vp := points.Points(v)
		if vp == 0 {
			continue
		}
		exposure, err := r.staking.Exposure(v, era)
		if err != nil {
			return err
		}
		if exposure.IsEmpty() {
			continue
		}
		if !consistent(exposure) {
			logger.Warn("exposure parts exceed total, skip validator", "era", era, "validator", v, "total", exposure.Total)
			continue
		}
		eraReward, err := r.params.Policy.EraReward(exposure.Total, basePercent)
		if err != nil {
			return err
		}
		validatorEraReward, err := fixedpoint.MulDiv(eraReward, uint256.NewInt(uint64(vp)), totalPoints)
		if err != nil {
			return err
		}
		commission, err := r.staking.Commission(v)
		if err != nil {
			return err
		}
		split, err := SplitReward(validatorEraReward, commission, exposure)
		if err != nil {
			return err
		}
		if err := credit(creditKey{validator: v}, split.Validator); err != nil {
			return err
		}
		for _, n := range split.Nominators {
			if err := credit(creditKey{validator: v, nominator: n.Who, nominated: true}, n.Amount); err != nil {
				return err
			}
		}
		r.emitter.Emit(&events.Event{
			Module:    module,
			Name:      "RewardCalculated",
			Era:       era,
			Validator: v,
			Amount:    validatorEraReward,
			Value:     uint64(vp),
		})
	}

	for pair := plan.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key.nominated {
			err = r.accrualService.CreditNominator(pair.Key.validator, pair.Key.nominator, pair.Value)
		} else {
			err = r.accrualService.CreditValidator(pair.Key.validator, pair.Value)
		}
		if err != nil {
			return err
		}
	}
	logger.Info("era reward calculated", "era", era, "credits", plan.Len(), "basePercent", basePercent)
	return nil
}
