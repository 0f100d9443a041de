// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
)

// Policy decides the reward of a validator for one era before it is
// weighted by era points.
type Policy interface {
	EraReward(exposureTotal *uint256.Int, basePercent uint32) (*uint256.Int, error)
}

// Annualized pays basePercent of the exposure per year, spread evenly over
// the eras of a year.
type Annualized struct {
	TotalMinutesPerYear uint64
	EraMinutes          uint64
}

func (p Annualized) ErasPerYear() uint64 {
	if p.EraMinutes == 0 {
		return 0
	}
	return p.TotalMinutesPerYear / p.EraMinutes
}

func (p Annualized) EraReward(exposureTotal *uint256.Int, basePercent uint32) (*uint256.Int, error) {
	eras := p.ErasPerYear()
	if eras == 0 {
		return nil, reverts.ErrDivisionByZero
	}
	annual, err := fixedpoint.Percent(uint64(basePercent)).MulTrunc(exposureTotal)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Div(annual, uint256.NewInt(eras)), nil
}

// Flat pays a fixed amount per era regardless of stake.
type Flat struct {
	PerEra *uint256.Int
}

func (p Flat) EraReward(*uint256.Int, uint32) (*uint256.Int, error) {
	if p.PerEra == nil {
		return fixedpoint.Zero(), nil
	}
	return new(uint256.Int).Set(p.PerEra), nil
}
