// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/reward"
	"github.com/saitachain/staking/saita"
)

// Params are the constants of a runtime instance.
type Params struct {
	MinStake           *uint256.Int
	DustTolerance      *uint256.Int
	MinNominatorBond   *uint256.Int
	ExistentialDeposit *uint256.Int
	BondingDuration    saita.EraIndex

	Policy                   reward.Policy
	InitialBaseRewardPercent uint32
	// PointsPerBlock are the era points awarded to the block author.
	PointsPerBlock uint32

	PoolAccount saita.Address
	Treasury    saita.Address
}

// DefaultParams returns the dev parameters.
func DefaultParams() Params {
	unit := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(saita.NativeDecimals)))
	return Params{
		MinStake:           new(uint256.Int).Set(unit),
		DustTolerance:      uint256.NewInt(0),
		MinNominatorBond:   new(uint256.Int).Set(unit),
		ExistentialDeposit: uint256.NewInt(1),
		BondingDuration:    saita.BondingDuration,
		Policy: reward.Annualized{
			TotalMinutesPerYear: saita.TotalMinutesPerYear,
			EraMinutes:          saita.EraMinutes,
		},
		InitialBaseRewardPercent: saita.InitialBaseRewardPercent,
		PointsPerBlock:           20,
		PoolAccount:              saita.LiquidStakingAccount,
		Treasury:                 saita.TreasuryAccount,
	}
}
