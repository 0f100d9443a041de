// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package saita

// Constants of the staking runtime.
const (
	NativeDecimals  uint8 = 18
	DerivedDecimals uint8 = 18

	TotalMinutesPerYear uint64 = 525600
	EraMinutes          uint64 = 1440 // one era per day

	BondingDuration          EraIndex = 28
	InitialBaseRewardPercent uint32   = 8

	MaxNominations = 16

	LiquidStakingModuleID = "lqd/stak"
	RewardModuleID        = "rwd/dist"
	TreasuryModuleID      = "py/trsry"
)

// Accounts owned by native modules.
var (
	LiquidStakingAccount = ModuleAccount(LiquidStakingModuleID)
	RewardAccount        = ModuleAccount(RewardModuleID)
	TreasuryAccount      = ModuleAccount(TreasuryModuleID)
)
