// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

type Chunk struct {
	Value     string `json:"value"`
	TargetEra uint32 `json:"targetEra"`
}

type Account struct {
	Balance          string  `json:"balance"`
	LiquidBalance    string  `json:"liquidBalance"`
	Stake            string  `json:"stake"`
	Bonded           string  `json:"bonded"`
	Unlocking        []Chunk `json:"unlocking"`
	BeneficialReward string  `json:"beneficialReward"`
	// PoolShare is stake/totalStaked as a fixed-point number with 18 decimals.
	PoolShare string `json:"poolShare"`
}
