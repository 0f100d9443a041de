// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

// Native module bindings. Each module keeps its storage under its own address.
var (
	Assets        = newModule("Assets")
	Staking       = newModule("Staking")
	Reward        = newModule("Reward")
	LiquidStaking = newModule("LiquidStaking")
	Runtime       = newModule("Runtime")
)
