// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package saita

import "strconv"

// EraIndex counts eras from genesis.
type EraIndex uint32

// CurrencyID identifies an asset managed by the currency module.
type CurrencyID uint32

// Currencies known at genesis.
const (
	SSAITA CurrencyID = 1 // liquid derivative of SAITA
	SAITA  CurrencyID = 2 // native staking asset
)

// String implements the stringer interface
func (c CurrencyID) String() string {
	switch c {
	case SSAITA:
		return "sSAITA"
	case SAITA:
		return "SAITA"
	default:
		return "currency#" + strconv.FormatUint(uint64(c), 10)
	}
}
