// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/holiman/uint256"

	"github.com/saitachain/staking/saita"
)

// Event is a committed module event.
type Event struct {
	BlockNumber uint32
	Index       uint32
	Era         saita.EraIndex
	Module      string
	Name        string
	Account     saita.Address
	Validator   saita.Address
	Amount      *uint256.Int
	Value       uint64
}

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

// Range is an inclusive block number range. To below From means open ended.
type Range struct {
	From uint32
	To   uint32
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventFilter struct {
	Range     *Range
	Module    string
	Name      string
	Account   *saita.Address
	Validator *saita.Address
	Options   *Options
	Order     Order // default asc
}
