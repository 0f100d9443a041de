// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package config

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/saitachain/staking/builtin/fixedpoint"
)

// Amount is a token amount in whole units, e.g. "12.5".
type Amount struct {
	decimal.Decimal
}

// MustAmount parses s and panics on failure.
func MustAmount(s string) Amount {
	return Amount{decimal.RequireFromString(s)}
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d: invalid amount %q", node.Line, node.Value)
	}
	a.Decimal = d
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	return a.String(), nil
}

// Units scales the amount to base units of a currency with the given decimals.
func (a Amount) Units(decimals uint8) (*uint256.Int, error) {
	if a.IsNegative() {
		return nil, errors.Errorf("negative amount %s", a)
	}
	scaled := a.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, errors.Errorf("amount %s has more than %d decimals", a, decimals)
	}
	v, overflow := uint256.FromBig(scaled.BigInt())
	if overflow || v.Gt(fixedpoint.MaxBalance) {
		return nil, errors.Errorf("amount %s out of range", a)
	}
	return v, nil
}

// FormatUnits renders base units as a whole-unit decimal string.
func FormatUnits(v *uint256.Int, decimals uint8) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v.ToBig(), -int32(decimals)).String()
}

// ParseAmount parses a whole-unit decimal string.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, errors.Wrapf(err, "invalid amount %q", s)
	}
	return Amount{d}, nil
}
