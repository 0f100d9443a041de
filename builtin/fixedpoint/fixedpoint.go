// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fixedpoint provides the integer arithmetic behind every balance and
// reward share. Balances are 128-bit; products are computed in 256 bits so
// amount × ratio never wraps, then truncated toward zero.
package fixedpoint

import (
	"math"

	"github.com/holiman/uint256"

	"github.com/saitachain/staking/builtin/reverts"
)

// Precision is the decimal exponent shared by every fixed-point quantity.
const Precision uint32 = 18

// maxPrecision keeps 10^precision within 128 bits.
const maxPrecision uint32 = 38

// MaxBalance is the largest representable balance (2^128 - 1).
var MaxBalance = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))

// Zero returns a new zero balance.
func Zero() *uint256.Int {
	return new(uint256.Int)
}

// Pow10 returns 10^exp.
func Pow10(exp uint32) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(uint64(exp)))
}

// InRange reports whether v is a valid balance.
func InRange(v *uint256.Int) bool {
	return v != nil && !v.Gt(MaxBalance)
}

// Add returns a + b, or ErrOverflow when the sum exceeds MaxBalance.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow || sum.Gt(MaxBalance) {
		return nil, reverts.ErrOverflow
	}
	return sum, nil
}

// Sub returns a - b, or ErrUnderflow when b > a.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, reverts.ErrUnderflow
	}
	return diff, nil
}

// MulDiv returns floor(a × b / d).
func MulDiv(a, b, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, reverts.ErrDivisionByZero
	}
	quo, overflow := new(uint256.Int).MulDivOverflow(a, b, d)
	if overflow || quo.Gt(MaxBalance) {
		return nil, reverts.ErrOverflow
	}
	return quo, nil
}

// Rational is an exact non-negative fraction Num/Den.
type Rational struct {
	Num *uint256.Int
	Den *uint256.Int
}

// NewRational builds num/den from balances.
func NewRational(num, den *uint256.Int) Rational {
	return Rational{Num: num, Den: den}
}

// Percent builds p/100.
func Percent(p uint64) Rational {
	return Rational{Num: uint256.NewInt(p), Den: uint256.NewInt(100)}
}

// MulTrunc returns floor(amount × Num / Den).
func (r Rational) MulTrunc(amount *uint256.Int) (*uint256.Int, error) {
	return MulDiv(amount, r.Num, r.Den)
}

// ToFixed converts r into an integer scaled by 10^precision, truncating
// toward zero: floor(Num × 10^precision / Den).
func ToFixed(r Rational, precision uint32) (*uint256.Int, error) {
	if precision > maxPrecision {
		return nil, reverts.ErrOverflow
	}
	return MulDiv(r.Num, Pow10(precision), r.Den)
}

// FromFixed interprets v as a quantity scaled by 10^precision.
// The conversion is exact: ToFixed(FromFixed(v, p), p) == v.
func FromFixed(v *uint256.Int, precision uint32) Rational {
	return Rational{Num: new(uint256.Int).Set(v), Den: Pow10(precision)}
}

// Truncate drops the fractional part of a fixed-point quantity.
func Truncate(v *uint256.Int, precision uint32) *uint256.Int {
	return new(uint256.Int).Div(v, Pow10(precision))
}

// WholeUnits truncates a balance with the given decimals to whole tokens,
// saturating at math.MaxInt64.
func WholeUnits(v *uint256.Int, decimals uint8) int64 {
	whole := Truncate(v, uint32(decimals))
	if !whole.IsUint64() || whole.Uint64() > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(whole.Uint64())
}
