// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fixedpoint

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/builtin/reverts"
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestAddSub(t *testing.T) {
	sum, err := Add(u(1), u(2))
	require.NoError(t, err)
	assert.Equal(t, u(3), sum)

	_, err = Add(MaxBalance, u(1))
	assert.ErrorIs(t, err, reverts.ErrOverflow)

	diff, err := Sub(u(5), u(5))
	require.NoError(t, err)
	assert.True(t, diff.IsZero())

	_, err = Sub(u(4), u(5))
	assert.ErrorIs(t, err, reverts.ErrUnderflow)
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		name    string
		a, b, d *uint256.Int
		want    *uint256.Int
		wantErr error
	}{
		{"exact", u(90), u(400), u(1000), u(36), nil},
		{"truncates", u(10), u(1), u(3), u(3), nil},
		{"zero divisor", u(1), u(1), u(0), nil, reverts.ErrDivisionByZero},
		{"large operands keep precision", MaxBalance, MaxBalance, MaxBalance, MaxBalance, nil},
		{"result above balance range", MaxBalance, u(2), u(1), nil, reverts.ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MulDiv(tt.a, tt.b, tt.d)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToFixed(t *testing.T) {
	got, err := ToFixed(NewRational(u(1), u(3)), 6)
	require.NoError(t, err)
	assert.Equal(t, u(333333), got)

	got, err = ToFixed(Percent(8), Precision)
	require.NoError(t, err)
	assert.Equal(t, u(80000000000000000), got)

	_, err = ToFixed(Percent(1), 39)
	assert.ErrorIs(t, err, reverts.ErrOverflow)

	_, err = ToFixed(NewRational(u(1), u(0)), Precision)
	assert.ErrorIs(t, err, reverts.ErrDivisionByZero)
}

func TestFixedRoundTrip(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 200 {
		var raw uint64
		f.Fuzz(&raw)
		v := u(raw)
		back, err := ToFixed(FromFixed(v, Precision), Precision)
		require.NoError(t, err)
		assert.Equal(t, v, back)
	}
}

func TestMulTruncNeverExceedsAmount(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 200 {
		var amount, num, den uint64
		f.Fuzz(&amount)
		f.Fuzz(&num)
		f.Fuzz(&den)
		if den == 0 {
			den = 1
		}
		if num > den {
			num, den = den, num
		}
		share, err := NewRational(u(num), u(den)).MulTrunc(u(amount))
		require.NoError(t, err)
		assert.False(t, share.Gt(u(amount)))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, u(12), Truncate(u(12_999), 3))
}

func TestWholeUnits(t *testing.T) {
	assert.Equal(t, int64(3), WholeUnits(new(uint256.Int).Mul(u(3), Pow10(18)), 18))
	assert.Equal(t, int64(0), WholeUnits(u(999), 3))
	assert.Equal(t, int64(math.MaxInt64), WholeUnits(MaxBalance, 0))
}
