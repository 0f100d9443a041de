// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package matching

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/builtin/fixedpoint"
	"github.com/saitachain/staking/builtin/reverts"
	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func TestLedgerOperations(t *testing.T) {
	l := NewLedger()

	require.NoError(t, l.AddStake(u(100)))
	require.NoError(t, l.ReserveStake(u(60)))
	assert.ErrorIs(t, l.ReserveStake(u(41)), reverts.ErrOverflow)

	free, err := l.Stake.Free()
	require.NoError(t, err)
	assert.Equal(t, u(40), free)

	// only the free part can be taken out
	assert.ErrorIs(t, l.SubStake(u(41)), reverts.ErrUnderflow)
	require.NoError(t, l.SubStake(u(40)))
	assert.Equal(t, u(60), l.Stake.Total)
	assert.Equal(t, u(60), l.Stake.Reserved)

	require.NoError(t, l.AddUnstake(u(10)))
	require.NoError(t, l.ReserveUnstake(u(10)))
	assert.ErrorIs(t, l.SubUnstake(u(1)), reverts.ErrUnderflow)

	assert.ErrorIs(t, l.AddStake(fixedpoint.MaxBalance), reverts.ErrOverflow)
	assert.Equal(t, u(60), l.Stake.Total, "failed op leaves the ledger untouched")
}

func TestFreeDetectsBrokenInvariant(t *testing.T) {
	r := ReservableAmount{Total: u(1), Reserved: u(2)}
	_, err := r.Free()
	assert.ErrorIs(t, err, reverts.ErrUnderflow)
}

func TestReservedNeverExceedsTotal(t *testing.T) {
	f := fuzz.New().NilChance(0)
	l := NewLedger()
	ops := []func(*uint256.Int) error{
		l.AddStake, l.AddUnstake, l.SubStake, l.SubUnstake, l.ReserveStake, l.ReserveUnstake,
	}
	for range 2000 {
		var op uint8
		var amount uint32
		f.Fuzz(&op)
		f.Fuzz(&amount)
		_ = ops[int(op)%len(ops)](u(uint64(amount)))

		assert.False(t, l.Stake.Reserved.Gt(l.Stake.Total))
		assert.False(t, l.Unstake.Reserved.Gt(l.Unstake.Total))
	}
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.New(db)
	svc := New(storage.NewContext(saita.Address{1}, st))

	l, err := svc.Get()
	require.NoError(t, err)
	assert.True(t, l.Stake.Total.IsZero())

	require.NoError(t, svc.AddStake(u(100)))
	require.NoError(t, svc.AddUnstake(u(40)))
	assert.ErrorIs(t, svc.Update(func(l *Ledger) error { return l.ReserveUnstake(u(41)) }), reverts.ErrOverflow)

	l, err = svc.Get()
	require.NoError(t, err)
	assert.Equal(t, u(100), l.Stake.Total)
	assert.Equal(t, u(40), l.Unstake.Total)
	assert.True(t, l.Unstake.Reserved.IsZero())
}
