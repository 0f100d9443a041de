// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package assets

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/builtin/storage"
	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

var (
	alice = saita.BytesToAddress([]byte("alice"))
	bob   = saita.BytesToAddress([]byte("bob"))
)

func u(v uint64) *uint256.Int { return uint256.NewInt(v) }

func newAssets(t *testing.T) *Assets {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	a := New(storage.NewContext(saita.Address{0xa5}, state.New(db)), u(5))
	require.NoError(t, a.RegisterCurrency(saita.SAITA, saita.NativeDecimals))
	return a
}

func balanceOf(t *testing.T, a *Assets, currency saita.CurrencyID, account saita.Address) uint64 {
	bal, err := a.FreeBalance(currency, account)
	require.NoError(t, err)
	return bal.Uint64()
}

func TestRegisterCurrency(t *testing.T) {
	a := newAssets(t)

	assert.ErrorIs(t, a.RegisterCurrency(saita.SAITA, 18), ErrCurrencyExists)

	_, ok, err := a.Decimals(saita.SSAITA)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.ErrorIs(t, a.Mint(saita.SSAITA, alice, u(1)), ErrUnknownCurrency)

	require.NoError(t, a.RegisterCurrency(saita.SSAITA, 12))
	d, ok, err := a.Decimals(saita.SSAITA)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint8(12), d)
}

func TestMintAndBurn(t *testing.T) {
	a := newAssets(t)

	require.NoError(t, a.Mint(saita.SAITA, alice, u(100)))
	assert.Equal(t, uint64(100), balanceOf(t, a, saita.SAITA, alice))

	burned, err := a.BurnBestEffort(saita.SAITA, alice, u(30))
	require.NoError(t, err)
	assert.Equal(t, u(30), burned)

	// burning more than held burns what is there
	burned, err = a.BurnBestEffort(saita.SAITA, alice, u(100))
	require.NoError(t, err)
	assert.Equal(t, u(70), burned)
	assert.Equal(t, uint64(0), balanceOf(t, a, saita.SAITA, alice))

	issuance, err := a.TotalIssuance(saita.SAITA)
	require.NoError(t, err)
	assert.True(t, issuance.IsZero())
}

func TestTransfer(t *testing.T) {
	a := newAssets(t)
	require.NoError(t, a.Mint(saita.SAITA, alice, u(100)))

	tests := []struct {
		name      string
		amount    uint64
		keepAlive bool
		wantErr   error
	}{
		{"insufficient", 101, false, ErrInsufficientBalance},
		{"keep alive below existential deposit", 96, true, ErrKeepAlive},
		{"keep alive ok", 95, true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := a.Transfer(saita.SAITA, alice, bob, u(tt.amount), tt.keepAlive)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}

	assert.Equal(t, uint64(5), balanceOf(t, a, saita.SAITA, alice))
	assert.Equal(t, uint64(95), balanceOf(t, a, saita.SAITA, bob))

	// expendable transfer may empty the account
	require.NoError(t, a.Transfer(saita.SAITA, alice, bob, u(5), false))
	assert.Equal(t, uint64(0), balanceOf(t, a, saita.SAITA, alice))

	// zero amount is a no-op
	require.NoError(t, a.Transfer(saita.SAITA, alice, bob, u(0), true))
}
