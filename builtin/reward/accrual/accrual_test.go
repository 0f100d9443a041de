// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accrual

import (
	"testing"

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

func TestAccruals(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	s := New(storage.NewContext(saita.Address{1}, state.New(db)))
	v, n1, n2 := saita.Address{0x10}, saita.Address{0x21}, saita.Address{0x20}

	require.NoError(t, s.CreditValidator(v, uint256.NewInt(5)))
	require.NoError(t, s.CreditValidator(v, uint256.NewInt(6)))
	require.NoError(t, s.CreditNominator(v, n1, uint256.NewInt(7)))
	require.NoError(t, s.CreditNominator(v, n2, uint256.NewInt(8)))
	require.NoError(t, s.CreditNominator(v, n1, uint256.NewInt(1)))

	got, err := s.Validator(v)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(11), got)

	nominators, err := s.Nominators(v)
	require.NoError(t, err)
	assert.Equal(t, []saita.Address{n2, n1}, nominators)

	taken, err := s.TakeNominator(v, n1)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(8), taken)
	got, err = s.Nominator(v, n1)
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	taken, err = s.TakeValidator(v)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(11), taken)
	taken, err = s.TakeValidator(v)
	require.NoError(t, err)
	assert.True(t, taken.IsZero())

	require.NoError(t, s.CreditValidator(n1, fixedpoint.MaxBalance))
	assert.ErrorIs(t, s.CreditValidator(n1, uint256.NewInt(1)), reverts.ErrOverflow)
}
