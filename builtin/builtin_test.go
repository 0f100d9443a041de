// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/saita"
	"github.com/saitachain/staking/state"
)

func TestModuleAddresses(t *testing.T) {
	seen := make(map[saita.Address]string)
	for _, m := range []*module{Assets, Staking, Reward, LiquidStaking, Runtime} {
		assert.False(t, m.Address.IsZero(), m.Name())
		if other, ok := seen[m.Address]; ok {
			t.Fatalf("%s and %s share an address", m.Name(), other)
		}
		seen[m.Address] = m.Name()
	}
	assert.Equal(t, saita.BytesToAddress([]byte("Reward")), Reward.Address)
}

func TestWithState(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	st := state.New(db)

	ctx := LiquidStaking.WithState(st)
	assert.Equal(t, LiquidStaking.Address, ctx.Address())
	assert.Same(t, st, ctx.State())
}
