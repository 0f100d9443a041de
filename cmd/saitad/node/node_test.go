// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/config"
	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

type recordedHealth struct {
	blocks []uint32
}

func (h *recordedHealth) NewBestBlock(number uint32) {
	h.blocks = append(h.blocks, number)
}

type notifyHealth chan uint32

func (h notifyHealth) NewBestBlock(number uint32) {
	select {
	case h <- number:
	default:
	}
}

func newTestRuntime(t *testing.T) *runtime.Runtime {
	return newTestRuntimeWith(t, func(*runtime.Genesis, runtime.Params) {})
}

func newTestRuntimeWith(t *testing.T, edit func(gen *runtime.Genesis, params runtime.Params)) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := config.Default()
	params, err := cfg.RuntimeParams()
	require.NoError(t, err)
	gen, err := cfg.RuntimeGenesis()
	require.NoError(t, err)
	edit(gen, params)

	rt, err := runtime.New(db, nil, params)
	require.NoError(t, err)
	_, err = rt.InitGenesis(gen)
	require.NoError(t, err)
	return rt
}

func currentEra(t *testing.T, rt *runtime.Runtime) saita.EraIndex {
	var era saita.EraIndex
	require.NoError(t, rt.Read(func(s *runtime.Services) (err error) {
		era, err = s.Staking.CurrentEra()
		return
	}))
	return era
}

func TestProduce(t *testing.T) {
	rt := newTestRuntime(t)
	health := &recordedHealth{}
	n := New(rt, health, Options{BlockInterval: time.Second, BlocksPerEra: 2})

	require.NoError(t, n.produce())
	assert.Equal(t, saita.EraIndex(0), currentEra(t, rt))

	require.NoError(t, n.produce())
	assert.Equal(t, saita.EraIndex(1), currentEra(t, rt), "era ends on block 2")

	require.NoError(t, n.produce())
	require.NoError(t, n.produce())
	assert.Equal(t, saita.EraIndex(2), currentEra(t, rt))

	assert.Equal(t, []uint32{1, 2, 3, 4}, health.blocks)
	assert.Equal(t, uint32(5), rt.BlockNumber())
}

func TestProduceWithEmptyTreasury(t *testing.T) {
	var validator saita.Address
	rt := newTestRuntimeWith(t, func(gen *runtime.Genesis, params runtime.Params) {
		kept := gen.Balances[:0]
		for _, b := range gen.Balances {
			if b.Account != params.Treasury {
				kept = append(kept, b)
			}
		}
		gen.Balances = kept
		validator = gen.Validators[0].Account
	})
	health := &recordedHealth{}
	n := New(rt, health, Options{BlockInterval: time.Second, BlocksPerEra: 1})

	require.NoError(t, n.produce())
	receipt := rt.Execute(&runtime.Call{
		Origin: runtime.Signed(validator),
		Method: "requestPayout",
		Args:   runtime.Args{Account: validator},
	})
	require.False(t, receipt.Reverted, "%v", receipt.Err)

	require.NoError(t, n.produce())
	require.NoError(t, n.produce())
	assert.Equal(t, saita.EraIndex(3), currentEra(t, rt))
	assert.Equal(t, []uint32{1, 2, 3}, health.blocks)
}

func TestRun(t *testing.T) {
	rt := newTestRuntime(t)
	blocks := make(chan uint32, 16)
	n := New(rt, notifyHealth(blocks), Options{BlockInterval: 10 * time.Millisecond})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()

	select {
	case <-blocks:
	case <-time.After(5 * time.Second):
		t.Fatal("no block produced")
	}
	cancel()
	require.NoError(t, <-done)
	assert.Greater(t, rt.BlockNumber(), uint32(1))
}
