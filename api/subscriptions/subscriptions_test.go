// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/api/events"
	"github.com/saitachain/staking/config"
	"github.com/saitachain/staking/eventdb"
	"github.com/saitachain/staking/lvldb"
	"github.com/saitachain/staking/runtime"
	"github.com/saitachain/staking/saita"
)

func newTestRuntime(t *testing.T) *runtime.Runtime {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	edb, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { edb.Close() })

	cfg := config.Default()
	params, err := cfg.RuntimeParams()
	require.NoError(t, err)
	gen, err := cfg.RuntimeGenesis()
	require.NoError(t, err)

	rt, err := runtime.New(db, edb, params)
	require.NoError(t, err)
	_, err = rt.InitGenesis(gen)
	require.NoError(t, err)
	return rt
}

func tokens(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(18)))
}

func stakeAndCommit(t *testing.T, rt *runtime.Runtime, who saita.Address, amount uint64) {
	receipt := rt.Execute(&runtime.Call{Origin: runtime.Signed(who), Method: "stake", Args: runtime.Args{Amount: tokens(amount)}})
	require.False(t, receipt.Reverted, receipt.Error)
	_, _, err := rt.Commit()
	require.NoError(t, err)
}

func newTestServer(t *testing.T, rt *runtime.Runtime, backtrace uint32) (*httptest.Server, *Subscriptions) {
	subs := New(rt, rt.EventDB(), nil, backtrace)
	router := mux.NewRouter()
	subs.Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(func() {
		subs.Close()
		ts.Close()
	})
	return ts, subs
}

func dial(t *testing.T, ts *httptest.Server, query string) (*websocket.Conn, *http.Response, error) {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/events", RawQuery: query}
	return websocket.DefaultDialer.Dial(u.String(), nil)
}

func readEvent(t *testing.T, conn *websocket.Conn) *events.Event {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var ev events.Event
	require.NoError(t, conn.ReadJSON(&ev))
	return &ev
}

func TestSubscribeEvents(t *testing.T) {
	rt := newTestRuntime(t)
	dev := config.DevAccounts()
	stakeAndCommit(t, rt, dev[4].Address, 5)

	ts, _ := newTestServer(t, rt, 100)
	conn, resp, err := dial(t, ts, "pos=1&name=Staked")
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	// backlog
	ev := readEvent(t, conn)
	assert.Equal(t, "Staked", ev.Name)
	require.NotNil(t, ev.BlockNumber)
	assert.Equal(t, uint32(1), *ev.BlockNumber)
	require.NotNil(t, ev.Account)
	assert.Equal(t, dev[4].Address, *ev.Account)

	// live
	stakeAndCommit(t, rt, dev[5].Address, 7)
	ev = readEvent(t, conn)
	require.NotNil(t, ev.Amount)
	assert.Equal(t, "7", *ev.Amount)
	assert.Equal(t, uint32(2), *ev.BlockNumber)
}

func TestSubscribeFilters(t *testing.T) {
	rt := newTestRuntime(t)
	dev := config.DevAccounts()
	ts, _ := newTestServer(t, rt, 100)

	conn, _, err := dial(t, ts, "account="+dev[5].Address.String())
	require.NoError(t, err)
	defer conn.Close()

	stakeAndCommit(t, rt, dev[4].Address, 5)
	stakeAndCommit(t, rt, dev[5].Address, 6)

	ev := readEvent(t, conn)
	assert.Equal(t, dev[5].Address, *ev.Account)
	assert.Equal(t, "6", *ev.Amount)
}

func TestBadPosition(t *testing.T) {
	rt := newTestRuntime(t)
	stakeAndCommit(t, rt, config.DevAccounts()[4].Address, 5)
	stakeAndCommit(t, rt, config.DevAccounts()[4].Address, 5)
	stakeAndCommit(t, rt, config.DevAccounts()[4].Address, 5)
	ts, _ := newTestServer(t, rt, 1)

	tests := []struct {
		query string
		code  int
	}{
		{"pos=abc", http.StatusBadRequest},
		{"pos=10", http.StatusBadRequest},
		{"pos=0", http.StatusForbidden},
		{"account=0x12", http.StatusBadRequest},
	}
	for _, tt := range tests {
		_, resp, err := dial(t, ts, tt.query)
		assert.Error(t, err, tt.query)
		require.NotNil(t, resp, tt.query)
		assert.Equal(t, tt.code, resp.StatusCode, tt.query)
	}
}
