// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := New(6 * time.Second)
	h.now = func() time.Time { return now }

	st := h.Status()
	assert.False(t, st.Healthy)
	assert.Nil(t, st.BlockProduction.Timestamp)

	h.NewBestBlock(7)
	assert.False(t, h.Status().Healthy, "not initialized")

	h.Initialized(true)
	st = h.Status()
	assert.True(t, st.Healthy)
	assert.Equal(t, uint32(7), st.BlockProduction.Number)
	require.NotNil(t, st.BlockProduction.Timestamp)
	assert.Equal(t, now, *st.BlockProduction.Timestamp)

	now = now.Add(11 * time.Second)
	assert.True(t, h.Status().Healthy)
	now = now.Add(time.Second)
	assert.False(t, h.Status().Healthy, "block production stalled")
}

func TestHealthAPI(t *testing.T) {
	h := New(time.Minute)
	router := mux.NewRouter()
	NewAPI(h).Mount(router, "/admin/health")

	get := func() (int, Status) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/health", nil))
		var st Status
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
		return rec.Code, st
	}

	code, st := get()
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.False(t, st.Initialized)

	h.Initialized(true)
	h.NewBestBlock(1)
	code, st = get()
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, st.Healthy)
	assert.Equal(t, uint32(1), st.BlockProduction.Number)
}
