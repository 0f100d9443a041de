// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saitachain/staking/api/admin/health"
)

func TestAPIServerBodyLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	url, stop, err := StartAPIServer("localhost:0", handler, time.Second)
	require.NoError(t, err)
	defer stop()

	res, err := http.Post(url, "text/plain", strings.NewReader("small"))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res, err = http.Post(url, "text/plain", strings.NewReader(strings.Repeat("x", maxBodySize+1)))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
}

func TestAdminServer(t *testing.T) {
	var apiLogs atomic.Bool
	url, stop, err := StartAdminServer("localhost:0", health.New(time.Second), &apiLogs)
	require.NoError(t, err)
	defer stop()

	res, err := http.Get(url + "/loglevel")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestListenError(t *testing.T) {
	_, _, err := StartMetricsServer("256.0.0.1:1")
	assert.Error(t, err)
}
