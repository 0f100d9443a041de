// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/admin/apilogs"
	"github.com/saitachain/staking/api/admin/health"
	"github.com/saitachain/staking/api/admin/loglevel"
)

// New returns the handler of the admin server.
func New(h *health.Health, apiLogs *atomic.Bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New().Mount(sub, "/loglevel")
	health.NewAPI(h).Mount(sub, "/health")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
