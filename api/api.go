// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/saitachain/staking/api/accounts"
	"github.com/saitachain/staking/api/calls"
	"github.com/saitachain/staking/api/era"
	"github.com/saitachain/staking/api/events"
	"github.com/saitachain/staking/api/middleware"
	"github.com/saitachain/staking/api/payouts"
	"github.com/saitachain/staking/api/pool"
	"github.com/saitachain/staking/api/rewards"
	"github.com/saitachain/staking/api/subscriptions"
	"github.com/saitachain/staking/log"
	"github.com/saitachain/staking/runtime"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins string
	EventsLimit    uint64
	EnableMetrics  bool

	// BacktraceLimit bounds how far behind the best block a subscription may start.
	BacktraceLimit uint32

	// EnableReqLogger toggles request logging at runtime.
	EnableReqLogger *atomic.Bool

	// DevMode accepts root calls.
	DevMode bool
}

// New return api router and a func closing open subscriptions.
func New(rt *runtime.Runtime, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}
	if opts.EventsLimit == 0 {
		opts.EventsLimit = 1000
	}
	if opts.BacktraceLimit == 0 {
		opts.BacktraceLimit = 1000
	}
	closeFn := func() {}

	router := mux.NewRouter()

	pool.New(rt).
		Mount(router, "/pool")
	accounts.New(rt).
		Mount(router, "/accounts")
	rewards.New(rt).
		Mount(router, "/rewards")
	payouts.New(rt).
		Mount(router, "/payouts")
	era.New(rt).
		Mount(router, "/era")
	calls.New(rt, opts.DevMode).
		Mount(router, "/calls")
	if db := rt.EventDB(); db != nil {
		events.New(db, opts.EventsLimit).
			Mount(router, "/events")
		subs := subscriptions.New(rt, db, origins, opts.BacktraceLimit)
		subs.Mount(router, "/subscriptions")
		closeFn = subs.Close
	}

	if opts.EnableMetrics {
		router.Use(middleware.Metrics)
	}
	if opts.EnableReqLogger != nil {
		router.Use(middleware.RequestLogger(logger, opts.EnableReqLogger))
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type"}),
	)(handler)
	return handler.ServeHTTP, closeFn
}
