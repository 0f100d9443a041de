// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package httpserver

import (
	"context"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/saitachain/staking/api/admin"
	"github.com/saitachain/staking/api/admin/health"
	"github.com/saitachain/staking/metrics"
)

// serve runs handler on addr until the returned stop func is called.
func serve(addr, name string, handler http.Handler) (net.Addr, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "listen %s addr [%v]", name, addr)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var goes sync.WaitGroup
	goes.Go(func() {
		srv.Serve(listener)
	})
	return listener.Addr(), func() {
		srv.Close()
		goes.Wait()
	}, nil
}

// StartAPIServer serves the public API. Request bodies are limited to 200KB.
func StartAPIServer(addr string, handler http.Handler, timeout time.Duration) (string, func(), error) {
	if timeout > 0 {
		handler = handleAPITimeout(handler, timeout)
	}
	handler = requestBodyLimit(handler)
	bound, stop, err := serve(addr, "API", handler)
	if err != nil {
		return "", nil, err
	}
	return "http://" + bound.String() + "/", stop, nil
}

func StartAdminServer(addr string, h *health.Health, apiLogs *atomic.Bool) (string, func(), error) {
	bound, stop, err := serve(addr, "admin API", admin.New(h, apiLogs))
	if err != nil {
		return "", nil, err
	}
	return "http://" + bound.String() + "/admin", stop, nil
}

func StartMetricsServer(addr string) (string, func(), error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	bound, stop, err := serve(addr, "metrics API", handlers.CompressHandler(router))
	if err != nil {
		return "", nil, err
	}
	return "http://" + bound.String() + "/metrics", stop, nil
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		h.ServeHTTP(w, r.WithContext(ctx))
	})
}

const maxBodySize = 200 * 1024

func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
		h.ServeHTTP(w, r)
	})
}
