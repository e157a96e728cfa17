// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/speedyracing/speedy/api/accounts"
	"github.com/speedyracing/speedy/api/admin"
	"github.com/speedyracing/speedy/api/logs"
	"github.com/speedyracing/speedy/api/rewards"
	"github.com/speedyracing/speedy/api/spends"
	"github.com/speedyracing/speedy/api/status"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/log"
	"github.com/speedyracing/speedy/logdb"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins  string
	PprofOn         bool
	EnableReqLogger bool
	EnableMetrics   bool
	LogsLimit       uint64
}

// New return api router
func New(
	eng *ledger.Ledger,
	logDB *logdb.LogDB,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	accounts.New(eng).
		Mount(router, "/accounts")
	rewards.New(eng).
		Mount(router, "/rewards")
	spends.New(eng).
		Mount(router, "/spends")
	status.New(eng).
		Mount(router, "/ledger")
	logs.New(logDB, opts.LogsLimit).
		Mount(router, "/logs")
	admin.New(eng).
		Mount(router, "/admin")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", admin.AuthorityHeader}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP
}
