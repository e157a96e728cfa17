// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
)

// AdminServer serves operator-only endpoints on a separate listener, so the
// public API address never exposes them.
type AdminServer struct {
	address  string
	logLevel *slog.LevelVar
}

func NewAdminServer(addr string, logLevel *slog.LevelVar) *AdminServer {
	return &AdminServer{
		address:  addr,
		logLevel: logLevel,
	}
}

// Start the admin server.
func (a *AdminServer) Start() (string, func(), error) {
	listener, err := net.Listen("tcp", a.address)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen admin API addr [%v]", a.address)
	}

	router := mux.NewRouter()
	handler := handlers.CompressHandler(router)
	sub := router.PathPrefix("/admin").Subrouter()

	sub.Path("/loglevel").
		Methods(http.MethodGet).
		Name("get-log-level").
		HandlerFunc(restutil.WrapHandlerFunc(a.getLogLevelHandler))
	sub.Path("/loglevel").
		Methods(http.MethodPost).
		Name("post-log-level").
		HandlerFunc(restutil.WrapHandlerFunc(a.postLogLevelHandler))
	sub.Path("/health").
		Methods(http.MethodGet).
		Name("get-health").
		HandlerFunc(restutil.WrapHandlerFunc(a.getHealthHandler))

	server := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		server.Serve(listener)
	}()

	cancel := func() {
		server.Close()
		wg.Wait()
	}

	return "http://" + listener.Addr().String() + "/admin", cancel, nil
}

type logLevelRequest struct {
	Level string `json:"level"`
}

type logLevelResponse struct {
	CurrentLevel string `json:"currentLevel"`
}

func (a *AdminServer) getLogLevelHandler(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, logLevelResponse{
		CurrentLevel: a.logLevel.Level().String(),
	})
}

func (a *AdminServer) postLogLevelHandler(w http.ResponseWriter, r *http.Request) error {
	var req logLevelRequest
	if err := restutil.ParseJSON(r.Body, &req); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "invalid request body"))
	}

	switch req.Level {
	case "debug":
		a.logLevel.Set(slog.LevelDebug)
	case "info":
		a.logLevel.Set(slog.LevelInfo)
	case "warn":
		a.logLevel.Set(slog.LevelWarn)
	case "error":
		a.logLevel.Set(slog.LevelError)
	default:
		return restutil.BadRequest(fmt.Errorf("invalid verbosity level: %s", req.Level))
	}
	return restutil.WriteJSON(w, logLevelResponse{
		CurrentLevel: a.logLevel.Level().String(),
	})
}

func (a *AdminServer) getHealthHandler(w http.ResponseWriter, _ *http.Request) error {
	return restutil.WriteJSON(w, restutil.M{"healthy": true})
}
