// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package logs exposes audit log queries over http.
package logs

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/logdb"
)

type Logs struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Logs {
	return &Logs{
		db,
		logsLimit,
	}
}

func (l *Logs) handleFilterRewards(w http.ResponseWriter, req *http.Request) error {
	var filter logdb.RewardFilter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := l.checkOptions(filter.Options); err != nil {
		return err
	}
	if filter.Options == nil {
		// detect whether there are more records than the default limit
		filter.Options = &logdb.Options{Offset: 0, Limit: l.limit + 1}
	}

	records, err := l.db.FilterRewards(req.Context(), &filter)
	if err != nil {
		return err
	}
	if len(records) > int(l.limit) {
		return restutil.Forbidden(fmt.Errorf("the number of filtered records exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}
	return restutil.WriteJSON(w, records)
}

func (l *Logs) handleFilterSpends(w http.ResponseWriter, req *http.Request) error {
	var filter logdb.SpendFilter
	if err := restutil.ParseJSON(req.Body, &filter); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := l.checkOptions(filter.Options); err != nil {
		return err
	}
	if filter.Options == nil {
		filter.Options = &logdb.Options{Offset: 0, Limit: l.limit + 1}
	}

	records, err := l.db.FilterSpends(req.Context(), &filter)
	if err != nil {
		return err
	}
	if len(records) > int(l.limit) {
		return restutil.Forbidden(fmt.Errorf("the number of filtered records exceeds the maximum allowed value of %d, please use pagination", l.limit))
	}
	return restutil.WriteJSON(w, records)
}

func (l *Logs) checkOptions(options *logdb.Options) error {
	if options != nil && options.Limit > l.limit {
		return restutil.Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", l.limit))
	}
	return nil
}

func (l *Logs) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/reward").
		Methods(http.MethodPost).
		Name("POST /logs/reward").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleFilterRewards))
	sub.Path("/spend").
		Methods(http.MethodPost).
		Name("POST /logs/spend").
		HandlerFunc(restutil.WrapHandlerFunc(l.handleFilterSpends))
}
