// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package accounts exposes balance reads over http.
package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/speedy"
)

type Accounts struct {
	eng *ledger.Ledger
}

func New(eng *ledger.Ledger) *Accounts {
	return &Accounts{eng}
}

// AccountResponse is the balance view of a single account.
type AccountResponse struct {
	Address speedy.Address `json:"address"`
	Balance uint64         `json:"balance"`
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	addr, err := speedy.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "address"))
	}
	balance, err := a.eng.BalanceOf(*addr)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &AccountResponse{*addr, balance})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /accounts/{address}").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleGetAccount))
}
