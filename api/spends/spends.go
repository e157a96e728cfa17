// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package spends exposes the burn-on-spend path of the engine over http.
package spends

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/speedy"
)

type Spends struct {
	eng *ledger.Ledger
}

func New(eng *ledger.Ledger) *Spends {
	return &Spends{eng}
}

// SpendRequest burns amount from the player against a purchase category.
type SpendRequest struct {
	Player   speedy.Address       `json:"player"`
	Amount   uint64               `json:"amount"`
	Category ledger.SpendCategory `json:"category"`
}

// SpendResponse reports the balance left after a burn.
type SpendResponse struct {
	Player   speedy.Address       `json:"player"`
	Amount   uint64               `json:"amount"`
	Category ledger.SpendCategory `json:"category"`
	Balance  uint64               `json:"balance"`
}

func (s *Spends) handleSpend(w http.ResponseWriter, req *http.Request) error {
	var r SpendRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := s.eng.Spend(r.Player, r.Amount, r.Category); err != nil {
		return restutil.ConvertEngineError(err)
	}
	balance, err := s.eng.BalanceOf(r.Player)
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &SpendResponse{r.Player, r.Amount, r.Category, balance})
}

func (s *Spends) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("POST /spends").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSpend))
}
