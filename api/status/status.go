// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package status exposes the ledger control record over http.
package status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/rates"
	"github.com/speedyracing/speedy/speedy"
)

type Status struct {
	eng *ledger.Ledger
}

func New(eng *ledger.Ledger) *Status {
	return &Status{eng}
}

// LedgerResponse is the public view of the ledger state.
type LedgerResponse struct {
	Admin                 speedy.Address `json:"admin"`
	AssetID               speedy.Bytes32 `json:"assetId"`
	Pool                  speedy.Address `json:"pool"`
	PoolBalance           uint64         `json:"poolBalance"`
	CumulativeDistributed uint64         `json:"cumulativeDistributed"`
	TotalSupply           uint64         `json:"totalSupply"`
	TotalBurned           uint64         `json:"totalBurned"`
	Rates                 rates.Table    `json:"rates"`
}

func (s *Status) handleGetLedger(w http.ResponseWriter, req *http.Request) error {
	st, err := s.eng.State()
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	poolBalance, err := s.eng.PoolBalance()
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	total, burned, err := s.eng.Supply()
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &LedgerResponse{
		Admin:                 st.Admin,
		AssetID:               st.AssetID,
		Pool:                  st.Pool,
		PoolBalance:           poolBalance,
		CumulativeDistributed: st.CumulativeDistributed,
		TotalSupply:           total,
		TotalBurned:           burned,
		Rates:                 st.Rates,
	})
}

func (s *Status) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /ledger").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetLedger))
}
