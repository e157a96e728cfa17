// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package admin exposes the privileged ledger operations over http. The
// caller identifies itself with the x-authority header; the engine decides
// whether that address is the admin.
package admin

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/speedyracing/speedy/api/restutil"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/rates"
	"github.com/speedyracing/speedy/speedy"
)

// AuthorityHeader carries the caller address of a privileged request.
const AuthorityHeader = "x-authority"

type Admin struct {
	eng *ledger.Ledger
}

func New(eng *ledger.Ledger) *Admin {
	return &Admin{eng}
}

func caller(req *http.Request) (speedy.Address, error) {
	raw := req.Header.Get(AuthorityHeader)
	if raw == "" {
		return speedy.Address{}, restutil.Forbidden(errors.New("missing " + AuthorityHeader + " header"))
	}
	addr, err := speedy.ParseAddress(raw)
	if err != nil {
		return speedy.Address{}, restutil.BadRequest(errors.WithMessage(err, AuthorityHeader))
	}
	return *addr, nil
}

// InitializeRequest creates the ledger. The named admin owns every later
// privileged operation; the initial supply is minted to it.
type InitializeRequest struct {
	Admin         speedy.Address  `json:"admin"`
	AssetID       *speedy.Bytes32 `json:"assetId"`
	InitialSupply uint64          `json:"initialSupply"`
}

// InitializeResponse reports the created control record.
type InitializeResponse struct {
	Admin   speedy.Address `json:"admin"`
	AssetID speedy.Bytes32 `json:"assetId"`
	Pool    speedy.Address `json:"pool"`
}

func (a *Admin) handleInitialize(w http.ResponseWriter, req *http.Request) error {
	var r InitializeRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if r.Admin.IsZero() {
		return restutil.BadRequest(errors.New("admin: zero address"))
	}
	assetID := speedy.AssetID
	if r.AssetID != nil {
		assetID = *r.AssetID
	}
	if err := a.eng.Initialize(r.Admin, assetID, r.InitialSupply); err != nil {
		return restutil.ConvertEngineError(err)
	}
	st, err := a.eng.State()
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &InitializeResponse{st.Admin, st.AssetID, st.Pool})
}

// FundRequest moves amount from the admin balance into the custody pool.
type FundRequest struct {
	Amount uint64 `json:"amount"`
}

func (a *Admin) handleFundPool(w http.ResponseWriter, req *http.Request) error {
	from, err := caller(req)
	if err != nil {
		return err
	}
	var r FundRequest
	if err := restutil.ParseJSON(req.Body, &r); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.eng.FundPool(from, r.Amount); err != nil {
		return restutil.ConvertEngineError(err)
	}
	poolBalance, err := a.eng.PoolBalance()
	if err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, restutil.M{"poolBalance": poolBalance})
}

func (a *Admin) handleUpdateRates(w http.ResponseWriter, req *http.Request) error {
	from, err := caller(req)
	if err != nil {
		return err
	}
	var table rates.Table
	if err := restutil.ParseJSON(req.Body, &table); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	if err := a.eng.UpdateRates(from, table); err != nil {
		return restutil.ConvertEngineError(err)
	}
	return restutil.WriteJSON(w, &table)
}

func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/ledger").
		Methods(http.MethodPost).
		Name("POST /admin/ledger").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleInitialize))
	sub.Path("/pool/fund").
		Methods(http.MethodPost).
		Name("POST /admin/pool/fund").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleFundPool))
	sub.Path("/rates").
		Methods(http.MethodPut).
		Name("PUT /admin/rates").
		HandlerFunc(restutil.WrapHandlerFunc(a.handleUpdateRates))
}
