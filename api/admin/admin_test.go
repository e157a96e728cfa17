// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedyracing/speedy/kv"
	"github.com/speedyracing/speedy/ledger"
	"github.com/speedyracing/speedy/logdb"
	"github.com/speedyracing/speedy/speedy"
)

var (
	adminAddr = speedy.BytesToAddress([]byte("admin"))
	someone   = speedy.BytesToAddress([]byte("someone"))
)

func initAdminServer(t *testing.T) (*httptest.Server, *ledger.Ledger) {
	store, err := kv.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(logs.Close)

	eng, err := ledger.New(store, logs)
	require.NoError(t, err)

	router := mux.NewRouter()
	New(eng).Mount(router, "/admin")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, eng
}

func request(t *testing.T, method, url, authority, body string) (int, []byte) {
	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if authority != "" {
		req.Header.Set(AuthorityHeader, authority)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestInitializeEndpoint(t *testing.T) {
	ts, eng := initAdminServer(t)

	status, body := request(t, http.MethodPost, ts.URL+"/admin/ledger", "",
		`{"admin":"`+adminAddr.String()+`","initialSupply":1000000}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var res InitializeResponse
	require.NoError(t, json.Unmarshal(body, &res))
	assert.Equal(t, adminAddr, res.Admin)
	assert.Equal(t, speedy.AssetID, res.AssetID)
	assert.False(t, res.Pool.IsZero())

	st, err := eng.State()
	require.NoError(t, err)
	assert.Equal(t, adminAddr, st.Admin)

	// the second initialization conflicts and leaves the first admin in place
	status, _ = request(t, http.MethodPost, ts.URL+"/admin/ledger", "",
		`{"admin":"`+someone.String()+`","initialSupply":5}`)
	assert.Equal(t, http.StatusConflict, status)

	st, err = eng.State()
	require.NoError(t, err)
	assert.Equal(t, adminAddr, st.Admin)
}

func TestInitializeRejectsZeroAdmin(t *testing.T) {
	ts, _ := initAdminServer(t)

	status, _ := request(t, http.MethodPost, ts.URL+"/admin/ledger", "",
		`{"admin":"0x0000000000000000000000000000000000000000","initialSupply":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestFundPoolEndpoint(t *testing.T) {
	ts, eng := initAdminServer(t)
	require.NoError(t, eng.Initialize(adminAddr, speedy.AssetID, 1000))

	// no authority header
	status, _ := request(t, http.MethodPost, ts.URL+"/admin/pool/fund", "", `{"amount":400}`)
	assert.Equal(t, http.StatusForbidden, status)

	// wrong caller
	status, _ = request(t, http.MethodPost, ts.URL+"/admin/pool/fund", someone.String(), `{"amount":400}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := request(t, http.MethodPost, ts.URL+"/admin/pool/fund", adminAddr.String(), `{"amount":400}`)
	require.Equal(t, http.StatusOK, status, string(body))

	poolBalance, err := eng.PoolBalance()
	require.NoError(t, err)
	assert.Equal(t, uint64(400), poolBalance)

	// funding beyond the admin balance conflicts
	status, _ = request(t, http.MethodPost, ts.URL+"/admin/pool/fund", adminAddr.String(), `{"amount":601}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestUpdateRatesEndpoint(t *testing.T) {
	ts, eng := initAdminServer(t)
	require.NoError(t, eng.Initialize(adminAddr, speedy.AssetID, 0))

	st, err := eng.State()
	require.NoError(t, err)
	tbl := st.Rates
	tbl.WelcomeBonus = 0
	payload, err := json.Marshal(&tbl)
	require.NoError(t, err)

	status, _ := request(t, http.MethodPut, ts.URL+"/admin/rates", someone.String(), string(payload))
	assert.Equal(t, http.StatusForbidden, status)

	status, body := request(t, http.MethodPut, ts.URL+"/admin/rates", adminAddr.String(), string(payload))
	require.Equal(t, http.StatusOK, status, string(body))

	st, err = eng.State()
	require.NoError(t, err)
	assert.Zero(t, st.Rates.WelcomeBonus)
}
