// Copyright (c) 2025 The SpeedyRacing developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rewards

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
	admin  = speedy.BytesToAddress([]byte("admin"))
	player = speedy.BytesToAddress([]byte("player"))
)

func initRewardsServer(t *testing.T, poolFunds uint64) *httptest.Server {
	store, err := kv.NewMem()
	require.NoError(t, err)
	logs, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(logs.Close)

	eng, err := ledger.New(store, logs)
	require.NoError(t, err)
	require.NoError(t, eng.Initialize(admin, speedy.AssetID, poolFunds))
	if poolFunds > 0 {
		require.NoError(t, eng.FundPool(admin, poolFunds))
	}

	router := mux.NewRouter()
	New(eng).Mount(router, "/rewards")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func httpPost(t *testing.T, url string, body string) (int, []byte) {
	res, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func TestRaceEndpoint(t *testing.T) {
	ts := initRewardsServer(t, 1_000_000_000)

	status, body := httpPost(t, ts.URL+"/rewards/race",
		`{"player":"`+player.String()+`","raceId":7,"completed":true,"won":true,"distance":520,"obstaclesAvoided":3,"bonusesCollected":1,"lapTime":0,"score":0}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var payout PayoutResponse
	require.NoError(t, json.Unmarshal(body, &payout))
	assert.Equal(t, player, payout.Player)
	assert.Equal(t, uint64(153_600_000), payout.Amount)
}

func TestChallengeEndpoint(t *testing.T) {
	ts := initRewardsServer(t, 1_000_000_000)

	status, body := httpPost(t, ts.URL+"/rewards/challenge",
		`{"player":"`+player.String()+`","difficulty":"medium","challengeId":3}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var payout PayoutResponse
	require.NoError(t, json.Unmarshal(body, &payout))
	assert.Equal(t, uint64(100_000_000), payout.Amount)

	// outside the closed difficulty set
	status, _ = httpPost(t, ts.URL+"/rewards/challenge",
		`{"player":"`+player.String()+`","difficulty":"nightmare","challengeId":3}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestWelcomeEndpoint(t *testing.T) {
	ts := initRewardsServer(t, 1_000_000_000)

	status, body := httpPost(t, ts.URL+"/rewards/welcome", `{"player":"`+player.String()+`"}`)
	require.Equal(t, http.StatusOK, status, string(body))

	var payout PayoutResponse
	require.NoError(t, json.Unmarshal(body, &payout))
	assert.Equal(t, uint64(100_000_000), payout.Amount)
}

func TestStakingEndpointOverflow(t *testing.T) {
	ts := initRewardsServer(t, 1_000_000_000)

	status, _ := httpPost(t, ts.URL+"/rewards/staking",
		`{"player":"`+player.String()+`","rarity":"legendary","hours":18446744073709551615,"positionId":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestInsufficientPool(t *testing.T) {
	ts := initRewardsServer(t, 0)

	status, _ := httpPost(t, ts.URL+"/rewards/welcome", `{"player":"`+player.String()+`"}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestStrictBody(t *testing.T) {
	ts := initRewardsServer(t, 1_000_000_000)

	status, _ := httpPost(t, ts.URL+"/rewards/welcome",
		`{"player":"`+player.String()+`","extra":1}`)
	assert.Equal(t, http.StatusBadRequest, status)
}
