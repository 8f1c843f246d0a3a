// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/api/middleware"
	"github.com/vechain/rewardpool/api/pool"
	"github.com/vechain/rewardpool/api/subscriptions"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/builtin/rewards/transfer"
	"github.com/vechain/rewardpool/eventdb"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var (
	poolAddr     = thor.BytesToAddress([]byte("pool"))
	stakingAsset = thor.BytesToAddress([]byte("stk"))
	rewardAsset  = thor.BytesToAddress([]byte("rwd"))
	owner        = thor.BytesToAddress([]byte("owner"))
	alice        = thor.BytesToAddress([]byte("alice"))
)

func initAPIServer(t *testing.T) *httptest.Server {
	store, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	events, err := eventdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { events.Close() })

	hub := subscriptions.NewHub()
	t.Cleanup(hub.Close)

	assets := transfer.NewLedger()
	assets.Mint(stakingAsset, alice, big.NewInt(1000))
	vault := assets.Vault(poolAddr, stakingAsset, rewardAsset)

	p, err := rewards.New(state.New(store), rewards.Config{
		Address:         poolAddr,
		StakingAsset:    stakingAsset,
		RewardAsset:     rewardAsset,
		StakingDecimals: 18,
		RewardDecimals:  18,
		PeriodStart:     0,
		PeriodEnd:       10,
	}, rewards.Dependencies{
		Staking: vault,
		Reward:  vault,
		Clock:   clock.NewManual(0),
		Emitter: rewards.Tee(events, hub),
	})
	require.NoError(t, err)
	require.NoError(t, p.Initialize())

	var reqLogs atomic.Bool
	reqLogs.Store(true)
	ts := httptest.NewServer(New(p, authority.NewOwner(owner), events, hub, Options{
		AllowedOrigins:  "*",
		EventsLimit:     100,
		EnableMetrics:   true,
		EnableReqLogger: &reqLogs,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, caller thor.Address, body string) *http.Response {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set(pool.CallerHeader, caller.String())
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	return res
}

func TestAPI(t *testing.T) {
	ts := initAPIServer(t)

	// the websocket upgrade passes through every middleware
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/event", RawQuery: "kind=Staked"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn.Close()

	res := post(t, ts.URL+"/pool/accounts/"+alice.String()+"/stake", alice, `{"amount":"10"}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get(middleware.RequestIDHeader))

	// the stake was recorded by the event sink
	res = post(t, ts.URL+"/events", alice, `{"kinds":["Staked"]}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg subscriptions.EventMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "Staked", msg.Kind)
	assert.Equal(t, &alice, msg.Account)

	res, err = http.Get(ts.URL + "/unknown")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMetricsMiddleware(t *testing.T) {
	ts := initAPIServer(t)

	res, err := http.Get(ts.URL + "/pool")
	require.NoError(t, err)
	res.Body.Close()
	res, err = http.Get(ts.URL + "/pool/accounts/0x")
	require.NoError(t, err)
	res.Body.Close()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	seen := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "rewardpool_api_request_count" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, l := range m.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			seen[labels["name"]+" "+labels["code"]] += m.GetCounter().GetValue()
		}
	}
	assert.GreaterOrEqual(t, seen["GET /pool 200"], float64(1))
	assert.GreaterOrEqual(t, seen["GET /pool/accounts/{address} 400"], float64(1))
}
