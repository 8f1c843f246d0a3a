// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"bytes"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/metrics"
	"github.com/vechain/rewardpool/thor"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func initSubscriptionsServer(t *testing.T) (*Hub, *httptest.Server) {
	hub := NewHub()
	router := mux.NewRouter()
	New(hub, []string{"https://app.example.org"}).Mount(router, "/subscriptions")
	ts := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		ts.Close()
	})
	return hub, ts
}

func dial(t *testing.T, ts *httptest.Server, query string, header http.Header) (*websocket.Conn, *http.Response, error) {
	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/event", RawQuery: query}
	return websocket.DefaultDialer.Dial(u.String(), header)
}

func TestSubscribeEvents(t *testing.T) {
	hub, ts := initSubscriptionsServer(t)

	conn, resp, err := dial(t, ts, "kind=RewardPaid&account="+alice.String(), nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.NoError(t, hub.Emit(
		&rewards.Event{Kind: rewards.EventStaked, Time: 1, Account: alice, Amount: big.NewInt(10)},
		&rewards.Event{Kind: rewards.EventRewardPaid, Time: 2, Account: bob, Amount: big.NewInt(3)},
		&rewards.Event{Kind: rewards.EventRewardPaid, Time: 3, Account: alice, Amount: big.NewInt(7)},
	))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg EventMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "RewardPaid", msg.Kind)
	assert.Equal(t, uint64(3), msg.Time)
	assert.Equal(t, &alice, msg.Account)
	assert.Nil(t, msg.Asset)
	assert.Equal(t, "7", (*big.Int)(msg.Amount).String())
}

func TestSubscribeEventsAll(t *testing.T) {
	hub, ts := initSubscriptionsServer(t)

	conn, _, err := dial(t, ts, "", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, hub.Emit(
		&rewards.Event{Kind: rewards.EventPeriodSet, Time: 1, Start: 10, End: 20, Rate: big.NewInt(5)},
		&rewards.Event{Kind: rewards.EventRewardAdded, Time: 1, Amount: big.NewInt(50), Rate: big.NewInt(5)},
	))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var first, second EventMessage
	require.NoError(t, conn.ReadJSON(&first))
	require.NoError(t, conn.ReadJSON(&second))
	assert.Equal(t, "PeriodSet", first.Kind)
	assert.Equal(t, uint64(10), first.Start)
	assert.Equal(t, uint64(20), first.End)
	assert.Nil(t, first.Account)
	assert.Equal(t, "RewardAdded", second.Kind)
}

func TestSubscribeEventsRejected(t *testing.T) {
	_, ts := initSubscriptionsServer(t)

	_, resp, err := dial(t, ts, "kind=Minted", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = dial(t, ts, "account=0xzz", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, resp, err = dial(t, ts, "", http.Header{"Origin": []string{"https://evil.example.org"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	conn, _, err := dial(t, ts, "", http.Header{"Origin": []string{"https://app.example.org"}})
	require.NoError(t, err)
	conn.Close()
}

func TestHubClose(t *testing.T) {
	hub, ts := initSubscriptionsServer(t)

	conn, _, err := dial(t, ts, "", nil)
	require.NoError(t, err)
	defer conn.Close()

	hub.Close()
	hub.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}

func TestHubDropsWhenFull(t *testing.T) {
	hub := NewHub()
	ch := make(chan *rewards.Event, 1)
	hub.Subscribe(ch)

	ev := &rewards.Event{Kind: rewards.EventStaked}
	require.NoError(t, hub.Emit(ev, ev, ev))
	assert.Len(t, ch, 1)

	hub.Unsubscribe(ch)
	<-ch
	require.NoError(t, hub.Emit(ev))
	assert.Empty(t, ch)
}

func activeWebsockets(t *testing.T) float64 {
	rec := httptest.NewRecorder()
	metrics.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)

	mf, ok := families["rewardpool_api_active_websocket_count"]
	if !ok {
		return 0
	}
	for _, m := range mf.GetMetric() {
		for _, l := range m.GetLabel() {
			if l.GetName() == "subject" && l.GetValue() == "event" {
				return m.GetGauge().GetValue()
			}
		}
	}
	return 0
}

func TestActiveWebsocketMetric(t *testing.T) {
	_, ts := initSubscriptionsServer(t)

	conn1, _, err := dial(t, ts, "", nil)
	require.NoError(t, err)
	conn2, _, err := dial(t, ts, "", nil)
	require.NoError(t, err)
	defer conn2.Close()

	// handlers of earlier tests may still be winding down
	assert.Eventually(t, func() bool {
		return activeWebsockets(t) == 2
	}, 5*time.Second, 10*time.Millisecond)

	conn1.Close()
	assert.Eventually(t, func() bool {
		return activeWebsockets(t) == 1
	}, 5*time.Second, 10*time.Millisecond)
}
