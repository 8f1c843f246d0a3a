// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/rewardpool/api/pool"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/builtin/rewards/clock"
	"github.com/vechain/rewardpool/builtin/rewards/transfer"
	"github.com/vechain/rewardpool/lvldb"
	"github.com/vechain/rewardpool/state"
	"github.com/vechain/rewardpool/thor"
)

var (
	poolAddr     = thor.BytesToAddress([]byte("pool"))
	stakingAsset = thor.BytesToAddress([]byte("stk"))
	rewardAsset  = thor.BytesToAddress([]byte("rwd"))
	owner        = thor.BytesToAddress([]byte("owner"))
	alice        = thor.BytesToAddress([]byte("alice"))
)

type testServer struct {
	*httptest.Server
	clk    *clock.Manual
	assets *transfer.Ledger
}

func initPoolServer(t *testing.T) *testServer {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assets := transfer.NewLedger()
	assets.Mint(stakingAsset, alice, big.NewInt(10_000))
	assets.Mint(rewardAsset, poolAddr, big.NewInt(1000))

	clk := clock.NewManual(0)
	vault := assets.Vault(poolAddr, stakingAsset, rewardAsset)
	p, err := rewards.New(state.New(db), rewards.Config{
		Address:         poolAddr,
		StakingAsset:    stakingAsset,
		RewardAsset:     rewardAsset,
		StakingDecimals: 18,
		RewardDecimals:  18,
		PeriodStart:     0,
		PeriodEnd:       10,
	}, rewards.Dependencies{
		Staking:   vault,
		Reward:    vault,
		Recoverer: vault,
		Clock:     clk,
	})
	require.NoError(t, err)
	require.NoError(t, p.Initialize())

	router := mux.NewRouter()
	pool.New(p, authority.NewOwner(owner)).Mount(router, "/pool")

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return &testServer{Server: ts, clk: clk, assets: assets}
}

func (ts *testServer) do(t *testing.T, method, path string, caller *thor.Address, body any) (int, []byte) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, rd)
	require.NoError(t, err)
	if caller != nil {
		req.Header.Set(pool.CallerHeader, caller.String())
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, data
}

func amount(v int64) map[string]string {
	return map[string]string{"amount": big.NewInt(v).String()}
}

func decodeAccount(t *testing.T, data []byte) *pool.Account {
	var acct pool.Account
	require.NoError(t, json.Unmarshal(data, &acct))
	return &acct
}

func TestPoolLifecycle(t *testing.T) {
	ts := initPoolServer(t)
	accountPath := "/pool/accounts/" + alice.String()

	code, data := ts.do(t, http.MethodPost, "/pool/period", &owner, map[string]any{"start": 0, "end": 100, "total": "1000"})
	require.Equal(t, http.StatusOK, code, string(data))
	var snap pool.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "10", (*big.Int)(snap.Period.Rate).String())
	assert.Equal(t, uint64(100), snap.Period.End)
	assert.Equal(t, "active", snap.Period.Status)
	assert.Equal(t, "1000", (*big.Int)(snap.TotalAllocated).String())

	code, data = ts.do(t, http.MethodPost, accountPath+"/stake", &alice, amount(100))
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "100", (*big.Int)(decodeAccount(t, data).Balance).String())

	ts.clk.Set(50)
	code, data = ts.do(t, http.MethodGet, accountPath, nil, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "500", (*big.Int)(decodeAccount(t, data).Earned).String())

	code, data = ts.do(t, http.MethodPost, accountPath+"/reward", &alice, nil)
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "0", (*big.Int)(decodeAccount(t, data).Earned).String())
	assert.Equal(t, "500", ts.assets.BalanceOf(rewardAsset, alice).String())

	code, data = ts.do(t, http.MethodPost, accountPath+"/withdraw", &alice, amount(40))
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "60", (*big.Int)(decodeAccount(t, data).Balance).String())

	ts.clk.Set(100)
	code, data = ts.do(t, http.MethodPost, accountPath+"/exit", &alice, nil)
	require.Equal(t, http.StatusOK, code, string(data))
	acct := decodeAccount(t, data)
	assert.Equal(t, "0", (*big.Int)(acct.Balance).String())
	assert.Equal(t, "0", (*big.Int)(acct.Earned).String())
	// 500 over 60 units of stake rounds each unit down, leaving 1 in the pool
	assert.Equal(t, "999", ts.assets.BalanceOf(rewardAsset, alice).String())
	assert.Equal(t, "10000", ts.assets.BalanceOf(stakingAsset, alice).String())

	code, data = ts.do(t, http.MethodGet, "/pool", nil, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "ended", snap.Period.Status)
	assert.Equal(t, "999", (*big.Int)(snap.TotalPaid).String())
	assert.Equal(t, "0", (*big.Int)(snap.TotalStaked).String())
}

func TestPoolErrors(t *testing.T) {
	ts := initPoolServer(t)
	accountPath := "/pool/accounts/" + alice.String()
	stranger := thor.BytesToAddress([]byte("stranger"))

	tests := []struct {
		name   string
		method string
		path   string
		caller *thor.Address
		body   any
		status int
	}{
		{"bad address", http.MethodGet, "/pool/accounts/0xzz", nil, nil, http.StatusBadRequest},
		{"period without caller", http.MethodPost, "/pool/period", nil, map[string]any{"start": 0, "end": 100, "total": "0"}, http.StatusUnauthorized},
		{"period by stranger", http.MethodPost, "/pool/period", &stranger, map[string]any{"start": 0, "end": 100, "total": "0"}, http.StatusForbidden},
		{"period underfunded", http.MethodPost, "/pool/period", &owner, map[string]any{"start": 0, "end": 100, "total": "5000"}, http.StatusBadRequest},
		{"period unknown field", http.MethodPost, "/pool/period", &owner, map[string]any{"begin": 0}, http.StatusBadRequest},
		{"allocation by stranger", http.MethodPost, "/pool/allocation", &stranger, amount(1), http.StatusForbidden},
		{"stake for someone else", http.MethodPost, accountPath + "/stake", &stranger, amount(1), http.StatusForbidden},
		{"stake zero", http.MethodPost, accountPath + "/stake", &alice, amount(0), http.StatusBadRequest},
		{"stake without funds", http.MethodPost, accountPath + "/stake", &alice, amount(20_000), http.StatusBadRequest},
		{"withdraw more than staked", http.MethodPost, accountPath + "/withdraw", &alice, amount(1), http.StatusBadRequest},
		{"recover reward asset", http.MethodPost, "/pool/recover", &owner, map[string]any{"asset": rewardAsset, "recipient": owner, "amount": "1"}, http.StatusBadRequest},
		{"unrouted method", http.MethodDelete, "/pool", nil, nil, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, data := ts.do(t, tt.method, tt.path, tt.caller, tt.body)
			assert.Equal(t, tt.status, code, string(data))
		})
	}

	// nothing above changed the pool
	code, data := ts.do(t, http.MethodGet, "/pool", nil, nil)
	require.Equal(t, http.StatusOK, code)
	var snap pool.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Equal(t, "0", (*big.Int)(snap.TotalAllocated).String())
	assert.Equal(t, "0", (*big.Int)(snap.TotalStaked).String())
}

func TestRecover(t *testing.T) {
	ts := initPoolServer(t)
	stray := thor.BytesToAddress([]byte("stray"))
	ts.assets.Mint(stray, poolAddr, big.NewInt(7))

	code, data := ts.do(t, http.MethodPost, "/pool/recover", &owner, map[string]any{"asset": stray, "recipient": owner, "amount": "7"})
	require.Equal(t, http.StatusOK, code, string(data))
	assert.Equal(t, "7", ts.assets.BalanceOf(stray, owner).String())
}

func TestAllocation(t *testing.T) {
	ts := initPoolServer(t)

	code, data := ts.do(t, http.MethodPost, "/pool/period", &owner, map[string]any{"start": 0, "end": 100, "total": "500"})
	require.Equal(t, http.StatusOK, code, string(data))

	ts.clk.Set(50)
	code, data = ts.do(t, http.MethodPost, "/pool/allocation", &owner, amount(500))
	require.Equal(t, http.StatusOK, code, string(data))
	var snap pool.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	// 250 left over plus 500 over the remaining 50 seconds
	assert.Equal(t, "15", (*big.Int)(snap.Period.Rate).String())
	assert.Equal(t, "1000", (*big.Int)(snap.TotalAllocated).String())
}
