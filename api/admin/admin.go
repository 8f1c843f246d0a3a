// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/admin/apilogs"
	"github.com/vechain/rewardpool/api/admin/loglevel"
	"github.com/vechain/rewardpool/health"
	"github.com/vechain/rewardpool/metrics"

	healthAPI "github.com/vechain/rewardpool/api/admin/health"
)

// New returns the operator facing handler. Metrics are exposed under
// /metrics when enabled.
func New(logLevel *slog.LevelVar, apiLogs *atomic.Bool, health *health.Health, enableMetrics bool) http.HandlerFunc {
	router := mux.NewRouter()
	sub := router.PathPrefix("/admin").Subrouter()

	loglevel.New(logLevel).Mount(sub, "/loglevel")
	apilogs.New(apiLogs).Mount(sub, "/apilogs")
	healthAPI.NewAPI(health).Mount(sub, "/health")

	if enableMetrics {
		router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	}

	handler := handlers.CompressHandler(router)

	return handler.ServeHTTP
}
