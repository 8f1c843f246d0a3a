// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/vechain/rewardpool/api/events"
	"github.com/vechain/rewardpool/api/middleware"
	"github.com/vechain/rewardpool/api/pool"
	"github.com/vechain/rewardpool/api/subscriptions"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/builtin/rewards/authority"
	"github.com/vechain/rewardpool/eventdb"
	"github.com/vechain/rewardpool/log"
)

var logger = log.WithContext("pkg", "api")

type Options struct {
	AllowedOrigins       string
	EventsLimit          uint64
	EnableMetrics        bool
	EnableReqLogger      *atomic.Bool
	SlowQueriesThreshold time.Duration
	Log5xxErrors         bool
}

// New return api router. The events routes are skipped when db is nil, the
// subscription routes when hub is nil.
func New(
	p *rewards.Pool,
	gate authority.Gate,
	db *eventdb.EventDB,
	hub *subscriptions.Hub,
	opts Options,
) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	pool.New(p, gate).
		Mount(router, "/pool")
	if db != nil {
		events.New(db, opts.EventsLimit).
			Mount(router, "/events")
	}
	if hub != nil {
		subscriptions.New(hub, origins).
			Mount(router, "/subscriptions")
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}
	reqLogger := opts.EnableReqLogger
	if reqLogger == nil {
		reqLogger = &atomic.Bool{}
	}
	router.Use(middleware.RequestLoggerMiddleware(logger, reqLogger, opts.SlowQueriesThreshold, opts.Log5xxErrors))

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", "x-caller", "x-request-id"}),
		handlers.ExposedHeaders([]string{"x-request-id"}),
	)(handler)
	handler = middleware.RequestIDMiddleware(handler)

	return handler.ServeHTTP
}
