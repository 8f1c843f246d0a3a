// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vechain/rewardpool/api/utils"
	"github.com/vechain/rewardpool/builtin/rewards"
	"github.com/vechain/rewardpool/log"
	"github.com/vechain/rewardpool/metrics"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 7) / 10

	bufferSize = 128
)

var (
	logger = log.WithContext("pkg", "subscriptions")

	metricActiveWebsocket = metrics.LazyLoadGaugeVec("api_active_websocket_count", []string{"subject"})
)

type Subscriptions struct {
	hub        *Hub
	upgrader   *websocket.Upgrader
	pingPeriod time.Duration
}

// New creates the subscription routes. A websocket from a browser is only
// accepted when its origin is in allowedOrigins, or "*" is.
func New(hub *Hub, allowedOrigins []string) *Subscriptions {
	return &Subscriptions{
		hub: hub,
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin || allowed == u.Host {
						return true
					}
				}
				return false
			},
		},
		pingPeriod: pingPeriod,
	}
}

func (s *Subscriptions) handleSubscribeEvents(w http.ResponseWriter, req *http.Request) error {
	filter, err := parseEventFilter(req.URL.Query())
	if err != nil {
		return utils.BadRequest(err)
	}

	// registered before the handshake completes, so no event committed after
	// the client is connected is missed
	ch := make(chan *rewards.Event, bufferSize)
	s.hub.Subscribe(ch)
	defer s.hub.Unsubscribe(ch)

	labels := map[string]string{"subject": "event"}
	metricActiveWebsocket().AddWithLabel(1, labels)
	defer metricActiveWebsocket().AddWithLabel(-1, labels)

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		// the upgrader has already replied
		return nil
	}
	defer conn.Close()

	if err := s.pipe(conn, ch, filter); err != nil {
		logger.Debug("subscription closed", "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, ch <-chan *rewards.Event, filter *eventFilter) error {
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev := <-ch:
			if !filter.match(ev) {
				continue
			}
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return err
			}
			if err := conn.WriteJSON(convertEvent(ev)); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.hub.Done():
			return conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait),
			)
		}
	}
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/event").
		Methods(http.MethodGet).
		Name("WS /subscriptions/event").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubscribeEvents))
}
