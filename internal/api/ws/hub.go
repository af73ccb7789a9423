// Package ws streams board events to browsers over WebSocket.
package ws

import (
	"context"
	"net/http"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/teamboard/internal/server/middleware"
	redisstore "github.com/gosuda/teamboard/internal/store/redis"
)

// Subscriber yields the payloads published on a channel until ctx is done or
// cleanup is called. *redisstore.PubSub satisfies this interface.
type Subscriber interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// Hub manages WebSocket connections backed by Redis pub/sub.
type Hub struct {
	pubsub Subscriber
}

// NewHub creates a new WebSocket hub.
func NewHub(pubsub Subscriber) *Hub {
	return &Hub{pubsub: pubsub}
}

// ServeBoard streams one team's task and taxonomy events.
// Subscribes to Redis channel "board:<tenantID>:<teamID>".
func (h *Hub) ServeBoard(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing tenant", http.StatusBadRequest)
		return
	}

	teamID, err := uuid.Parse(chi.URLParam(r, "teamID"))
	if err != nil {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}

	h.stream(w, r, redisstore.BoardChannel(tenantID, teamID))
}

// ServeTenant streams tenant-wide events such as team changes.
func (h *Hub) ServeTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := middleware.TenantIDFromContext(r.Context())
	if !ok {
		http.Error(w, "missing tenant", http.StatusBadRequest)
		return
	}

	h.stream(w, r, redisstore.TenantChannel(tenantID))
}

func (h *Hub) stream(w http.ResponseWriter, r *http.Request, channel string) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket accept")
		return
	}
	defer conn.CloseNow()

	// Clients only listen; CloseRead handles their control frames and
	// cancels ctx once they go away.
	ctx := conn.CloseRead(r.Context())

	messages, cleanup, err := h.pubsub.Subscribe(ctx, channel)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("websocket subscribe")
		_ = conn.Close(websocket.StatusInternalError, "subscribe failed")
		return
	}
	defer cleanup()

	log.Debug().Str("channel", channel).Msg("websocket subscribed")

	for {
		select {
		case <-ctx.Done():
			_ = conn.Close(websocket.StatusNormalClosure, "connection closed")
			return
		case msg, msgOK := <-messages:
			if !msgOK {
				_ = conn.Close(websocket.StatusNormalClosure, "channel closed")
				return
			}
			if writeErr := conn.Write(ctx, websocket.MessageText, msg); writeErr != nil {
				log.Debug().Err(writeErr).Msg("websocket write")
				return
			}
		}
	}
}
