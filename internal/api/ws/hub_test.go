package ws_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/teamboard/internal/api/ws"
	"github.com/gosuda/teamboard/internal/server/middleware"
	redisstore "github.com/gosuda/teamboard/internal/store/redis"
)

// fakeSubscriber hands each subscription a channel the test can feed.
type fakeSubscriber struct {
	mu       sync.Mutex
	channels map[string]chan []byte
	err      error
	ready    chan string
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{channels: make(map[string]chan []byte), ready: make(chan string, 4)}
}

func (f *fakeSubscriber) Subscribe(_ context.Context, channel string) (<-chan []byte, func(), error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	ch := make(chan []byte, 4)
	f.mu.Lock()
	f.channels[channel] = ch
	f.mu.Unlock()
	f.ready <- channel
	return ch, func() {}, nil
}

func (f *fakeSubscriber) send(channel string, msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels[channel] <- []byte(msg)
}

func newServer(t *testing.T, sub ws.Subscriber, tenantID uuid.UUID) *httptest.Server {
	t.Helper()

	hub := ws.NewHub(sub)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), middleware.ContextKeyTenantID, tenantID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.Get("/ws/board/{teamID}", hub.ServeBoard)
	r.Get("/ws/tenant", hub.ServeTenant)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func TestServeBoard_ForwardsMessages(t *testing.T) {
	t.Parallel()

	tenantID, teamID := uuid.New(), uuid.New()
	sub := newFakeSubscriber()
	srv := newServer(t, sub, tenantID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, "/ws/board/"+teamID.String()), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	channel := <-sub.ready
	assert.Equal(t, redisstore.BoardChannel(tenantID, teamID), channel)

	sub.send(channel, `{"type":"task_moved"}`)

	typ, data, err := conn.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, websocket.MessageText, typ)
	assert.JSONEq(t, `{"type":"task_moved"}`, string(data))
}

func TestServeTenant_UsesTenantChannel(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	sub := newFakeSubscriber()
	srv := newServer(t, sub, tenantID)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, "/ws/tenant"), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	assert.Equal(t, redisstore.TenantChannel(tenantID), <-sub.ready)
}

func TestServeBoard_InvalidTeamID(t *testing.T) {
	t.Parallel()

	srv := newServer(t, newFakeSubscriber(), uuid.New())

	resp, err := http.Get(srv.URL + "/ws/board/not-a-uuid")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServeBoard_SubscribeFailureClosesConnection(t *testing.T) {
	t.Parallel()

	sub := newFakeSubscriber()
	sub.err = errors.New("redis down")
	srv := newServer(t, sub, uuid.New())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(srv, "/ws/board/"+uuid.NewString()), nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	_, _, err = conn.Read(ctx)
	require.Error(t, err)
	assert.Equal(t, websocket.StatusInternalError, websocket.CloseStatus(err))
}
