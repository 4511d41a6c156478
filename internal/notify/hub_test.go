package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"GestorChoferes/internal/clock"
	"GestorChoferes/internal/metrics"
	"GestorChoferes/internal/models"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFeedServer(t *testing.T, hub *Hub) string {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(context.Background(), conn)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_BroadcastsMutations(t *testing.T) {
	clock.SetNow(time.Date(2025, 1, 15, 10, 0, 0, 0, clock.Location()))
	t.Cleanup(func() { clock.Now = func() time.Time { return time.Now() } })

	m := metrics.NewNop()
	hub := NewHub(zap.NewNop(), m)
	url := newFeedServer(t, hub)

	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.FeedClients))

	err := hub.AfterCommit(context.Background(), models.Mutation{Action: models.ActionCreated, RecordID: 42})
	require.NoError(t, err)

	for _, conn := range []*websocket.Conn{first, second} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var ev Event
		require.NoError(t, conn.ReadJSON(&ev))
		assert.Equal(t, Event{Action: models.ActionCreated, ID: 42, At: "2025-01-15 10:00:00"}, ev)
	}
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	m := metrics.NewNop()
	hub := NewHub(zap.NewNop(), m)
	url := newFeedServer(t, hub)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.FeedClients))
}

func TestHub_NoClients(t *testing.T) {
	hub := NewHub(zap.NewNop(), metrics.NewNop())
	assert.Equal(t, "event_feed", hub.Name())
	assert.NoError(t, hub.AfterCommit(context.Background(), models.Mutation{Action: models.ActionDeleted, RecordID: 1}))
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub(zap.NewNop(), metrics.NewNop())
	url := newFeedServer(t, hub)

	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Close()
	assert.Equal(t, 0, hub.Clients())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
