package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		if id, err := strconv.ParseInt(c.Query("uid"), 10, 64); err == nil {
			c.Set("userID", id)
		}
		c.Next()
	}, NewHandler(hub, nil, zerolog.Nop()).HandleConnection)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, uid string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?uid=" + uid
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_DeliversOnlyToTargetUser(t *testing.T) {
	hub, srv := newTestServer(t)

	alice := dial(t, srv, "1")
	bob := dial(t, srv, "2")

	require.Eventually(t, func() bool {
		return hub.GetClientsCount(1) == 1 && hub.GetClientsCount(2) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Notify(1, Notification{Kind: KindVerification, Title: "Account verified"})

	_ = alice.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := alice.ReadMessage()
	require.NoError(t, err)

	var got Notification
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, KindVerification, got.Kind)
	assert.False(t, got.Timestamp.IsZero())

	_ = bob.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err, "bob must not receive alice's notification")
}

func TestHandler_RejectsAnonymous(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/ws")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	hub, srv := newTestServer(t)
	conn := dial(t, srv, "5")

	require.Eventually(t, func() bool { return hub.GetClientsCount(5) == 1 }, 2*time.Second, 10*time.Millisecond)
	conn.Close()
	require.Eventually(t, func() bool { return hub.GetClientsCount(5) == 0 }, 2*time.Second, 10*time.Millisecond)
}
