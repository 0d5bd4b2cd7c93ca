package handlers

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risut/crm/internal/live"
	"github.com/risut/crm/internal/message"
)

func TestLiveStreamsBroadcasts(t *testing.T) {
	t.Parallel()

	hub := live.NewHub(testLog, live.DefaultBufferSize, nil)
	defer hub.Close()
	e := newTestEcho(NewLiveHandler(testLog, hub, live.Upgrader(nil)))
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/api/live", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 10*time.Millisecond)
	hub.Broadcast(live.Event{Name: live.EventNewMessage, Data: message.Message{ID: "1", Canonical: message.Canonical{ChatID: "U1", Text: "hi"}}})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got struct {
		Event string          `json:"event"`
		Data  message.Message `json:"data"`
	}
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, live.EventNewMessage, got.Event)
	assert.Equal(t, "U1", got.Data.ChatID)
}

func TestLiveRejectsPlainHTTP(t *testing.T) {
	t.Parallel()

	hub := live.NewHub(testLog, live.DefaultBufferSize, nil)
	defer hub.Close()
	e := newTestEcho(NewLiveHandler(testLog, hub, live.Upgrader(nil)))

	rec := serve(e, "GET", "/api/live", "")
	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, 0, hub.Count())
}
