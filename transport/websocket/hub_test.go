package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/wricardo/pegsolitaire/game/engine"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		id:        sessionID + "-client",
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, engine.WebSocketBufferSize),
	}
}

func runHub(t *testing.T, hub *Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
}

func TestNewHub(t *testing.T) {
	hub := NewHub(nil)

	require.NotNil(t, hub)
	assert.NotNil(t, hub.sessions)
	assert.NotNil(t, hub.broadcast)
	assert.NotNil(t, hub.register)
	assert.NotNil(t, hub.unregister)
	assert.NotNil(t, hub.logger)
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	assert.True(t, hub.sessions["test-session"][client], "client was not registered in session")
	assert.Equal(t, 1, hub.ClientCount("test-session"))
	assert.Equal(t, 1, hub.ClientCount("TEST-SESSION"), "session lookups ignore case")
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	_, exists := hub.sessions["test-session"]
	assert.False(t, exists, "session should have been cleaned up after last client unregistered")

	_, open := <-client.send
	assert.False(t, open, "send channel should be closed")

	// A second unregister is a no-op
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)

	hub.registerClient(client1)
	hub.registerClient(client2)
	assert.Equal(t, 2, hub.ClientCount(sessionID))

	hub.unregisterClient(client1)
	assert.Equal(t, 1, hub.ClientCount(sessionID))
	assert.True(t, hub.sessions[sessionID][client2], "client2 should still be registered")
}

func TestHubBroadcastToSession(t *testing.T) {
	hub := NewHub(zap.NewNop())
	sessionID := "broadcast-test"

	client := newTestClient(hub, sessionID)
	other := newTestClient(hub, "other-session")
	hub.registerClient(client)
	hub.registerClient(other)

	runHub(t, hub)

	state := engine.NewEngineWithDefaults().GetState()
	hub.BroadcastToSession(sessionID, state)

	select {
	case data := <-client.send:
		var message Message
		require.NoError(t, json.Unmarshal(data, &message))

		assert.Equal(t, sessionID, message.SessionID)
		assert.Equal(t, EventStateUpdate, message.Event)
		require.NotNil(t, message.GameState)
		assert.Equal(t, 32, message.GameState.PiecesLeft)
		assert.Equal(t, engine.Empty, message.GameState.Board[3][3])

	case <-time.After(time.Second):
		t.Fatal("No message received within timeout")
	}

	select {
	case <-other.send:
		t.Error("Client in another session received the broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	hub.BroadcastEvent("event-test", EventWin, "test-data")

	select {
	case message := <-hub.broadcast:
		assert.Equal(t, "event-test", message.SessionID)
		assert.Equal(t, EventWin, message.Event)
		assert.Equal(t, "test-data", message.Data)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("No broadcast message queued")
	}
}

func TestHubBroadcastQueueFull(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))

	// Nothing drains the queue, so the extra message is dropped without blocking
	for i := 0; i < engine.WebSocketBufferSize+1; i++ {
		hub.BroadcastEvent("full", EventStalled, i)
	}
	assert.Len(t, hub.broadcast, engine.WebSocketBufferSize)
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client := &Client{id: "slow", hub: hub, sessionID: "slow", send: make(chan []byte, 1)}
	hub.registerClient(client)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: EventStateUpdate})
	hub.broadcastMessage(&Message{SessionID: "slow", Event: EventStateUpdate})

	assert.Equal(t, 0, hub.ClientCount("slow"))
}

func TestHubRunStops(t *testing.T) {
	hub := NewHub(zaptest.NewLogger(t))
	client := newTestClient(hub, "stop")
	hub.registerClient(client)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, 0, hub.ClientCount("stop"))
}

func newTestServer(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "default"
		}
		hub.ServeWS(w, r, sessionID)
	}))
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func TestWebSocketUpgrade(t *testing.T) {
	hub := NewHub(zap.NewNop())
	runHub(t, hub)

	wsURL := newTestServer(t, hub) + "?session=ws-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount("ws-test") == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount("ws-test") == 0
	}, time.Second, 10*time.Millisecond, "session should be cleaned up after close")
}

func TestWebSocketMessageReceive(t *testing.T) {
	hub := NewHub(zap.NewNop())
	runHub(t, hub)

	wsURL := newTestServer(t, hub) + "?session=msg-test"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return hub.ClientCount("msg-test") == 1
	}, time.Second, 10*time.Millisecond)

	eng := engine.NewEngineWithDefaults()
	require.NoError(t, eng.Move(engine.Move{
		From: engine.Position{Row: 3, Col: 1},
		To:   engine.Position{Row: 3, Col: 3},
	}))
	hub.BroadcastToSession("msg-test", eng.GetState())

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, messageData, err := conn.ReadMessage()
	require.NoError(t, err)

	var message Message
	require.NoError(t, json.Unmarshal(messageData, &message))

	assert.Equal(t, "msg-test", message.SessionID)
	require.NotNil(t, message.GameState)
	assert.Equal(t, 31, message.GameState.PiecesLeft)
	assert.Equal(t, engine.Full, message.GameState.Board[3][3])
	assert.Equal(t, engine.Empty, message.GameState.Board[3][2])
}
