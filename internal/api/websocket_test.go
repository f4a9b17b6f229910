package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amterp/boardkit/internal/model"
	"github.com/amterp/boardkit/testutil"
)

func newTestClient(hub *WebSocketHub, buffer int) *WebSocketClient {
	return &WebSocketClient{
		hub:  hub,
		send: make(chan []byte, buffer),
	}
}

func receive(t *testing.T, client *WebSocketClient) WebSocketMessage {
	t.Helper()
	select {
	case data := <-client.send:
		var msg WebSocketMessage
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Expected to receive message")
		return WebSocketMessage{}
	}
}

func TestWebSocketHub_AddRemoveClient(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)

	hub.addClient(client)
	assert.Equal(t, 1, hub.ClientCount())

	hub.removeClient(client)
	assert.Equal(t, 0, hub.ClientCount())
}

func TestWebSocketHub_RemoveClientClosesChannel(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)

	hub.addClient(client)
	hub.removeClient(client)

	// Verify channel is closed by checking if receive returns immediately
	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "Channel should be closed")
	default:
		t.Error("Channel should be closed and readable")
	}
}

func TestWebSocketHub_RemoveClientIdempotent(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)

	hub.addClient(client)
	hub.removeClient(client)
	assert.NotPanics(t, func() { hub.removeClient(client) })
}

func TestWebSocketHub_OnCollectionChange(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)
	hub.addClient(client)

	hub.OnCollectionChange(model.NewCollection().WithBoards([]model.Board{
		testutil.Board("b1", "Groceries",
			testutil.List("l1", "Produce", testutil.Card("c1", "Apples"), testutil.Card("c2", "Pears")),
			testutil.List("l2", "Dairy"),
		),
		testutil.Board("b2", "Work"),
	}))

	msg := receive(t, client)
	assert.Equal(t, MessageCollectionChanged, msg.Type)
	assert.Equal(t, map[string]any{"boards": 2.0, "lists": 2.0, "cards": 2.0}, msg.Data)
}

func TestWebSocketHub_OnFileChange(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)
	hub.addClient(client)

	hub.OnFileChange(FileChange{Type: FileChangeModified, Path: "/data/boards.json"})

	msg := receive(t, client)
	assert.Equal(t, MessageExternalChange, msg.Type)
	assert.Equal(t, map[string]any{"type": "modified", "path": "/data/boards.json"}, msg.Data)
}

func TestWebSocketHub_BroadcastToMultipleClients(t *testing.T) {
	hub := NewWebSocketHub()
	clients := []*WebSocketClient{newTestClient(hub, 10), newTestClient(hub, 10), newTestClient(hub, 10)}
	for _, c := range clients {
		hub.addClient(c)
	}

	hub.OnCollectionChange(model.NewCollection())

	for _, c := range clients {
		assert.Equal(t, MessageCollectionChanged, receive(t, c).Type)
	}
}

func TestWebSocketHub_SlowClientDropped(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 1)
	hub.addClient(client)

	hub.OnCollectionChange(model.NewCollection())
	hub.OnCollectionChange(model.NewCollection()) // buffer full

	assert.Equal(t, 0, hub.ClientCount())
}

func TestWebSocketHub_BroadcastAfterRemoveDoesNotPanic(t *testing.T) {
	hub := NewWebSocketHub()
	client := newTestClient(hub, 10)
	hub.addClient(client)
	hub.removeClient(client)

	assert.NotPanics(t, func() {
		hub.trySend(client, []byte(`{}`))
	})
}

func TestWebSocketHub_ReceivesDocumentChanges(t *testing.T) {
	svc := testutil.NewServices(t)
	hub := NewWebSocketHub()
	svc.Doc.Subscribe(hub)
	client := newTestClient(hub, 10)
	hub.addClient(client)

	_, err := svc.Boards.Add(t.Context(), "Groceries")
	require.NoError(t, err)

	msg := receive(t, client)
	assert.Equal(t, MessageCollectionChanged, msg.Type)
	assert.Equal(t, 1.0, msg.Data.(map[string]any)["boards"])
}
