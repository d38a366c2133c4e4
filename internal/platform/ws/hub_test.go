package ws

import (
	"io"
	"log/slog"
	"testing"
	"time"

	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHubPublishNeverBlocks(t *testing.T) {
	hub := newTestHub()
	// No Run loop: the broadcast buffer fills and subsequent publishes drop.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			hub.Publish(portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: "r"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked with a full broadcast buffer")
	}
}

func TestHubBroadcastReachesClients(t *testing.T) {
	hub := newTestHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan portssvc.Event, 16)}
	hub.register <- client

	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	event := portssvc.Event{Type: "refresh", Entity: "exchange_request", EntityID: "req-1"}
	hub.Publish(event)

	select {
	case got := <-client.send:
		assert.Equal(t, event, got)
	case <-time.After(time.Second):
		t.Fatal("client never received the broadcast")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := newTestHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{hub: hub, send: make(chan portssvc.Event, 16)}
	hub.register <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	hub.unregister <- client
	require.Eventually(t, func() bool {
		return hub.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)

	select {
	case _, ok := <-client.send:
		assert.False(t, ok, "send channel should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}
