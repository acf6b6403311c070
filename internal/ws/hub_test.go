package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func mustReceive(t *testing.T, ch <-chan []byte, timeout time.Duration) []byte {
	t.Helper()
	select {
	case payload := <-ch:
		return payload
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for websocket payload")
		return nil
	}
}

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientA := NewClient(hub, nil)
	clientB := NewClient(hub, nil)
	hub.Register(clientA)
	hub.Register(clientB)
	t.Cleanup(func() {
		hub.Unregister(clientA)
		hub.Unregister(clientB)
	})

	hub.Broadcast(EventCharacterCreated, map[string]string{"id": "socrates"})

	for _, ch := range []<-chan []byte{clientA.Send, clientB.Send} {
		payload := mustReceive(t, ch, time.Second)

		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		require.Equal(t, EventCharacterCreated, event.Type)

		var body map[string]string
		require.NoError(t, json.Unmarshal(event.Payload, &body))
		require.Equal(t, "socrates", body["id"])
	}
}

func TestHubDropsClientWithFullSendBuffer(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	slow := NewClient(hub, nil)
	slow.Send = make(chan []byte) // unbuffered and never drained
	hub.Register(slow)

	healthy := NewClient(hub, nil)
	hub.Register(healthy)
	t.Cleanup(func() { hub.Unregister(healthy) })

	hub.Broadcast(EventCharacterDeleted, map[string]string{"id": "ghost"})
	mustReceive(t, healthy.Send, time.Second)

	// The slow client's channel was closed when it was dropped.
	select {
	case _, open := <-slow.Send:
		require.False(t, open)
	case <-time.After(time.Second):
		t.Fatalf("expected slow client send channel to be closed")
	}
}
