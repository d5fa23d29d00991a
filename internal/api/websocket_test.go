package api

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"smartchef/internal/store"
)

func newTestAlertHub(t *testing.T) (*AlertHub, *store.ExpirationStore) {
	t.Helper()
	pantry := store.NewExpirationStore(filepath.Join(t.TempDir(), "pantry.json"), zap.NewNop())
	return NewAlertHub(pantry, time.Minute, 7, zap.NewNop()), pantry
}

func TestBroadcastDeliversSnapshot(t *testing.T) {
	hub, pantry := newTestAlertHub(t)

	expiry := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	_, err := pantry.AddItem("Milk", expiry, "1L", "Dairy")
	require.NoError(t, err)

	client := &wsClient{send: make(chan []byte, 16), hub: hub}
	hub.mu.Lock()
	hub.clients[client] = struct{}{}
	hub.mu.Unlock()

	hub.Broadcast()

	select {
	case payload := <-client.send:
		var alert ExpiryAlert
		require.NoError(t, json.Unmarshal(payload, &alert))
		require.Len(t, alert.Expiring, 1)
		assert.Equal(t, "Milk", alert.Expiring[0].Name)
		assert.Equal(t, 2, alert.Expiring[0].DaysLeft)
	default:
		t.Fatal("expected an alert in the client buffer")
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	hub, _ := newTestAlertHub(t)

	slow := &wsClient{send: make(chan []byte, 1), hub: hub}
	slow.send <- []byte("stale") // buffer full
	healthy := &wsClient{send: make(chan []byte, 16), hub: hub}

	hub.mu.Lock()
	hub.clients[slow] = struct{}{}
	hub.clients[healthy] = struct{}{}
	hub.mu.Unlock()

	done := make(chan struct{})
	go func() {
		hub.Broadcast()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a full client buffer")
	}

	hub.mu.Lock()
	_, slowStillRegistered := hub.clients[slow]
	_, healthyStillRegistered := hub.clients[healthy]
	hub.mu.Unlock()

	assert.False(t, slowStillRegistered)
	assert.True(t, healthyStillRegistered)
	assert.Len(t, healthy.send, 1)

	// The dropped client's channel is closed behind the buffered message
	<-slow.send
	_, open := <-slow.send
	assert.False(t, open)
}
