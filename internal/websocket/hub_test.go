package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"stylista-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return hub
}

func attach(hub *Hub, userID uuid.UUID, buffer int) *Client {
	c := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, buffer)}
	hub.Register(c)
	return c
}

func TestHub_SendReachesEveryDeviceOfUser(t *testing.T) {
	hub := startHub(t)
	alice, bob := uuid.New(), uuid.New()

	phone := attach(hub, alice, 1)
	laptop := attach(hub, alice, 1)
	other := attach(hub, bob, 1)
	require.Eventually(t, func() bool { return hub.Connections(alice) == 2 }, time.Second, 10*time.Millisecond)

	hub.Send(alice, "chat_turn", map[string]string{"reply": "hi"})

	for _, c := range []*Client{phone, laptop} {
		select {
		case frame := <-c.Send:
			var env struct {
				Type string            `json:"type"`
				Data map[string]string `json:"data"`
			}
			require.NoError(t, json.Unmarshal(frame, &env))
			assert.Equal(t, "chat_turn", env.Type)
			assert.Equal(t, "hi", env.Data["reply"])
		case <-time.After(time.Second):
			t.Fatal("frame not delivered")
		}
	}
	assert.Len(t, other.Send, 0)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	c := attach(hub, user, 1)
	require.Eventually(t, func() bool { return hub.Connections(user) == 1 }, time.Second, 10*time.Millisecond)

	hub.Unregister(c)

	require.Eventually(t, func() bool { return hub.Connections(user) == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)
}

func TestHub_FullBufferDropsClient(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()
	attach(hub, user, 0)
	require.Eventually(t, func() bool { return hub.Connections(user) == 1 }, time.Second, 10*time.Millisecond)

	hub.Send(user, "chat_turn", nil)

	assert.Eventually(t, func() bool { return hub.Connections(user) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_SendWhileClientsLeave(t *testing.T) {
	hub := startHub(t)
	user := uuid.New()

	clients := make([]*Client, 51)
	for i := range clients {
		clients[i] = attach(hub, user, 4)
	}
	require.Eventually(t, func() bool { return hub.Connections(user) == len(clients) }, time.Second, 10*time.Millisecond)

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(2)
		go func(c *Client) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
		go func() {
			defer wg.Done()
			assert.NotPanics(t, func() { hub.Send(user, "chat_turn", nil) })
		}()
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return hub.Connections(user) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_UnregisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub(nil, logger.NewNopLogger())
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := attach(hub, uuid.New(), 1)
	cancel()
	<-stopped

	returned := make(chan struct{})
	go func() {
		hub.Unregister(c)
		hub.Register(c)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after the hub stopped")
	}
}
