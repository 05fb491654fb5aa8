package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"stylista-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "stylista:ws:cluster"

// Envelope is the frame pushed to clients.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type clusterMessage struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub tracks live connections per user. A user may be connected from
// several devices and several API instances; instances relay frames to each
// other over Redis.
type Hub struct {
	id         string
	clients    map[uuid.UUID][]*Client
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	mu         sync.RWMutex
	rdb        *redis.Client
	logger     logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		id:         uuid.NewString(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

// Run serves registrations until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("HUB", "Client registered", map[string]interface{}{"user_id": client.UserID.String()})

		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

// Register and Unregister return without effect once Run has stopped.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c == client {
			h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
			close(client.Send)
			break
		}
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("HUB", "Client unregistered", map[string]interface{}{"user_id": client.UserID.String()})
	}
}

// Send pushes a frame to every connection of userID, here and on the other
// instances.
func (h *Hub) Send(userID uuid.UUID, eventType string, payload any) {
	data, err := json.Marshal(Envelope{Type: eventType, Data: payload})
	if err != nil {
		h.logger.Error("HUB", "Failed to encode frame", map[string]interface{}{"type": eventType, "error": err.Error()})
		return
	}

	h.deliver(userID, data)

	if h.rdb == nil {
		return
	}
	relay, _ := json.Marshal(clusterMessage{Origin: h.id, TargetUserID: userID.String(), Message: data})
	if err := h.rdb.Publish(context.Background(), clusterChannel, relay).Err(); err != nil {
		h.logger.Warn("HUB", "Failed to relay frame", map[string]interface{}{"error": err.Error()})
	}
}

// Connections reports how many local connections userID has.
func (h *Hub) Connections(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

// deliver never blocks; a client whose buffer is full is dropped. Sends
// happen under the read lock so remove cannot close a channel mid-send.
func (h *Hub) deliver(userID uuid.UUID, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients[userID] {
		select {
		case client.Send <- data:
		default:
			h.logger.Warn("HUB", "Client buffer full, dropping connection", map[string]interface{}{"user_id": userID.String()})
			go h.Unregister(client)
		}
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var payload clusterMessage
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			h.logger.Warn("HUB", "Malformed cluster frame", map[string]interface{}{"error": err.Error()})
			continue
		}
		if payload.Origin == h.id {
			continue
		}
		uid, err := uuid.Parse(payload.TargetUserID)
		if err != nil {
			continue
		}
		h.deliver(uid, payload.Message)
	}
}
