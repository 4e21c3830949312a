package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Notification kinds pushed to connected users
const (
	KindVerification      = "verification"
	KindApplicationStatus = "application_status"
	KindJAFReview         = "jaf_review"
)

// Notification is a message pushed to one user
type Notification struct {
	Kind       string                 `json:"kind"`
	Title      string                 `json:"title"`
	Body       string                 `json:"body"`
	EntityType string                 `json:"entityType,omitempty"`
	EntityID   int64                  `json:"entityId,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

type delivery struct {
	userID int64
	data   []byte
}

// Hub maintains the set of active clients and routes notifications to
// the connections of each user. Delivery is best effort: users who are not
// connected miss the notification.
type Hub struct {
	// Registered clients organized by user ID
	clients map[int64]map[*Client]bool

	// Outbound notifications
	deliver chan delivery

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		deliver:    make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[int64]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles client registrations and deliveries until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			h.deliverToUser(d)
		}
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	conns, ok := h.clients[client.userID]
	if !ok || !conns[client] {
		return
	}
	delete(conns, client)
	close(client.send)
	if len(conns) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Int64("userID", client.userID).
		Str("addr", client.remoteAddr()).
		Msg("Client unregistered")
}

// deliverToUser sends a payload to every connection of a user. Clients
// whose buffer is full are dropped.
func (h *Hub) deliverToUser(d delivery) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[d.userID]
	if !ok {
		h.logger.Debug().Int64("userID", d.userID).Msg("User not connected, notification dropped")
		return
	}

	for client := range conns {
		select {
		case client.send <- d.data:
		default:
			h.removeLocked(client)
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.clients {
		for client := range conns {
			h.removeLocked(client)
		}
	}
}

// Notify queues a notification for userID without blocking the caller
func (h *Hub) Notify(userID int64, n Notification) {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	data, err := json.Marshal(n)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to marshal notification")
		return
	}

	select {
	case h.deliver <- delivery{userID: userID, data: data}:
	default:
		h.logger.Warn().Int64("userID", userID).Str("kind", n.Kind).Msg("Notification queue full, dropping")
	}
}

// GetClientsCount returns the number of open connections of a user
func (h *Hub) GetClientsCount(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
