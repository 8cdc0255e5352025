package ws

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Hub tracks every live client so shutdown can close them and health checks
// can count them. Routing lives in the session registry, not here.
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]struct{}
	stopped bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

// Register adds c. It returns false once the hub is stopped; the caller must
// then close c itself.
func (h *Hub) Register(c *Client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return false
	}
	h.clients[c] = struct{}{}
	log.Info().Str("client_id", c.ID()).Msg("Client registered")
	return true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		log.Info().Str("client_id", c.ID()).Msg("Client unregistered")
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Stop closes every registered client and refuses new ones.
func (h *Hub) Stop() {
	h.mu.Lock()
	h.stopped = true
	clients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[*Client]struct{})
	h.mu.Unlock()

	for _, c := range clients {
		_ = c.Close()
	}
	for _, c := range clients {
		c.Wait()
	}
	log.Info().Int("clients", len(clients)).Msg("Hub stopped")
}
