package realtime

import (
	"sync"

	"campusfix/internal/models"
)

const (
	EventTaskUpdated  = "taskUpdated"
	EventTaskAssigned = "taskAssigned"
)

// Event is what connected dashboards receive.
type Event struct {
	Type string       `json:"type"`
	Task *models.Task `json:"task"`
}

// Hub is a single broadcast channel: every attached client sees every event.
// A failed write drops the client.
type Hub struct {
	mu    sync.RWMutex
	conns map[*Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{conns: make(map[*Conn]struct{})}
}

func (h *Hub) Attach(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
}

func (h *Hub) Detach(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	_ = conn.Close()
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

func (h *Hub) Broadcast(evt Event) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(evt); err != nil {
			h.Detach(conn)
		}
	}
}

func (h *Hub) TaskUpdated(task *models.Task) {
	h.Broadcast(Event{Type: EventTaskUpdated, Task: task})
}

func (h *Hub) TaskAssigned(task *models.Task) {
	h.Broadcast(Event{Type: EventTaskAssigned, Task: task})
}
