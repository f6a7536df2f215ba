package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/layoutgen/internal/history"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamMessage is the outgoing WebSocket message format.
type streamMessage struct {
	Type string        `json:"type"` // "snapshot" or "job"
	Job  *history.Job  `json:"job,omitempty"`
	Jobs []history.Job `json:"jobs,omitempty"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts job updates to every connected WebSocket subscriber.
// Slow subscribers drop messages rather than stall a pipeline.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]*subscriber
	logger *slog.Logger
}

// NewHub creates an empty Hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subs:   make(map[string]*subscriber),
		logger: logger,
	}
}

// JobUpdated broadcasts job to all subscribers.
func (h *Hub) JobUpdated(_ context.Context, job history.Job) {
	msg, err := json.Marshal(streamMessage{Type: "job", Job: &job})
	if err != nil {
		h.logger.Error("encoding job update", "job_id", job.ID, "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, s := range h.subs {
		select {
		case s.send <- msg:
		default:
			h.logger.Warn("dropping job update for slow subscriber", "subscriber", id, "job_id", job.ID)
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// serve upgrades the request and streams updates until the client goes away.
// first, if non-nil, is sent before any broadcast.
func (h *Hub) serve(w http.ResponseWriter, r *http.Request, first func() []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade", "error", err)
		return
	}

	id := uuid.NewString()
	s := &subscriber{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if first != nil {
		s.send <- first()
	}
	h.subs[id] = s
	h.mu.Unlock()
	h.logger.Debug("subscriber connected", "subscriber", id)

	go s.writeLoop()

	// Reads only detect the close; clients send nothing meaningful.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read", "subscriber", id, "error", err)
			}
			break
		}
	}

	h.mu.Lock()
	delete(h.subs, id)
	close(s.send)
	h.mu.Unlock()
	h.logger.Debug("subscriber disconnected", "subscriber", id)
}

func (s *subscriber) writeLoop() {
	defer s.conn.Close()
	for msg := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (d *Dashboard) handleJobStream(w http.ResponseWriter, r *http.Request) {
	d.hub.serve(w, r, func() []byte {
		msg, _ := json.Marshal(streamMessage{Type: "snapshot", Jobs: d.store.All()})
		return msg
	})
}
