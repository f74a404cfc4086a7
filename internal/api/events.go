package api

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"gocorr/internal"

	"github.com/gin-gonic/gin"
)

// Event types published by the server.
const (
	EventDatasetLoaded  = "dataset.loaded"
	EventDatasetCleared = "dataset.cleared"
	EventReportCreated  = "report.created"
)

// AnalysisEvent is one notification streamed to subscribers
type AnalysisEvent struct {
	EventType string                 `json:"event_type"`
	ReportID  string                 `json:"report_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// EventHub fans analysis events out to Server-Sent Events clients
type EventHub struct {
	clients   map[chan AnalysisEvent]bool
	clientsMu sync.RWMutex
	logger    *internal.Logger
	keepAlive time.Duration
}

// NewEventHub creates a new event hub
func NewEventHub(logger *internal.Logger) *EventHub {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EventHub{
		clients:   make(map[chan AnalysisEvent]bool),
		logger:    logger,
		keepAlive: 30 * time.Second,
	}
}

// Subscribe registers a client channel. The returned function unregisters
// and closes it.
func (h *EventHub) Subscribe() (<-chan AnalysisEvent, func()) {
	ch := make(chan AnalysisEvent, 10)

	h.clientsMu.Lock()
	h.clients[ch] = true
	count := len(h.clients)
	h.clientsMu.Unlock()
	h.logger.Debug("[SSE] Client registered (total clients: %d)", count)

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.clientsMu.Lock()
			delete(h.clients, ch)
			close(ch)
			remaining := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Debug("[SSE] Client unregistered (remaining clients: %d)", remaining)
		})
	}
}

// Broadcast sends an event to every client without blocking. Clients whose
// buffer is full miss the event.
func (h *EventHub) Broadcast(event AnalysisEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			h.logger.Warn("[SSE] Client channel full, skipping %s event", event.EventType)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// HandleSSE streams events until the client disconnects
func (h *EventHub) HandleSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	events, unsubscribe := h.Subscribe()
	defer unsubscribe()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			eventJSON, err := json.Marshal(event)
			if err != nil {
				h.logger.Error("[SSE] Failed to marshal event: %v", err)
				return true
			}
			c.SSEvent(event.EventType, string(eventJSON))
			return true

		case <-time.After(h.keepAlive):
			c.SSEvent("ping", `{"status": "alive", "timestamp": "`+time.Now().Format(time.RFC3339)+`"}`)
			return true

		case <-ctx.Done():
			return false
		}
	})
}
