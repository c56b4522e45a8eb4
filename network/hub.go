package network

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
)

// Hub fans game events out to spectators
// HandleEvent runs on the tick goroutine and never blocks; full queues drop
type Hub struct {
	cfg     *Config
	log     logrus.FieldLogger
	reg     *status.Registry
	emit    event.Emitter
	session string

	upgrader  websocket.Upgrader
	broadcast chan []byte
	seq       atomic.Uint64

	mu      sync.Mutex
	clients map[*Client]struct{}

	statClients *atomic.Int64
	statSent    *atomic.Int64
	statDropped *atomic.Int64
}

// NewHub creates a hub; emit receives spectator commands when allowed
func NewHub(cfg *Config, session string, reg *status.Registry, emit event.Emitter, log logrus.FieldLogger) *Hub {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Hub{
		cfg:     cfg,
		log:     core.ComponentLogger(log, "network"),
		reg:     reg,
		emit:    emit,
		session: session,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Spectator pages are served from anywhere
			},
		},
		broadcast:   make(chan []byte, cfg.BroadcastQueueSize),
		clients:     make(map[*Client]struct{}),
		statClients: reg.Ints.Get("network.clients"),
		statSent:    reg.Ints.Get("network.sent"),
		statDropped: reg.Ints.Get("network.dropped"),
	}
}

// Run fans broadcast frames out until ctx is done, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.statClients.Store(0)
			h.mu.Unlock()
			return

		case message := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- message:
					h.statSent.Add(1)
				default:
					// Slow spectator
					close(c.send)
					delete(h.clients, c)
					h.statDropped.Add(1)
				}
			}
			h.statClients.Store(int64(len(h.clients)))
			h.mu.Unlock()
		}
	}
}

// HandleEvent implements event.Handler; subscribe with Router.SubscribeAll
func (h *Hub) HandleEvent(ev event.GameEvent) {
	data, err := encode(Message{
		Type:    MsgEvent,
		Seq:     h.seq.Add(1),
		Time:    time.Now(),
		Event:   ev.Type.String(),
		Payload: ev.Payload,
	})
	if err != nil {
		h.log.WithError(err).WithField("event", ev.Type).Debug("event not encodable")
		return
	}

	select {
	case h.broadcast <- data:
	default:
		h.statDropped.Add(1)
	}
}

// Handler returns the HTTP routes: /ws for the feed, /status for a metrics snapshot
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.serveWS)
	mux.HandleFunc("/status", h.serveStatus)
	return mux
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}

	c := newClient(h, conn)
	hello, err := encode(Message{
		Type:    MsgHello,
		Seq:     h.seq.Add(1),
		Session: h.session,
		Time:    time.Now(),
		Status:  h.reg.Snapshot(),
	})
	if err == nil {
		c.send <- hello
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.statClients.Store(int64(len(h.clients)))
	h.mu.Unlock()
	h.log.WithField("remote", r.RemoteAddr).Info("spectator connected")

	core.Go(c.writePump)
	core.Go(c.readPump)
}

func (h *Hub) serveStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	body := map[string]any{
		"session": h.session,
		"metrics": h.reg.Snapshot(),
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.WithError(err).Debug("status write failed")
	}
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.statClients.Store(int64(len(h.clients)))
		h.log.Info("spectator disconnected")
	}
}

func (h *Hub) command(cmd Command) {
	if !h.cfg.AllowCommands || h.emit == nil {
		return
	}
	ev, ok := cmd.ToEvent()
	if !ok {
		h.log.WithField("command", cmd.Command).Debug("unknown spectator command")
		return
	}
	h.emit.Push(ev)
}

// ClientCount returns connected spectators
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
