package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
)

func startHub(t *testing.T, cfg *Config, emit event.Emitter) (*Hub, *httptest.Server, *status.Registry) {
	t.Helper()
	reg := status.NewRegistry()
	reg.Ints.Get("threat.mistakes").Store(3)
	hub := NewHub(cfg, "session-1", reg, emit, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(hub.Handler())
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv, reg
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return m
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_HelloCarriesSessionAndStatus(t *testing.T) {
	hub, srv, _ := startHub(t, DefaultConfig(), nil)
	conn := dial(t, srv)

	m := readMessage(t, conn)
	if m.Type != MsgHello || m.Session != "session-1" {
		t.Fatalf("hello = %+v", m)
	}
	if got, ok := m.Status["threat.mistakes"].(float64); !ok || got != 3 {
		t.Errorf("status threat.mistakes = %v", m.Status["threat.mistakes"])
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })
}

func TestHub_BroadcastsEvents(t *testing.T) {
	hub, srv, _ := startHub(t, DefaultConfig(), nil)
	conn := dial(t, srv)
	readMessage(t, conn)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.HandleEvent(event.GameEvent{
		Type:    event.EventRoomCleared,
		Payload: &event.RoomClearedPayload{},
	})

	m := readMessage(t, conn)
	if m.Type != MsgEvent {
		t.Fatalf("type = %q, want %q", m.Type, MsgEvent)
	}
	if m.Event != event.EventRoomCleared.String() {
		t.Errorf("event = %q, want %q", m.Event, event.EventRoomCleared.String())
	}
	if m.Seq < 2 {
		t.Errorf("seq = %d, want after hello", m.Seq)
	}
}

func TestHub_FullBroadcastQueueDrops(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BroadcastQueueSize = 1
	reg := status.NewRegistry()
	hub := NewHub(cfg, "s", reg, nil, nil)

	// No Run loop: the second event cannot be queued
	hub.HandleEvent(event.GameEvent{Type: event.EventLightToggleRequest})
	hub.HandleEvent(event.GameEvent{Type: event.EventLightToggleRequest})

	if got := reg.Ints.Get("network.dropped").Load(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

func TestHub_Commands(t *testing.T) {
	tests := []struct {
		name  string
		allow bool
		cmd   Command
		want  event.EventType
	}{
		{"light", true, Command{Type: MsgCommand, Command: CmdLight}, event.EventLightToggleRequest},
		{"reset", true, Command{Type: MsgCommand, Command: CmdReset}, event.EventGameResetRequest},
		{"door", true, Command{Type: MsgCommand, Command: CmdDoor, Value: 40, Relative: true}, event.EventDoorInjectRequest},
		{"unknown ignored", true, Command{Type: MsgCommand, Command: "fly"}, event.EventNone},
		{"disallowed ignored", false, Command{Type: MsgCommand, Command: CmdLight}, event.EventNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.AllowCommands = tt.allow
			q := event.NewEventQueue()
			hub, srv, _ := startHub(t, cfg, q)
			conn := dial(t, srv)
			readMessage(t, conn)
			waitFor(t, func() bool { return hub.ClientCount() == 1 })

			if err := conn.WriteJSON(tt.cmd); err != nil {
				t.Fatalf("write: %v", err)
			}

			if tt.want == event.EventNone {
				// Give the read pump time to consume the command
				time.Sleep(50 * time.Millisecond)
				if q.Len() != 0 {
					t.Fatalf("queue len = %d, want 0", q.Len())
				}
				return
			}

			waitFor(t, func() bool { return q.Len() > 0 })
			evs := q.Consume()
			if evs[0].Type != tt.want {
				t.Fatalf("event = %v, want %v", evs[0].Type, tt.want)
			}
			if tt.want == event.EventDoorInjectRequest {
				p := evs[0].Payload.(*event.DoorInjectPayload)
				if p.Value != 40 || !p.Relative {
					t.Errorf("payload = %+v", p)
				}
			}
		})
	}
}

func TestHub_StatusEndpoint(t *testing.T) {
	_, srv, _ := startHub(t, DefaultConfig(), nil)

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Session string         `json:"session"`
		Metrics map[string]any `json:"metrics"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Session != "session-1" {
		t.Errorf("session = %q", body.Session)
	}
	if _, ok := body.Metrics["threat.mistakes"]; !ok {
		t.Errorf("metrics missing threat.mistakes: %v", body.Metrics)
	}
}

func TestService_DisabledWithoutListen(t *testing.T) {
	svc := NewService(nil, nil, nil)
	if err := svc.Init(DefaultConfig()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if svc.Hub() != nil || svc.IsRunning() {
		t.Error("disabled service should not run a hub")
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestService_Lifecycle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Listen = "127.0.0.1:0"
	svc := NewService(status.NewRegistry(), nil, nil)
	if err := svc.Init(cfg); err != nil {
		t.Fatalf("init: %v", err)
	}
	if cfg.Session == "" {
		t.Error("session id not generated")
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial("ws://"+svc.Addr()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if m := readMessage(t, conn); m.Session != cfg.Session {
		t.Errorf("hello session = %q, want %q", m.Session, cfg.Session)
	}

	if err := svc.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if svc.IsRunning() {
		t.Error("still running after stop")
	}
}
