package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/event"
	"github.com/lixenwraith/night-door/status"
)

// Service runs the spectator hub behind an HTTP listener as a hub-managed service
type Service struct {
	config *Config
	reg    *status.Registry
	emit   event.Emitter
	log    logrus.FieldLogger

	hub      *Hub
	server   *http.Server
	listener net.Listener
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	disabled atomic.Bool
	running  atomic.Bool
}

// NewService creates a network service (disabled until a listen address is configured)
func NewService(reg *status.Registry, emit event.Emitter, log logrus.FieldLogger) *Service {
	return &Service{
		config: DefaultConfig(),
		reg:    reg,
		emit:   emit,
		log:    core.ComponentLogger(log, "network"),
	}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}

	if s.config.Listen == "" {
		s.disabled.Store(true)
		return nil
	}
	if s.config.Session == "" {
		s.config.Session = uuid.NewString()
	}
	s.hub = NewHub(s.config, s.config.Session, s.reg, s.emit, s.log)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	if s.disabled.Load() || s.hub == nil {
		return nil
	}
	if !s.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		s.running.Store(false)
		return err
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(2)
	core.Go(func() {
		defer s.wg.Done()
		s.hub.Run(ctx)
	})
	core.Go(func() {
		defer s.wg.Done()
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("spectator listener stopped")
		}
	})

	s.log.WithField("addr", ln.Addr().String()).Info("spectator feed listening")
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)

	s.cancel()
	s.wg.Wait()
	return err
}

// Hub returns the event fan-out, nil when disabled
func (s *Service) Hub() *Hub {
	if s.disabled.Load() {
		return nil
	}
	return s.hub
}

// Addr returns the bound address, empty when not running
func (s *Service) Addr() string {
	if !s.running.Load() || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true if the listener is active
func (s *Service) IsRunning() bool {
	return s.running.Load()
}
