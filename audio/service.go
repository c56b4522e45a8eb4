package audio

import (
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/status"
)

// AudioService wraps SoundManager as a Service
// Handles graceful degradation when no audio device is available
type AudioService struct {
	cfg      Config
	reg      *status.Registry
	log      logrus.FieldLogger
	manager  *SoundManager
	disabled atomic.Bool
}

// NewService creates a new audio service
func NewService(reg *status.Registry, log logrus.FieldLogger) *AudioService {
	return &AudioService{
		cfg: DefaultConfig(),
		reg: reg,
		log: core.ComponentLogger(log, "audio"),
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: Config (optional)
func (s *AudioService) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(Config); ok {
			s.cfg = cfg
		}
	}
	s.manager = NewSoundManager(s.cfg, s.reg, s.log)
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.manager == nil {
		s.disabled.Store(true)
		return nil
	}
	if err := s.manager.Initialize(); err != nil {
		s.disabled.Store(true)
		s.log.WithError(err).Warn("audio unavailable, continuing without sound")
		return nil
	}
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.manager != nil {
		s.manager.Cleanup()
	}
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Manager returns the sound manager; never nil after Init, silent when disabled
func (s *AudioService) Manager() *SoundManager {
	return s.manager
}
