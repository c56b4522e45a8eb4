package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lixenwraith/night-door/core"
	"github.com/lixenwraith/night-door/parameter"
	"github.com/lixenwraith/night-door/status"
)

// ErrInactive is returned by Connect when the bridge is already running, stopped or failed to open
var ErrInactive = errors.New("sensor bridge inactive")

// Config selects the serial channel
type Config struct {
	Port         string
	Baud         int
	ErrorBackoff time.Duration
}

// DefaultConfig returns the Arduino defaults
func DefaultConfig() Config {
	return Config{
		Port:         parameter.SensorDefaultPort,
		Baud:         parameter.SensorDefaultBaud,
		ErrorBackoff: parameter.SensorReadErrorBackoff,
	}
}

// Bridge owns the background read loop over one serial channel
//
// Thread-Safety:
//   - reader goroutine: writes Slot only
//   - tick goroutine: Poll only
//   - Connect/Stop: lifecycle goroutine
type Bridge struct {
	cfg    Config
	opener Opener
	log    logrus.FieldLogger

	slot Slot
	port io.ReadCloser

	// Tick-side coalescing state
	observed    int
	hasObserved bool

	running  atomic.Bool
	stopping atomic.Bool
	failed   atomic.Bool
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	statLines       *atomic.Int64
	statParseErrors *atomic.Int64
	statReadErrors  *atomic.Int64
	statActive      *atomic.Bool
	statValue       *atomic.Int64
}

// NewBridge creates an inactive bridge; nil opener selects the hardware serial port
func NewBridge(opener Opener, reg *status.Registry, log logrus.FieldLogger) *Bridge {
	if opener == nil {
		opener = SerialOpener{}
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Bridge{
		cfg:             DefaultConfig(),
		opener:          opener,
		log:             core.ComponentLogger(log, "sensor"),
		stopCh:          make(chan struct{}),
		statLines:       reg.Ints.Get("sensor.lines"),
		statParseErrors: reg.Ints.Get("sensor.parse_errors"),
		statReadErrors:  reg.Ints.Get("sensor.read_errors"),
		statActive:      reg.Bools.Get("sensor.active"),
		statValue:       reg.Ints.Get("sensor.value"),
	}
}

// Connect opens the channel and spawns the reader loop
// On failure the error is logged once and returned; the bridge stays inactive for good
func (b *Bridge) Connect(cfg Config) error {
	if b.stopping.Load() || b.running.Load() || b.failed.Load() {
		return ErrInactive
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = parameter.SensorReadErrorBackoff
	}
	b.cfg = cfg

	port, err := b.opener.Open(cfg.Port, cfg.Baud)
	if err != nil {
		b.failed.Store(true)
		b.log.WithFields(logrus.Fields{
			"port":      cfg.Port,
			"baud":      cfg.Baud,
			"available": AvailablePorts(),
		}).WithError(err).Error("serial open failed, continuing without sensor")
		return fmt.Errorf("open %s: %w", cfg.Port, err)
	}

	b.port = port
	b.running.Store(true)
	b.statActive.Store(true)
	b.wg.Add(1)
	core.Go(b.readLoop)

	b.log.WithFields(logrus.Fields{"port": cfg.Port, "baud": cfg.Baud}).Info("sensor connected")
	return nil
}

// Active reports whether the reader loop is running
func (b *Bridge) Active() bool {
	return b.running.Load()
}

func (b *Bridge) readLoop() {
	defer b.wg.Done()
	defer b.running.Store(false)
	defer b.statActive.Store(false)

	// Buffer is the line cap; longer lines surface as ErrBufferFull and are skipped to the next terminator
	reader := bufio.NewReaderSize(b.port, parameter.SensorMaxLineLength)
	discarding := false
	for {
		raw, err := reader.ReadSlice('\n')
		if b.stopping.Load() {
			return
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			if !discarding {
				b.statLines.Add(1)
				b.statParseErrors.Add(1)
				b.log.Debug("sensor line too long, discarded")
			}
			discarding = true
			continue
		}
		if err != nil {
			discarding = false
			b.statReadErrors.Add(1)
			b.log.WithError(err).Debug("serial read failed, line discarded")
			select {
			case <-b.stopCh:
				return
			case <-time.After(b.cfg.ErrorBackoff):
			}
			continue
		}

		if discarding {
			discarding = false
			continue
		}

		b.statLines.Add(1)
		line := string(raw)
		r, ok := ParseLine(line)
		if !ok {
			b.statParseErrors.Add(1)
			b.log.WithField("line", line).Debug("unrecognized sensor line")
			continue
		}
		b.slot.Store(r.Value, r.Kind)
	}
}

// Poll returns the latest reading if its value differs from the last observed one
// Tick goroutine only. Values written and reverted between two polls are never seen
func (b *Bridge) Poll() (Reading, bool) {
	r, ok := b.slot.Load()
	if !ok {
		return Reading{}, false
	}
	if b.hasObserved && r.Value == b.observed {
		return Reading{}, false
	}
	b.observed = r.Value
	b.hasObserved = true
	b.statValue.Store(int64(r.Value))
	return r, true
}

// Stop flags the loop, closes the channel to abort the pending read and joins the reader
// Idempotent; a bridge cannot be reconnected after Stop
func (b *Bridge) Stop() error {
	var err error
	b.stopOnce.Do(func() {
		b.stopping.Store(true)
		close(b.stopCh)
		if b.port != nil {
			err = b.port.Close()
		}
		b.wg.Wait()
		b.statActive.Store(false)
		b.log.Debug("sensor stopped")
	})
	return err
}
