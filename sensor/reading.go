package sensor

import (
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/lixenwraith/night-door/parameter"
)

// Kind identifies which line grammar produced a reading
type Kind uint8

const (
	KindRaw     Kind = iota // Bare integer: distance sensor
	KindEncoder             // "ENC <int>": rotary encoder
)

func (k Kind) String() string {
	switch k {
	case KindRaw:
		return "raw"
	case KindEncoder:
		return "encoder"
	}
	return "unknown"
}

// Reading is one decoded sensor value
type Reading struct {
	Value    int
	Kind     Kind
	Sequence uint64 // Monotonic per bridge, 0 means never written
}

// ParseLine decodes one serial line
// Accepts a bare integer or "ENC" + single space + integer; anything else is rejected
func ParseLine(line string) (Reading, bool) {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return Reading{}, false
	}

	if strings.HasPrefix(line, parameter.SensorEncoderPrefix) {
		parts := strings.Split(line, " ")
		if len(parts) != 2 || parts[0] != parameter.SensorEncoderPrefix {
			return Reading{}, false
		}
		v, err := strconv.Atoi(parts[1])
		if err != nil {
			return Reading{}, false
		}
		return Reading{Value: v, Kind: KindEncoder}, true
	}

	v, err := strconv.Atoi(line)
	if err != nil {
		return Reading{}, false
	}
	return Reading{Value: v, Kind: KindRaw}, true
}

// Slot is the single-value hand-off between the reader goroutine and the tick
// It is lossy by contract: a write replaces any unread value, readers only ever see the latest
type Slot struct {
	latest atomic.Pointer[Reading]
	seq    atomic.Uint64
}

// Store publishes a reading, overwriting any unread one
func (s *Slot) Store(value int, kind Kind) {
	r := &Reading{Value: value, Kind: kind, Sequence: s.seq.Add(1)}
	s.latest.Store(r)
}

// Load returns the latest reading, false if nothing was ever written
func (s *Slot) Load() (Reading, bool) {
	r := s.latest.Load()
	if r == nil {
		return Reading{}, false
	}
	return *r, true
}
