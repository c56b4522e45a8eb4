package audio

import (
	"math"
	"math/rand/v2"

	"github.com/gopxl/beep"
)

// bufferStreamer plays a rendered effect once, mono to both channels
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func newBufferStreamer(buf floatBuffer) *bufferStreamer {
	return &bufferStreamer{buf: buf}
}

func (s *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	for i := range samples {
		if s.pos >= len(s.buf) {
			return i, true
		}
		v := s.buf[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
	}
	return len(samples), true
}

func (s *bufferStreamer) Err() error {
	return nil
}

// BreathGenerator is an endless breathing loop: filtered noise under an inhale/exhale envelope
type BreathGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int // One breath cycle
	rng     *rand.Rand
	lp      float64
}

// NewBreathGenerator creates a breath generator with the given cycle length in samples
func NewBreathGenerator(sr beep.SampleRate, cycleSamples int) *BreathGenerator {
	return &BreathGenerator{
		sr:      sr,
		samples: max(cycleSamples, 1),
		rng:     rand.New(rand.NewPCG(0x62726561, 0x746800)),
	}
}

func (g *BreathGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)

		// Inhale over the first 40%, exhale over the next 45%, then a pause
		var env float64
		switch {
		case cyclePos < 0.4:
			env = math.Sin(cyclePos / 0.4 * math.Pi)
		case cyclePos < 0.85:
			env = 0.8 * math.Sin((cyclePos-0.4)/0.45*math.Pi)
		}

		noise := g.rng.Float64()*2 - 1
		g.lp += 0.08 * (noise - g.lp)
		sample := 0.35 * env * g.lp

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BreathGenerator) Err() error {
	return nil
}
