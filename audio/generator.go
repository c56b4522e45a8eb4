package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/night-door/parameter"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
	waveNoise
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples
func oscillator(sr beep.SampleRate, waveType int, freq float64, samples int, rng *rand.Rand) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	phaseInc := freq / float64(sr)

	for i := 0; i < samples; i++ {
		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		case waveSaw:
			buf[i] = 2.0 * (phase - 0.5)
		case waveNoise:
			buf[i] = rng.Float64()*2 - 1
		}

		phase += phaseInc
		if phase >= 1.0 {
			phase -= 1.0
		}
	}
	return buf
}

// sweep is a sine whose frequency moves linearly from f0 to f1, with optional vibrato depth in Hz
func sweep(sr beep.SampleRate, f0, f1, vibratoHz, vibratoDepth float64, samples int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0
	for i := 0; i < samples; i++ {
		t := float64(i) / float64(sr)
		progress := float64(i) / float64(max(samples-1, 1))
		freq := f0 + (f1-f0)*progress + vibratoDepth*math.Sin(2*math.Pi*vibratoHz*t)
		buf[i] = math.Sin(2 * math.Pi * phase)
		phase += freq / float64(sr)
		if phase >= 1.0 {
			phase -= math.Floor(phase)
		}
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(sr beep.SampleRate, buf floatBuffer, attack, release time.Duration) {
	total := len(buf)
	attackSamples := sr.N(attack)
	releaseSamples := sr.N(release)

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// applyDecay multiplies by exp(-rate*t)
func applyDecay(sr beep.SampleRate, buf floatBuffer, rate float64) {
	for i := range buf {
		buf[i] *= math.Exp(-rate * float64(i) / float64(sr))
	}
}

// lowPass is a one-pole smoother, alpha in (0, 1]; smaller is darker
func lowPass(buf floatBuffer, alpha float64) {
	prev := 0.0
	for i := range buf {
		prev += alpha * (buf[i] - prev)
		buf[i] = prev
	}
}

// mixFloatBuffers adds b into a (in place), extending a if needed
func mixFloatBuffers(a, b floatBuffer, bScale float64) floatBuffer {
	if len(b) > len(a) {
		extended := make(floatBuffer, len(b))
		copy(extended, a)
		a = extended
	}
	for i := range b {
		a[i] += b[i] * bScale
	}
	return a
}

// normalize scales the buffer so its peak is at most peak
func normalize(buf floatBuffer, peak float64) {
	hi := 0.0
	for _, v := range buf {
		hi = max(hi, math.Abs(v))
	}
	if hi <= peak || hi == 0 {
		return
	}
	scale := peak / hi
	for i := range buf {
		buf[i] *= scale
	}
}

// generateSound renders one effect; the noise seed is fixed per type so renders are repeatable
func generateSound(sr beep.SampleRate, st SoundType) floatBuffer {
	rng := rand.New(rand.NewPCG(uint64(st)+1, 0x6e69676874))
	var buf floatBuffer

	switch st {
	case SoundCreak:
		// Slow wobbling saw through a dark filter: a hinge under load
		n := sr.N(parameter.CreakSoundDuration)
		buf = sweep(sr, 180, 240, 9, 35, n)
		saw := oscillator(sr, waveSaw, 210, n, rng)
		buf = mixFloatBuffers(buf, saw, 0.35)
		lowPass(buf, 0.2)
		buf = mixFloatBuffers(buf, oscillator(sr, waveNoise, 0, n, rng), 0.05)

	case SoundThud:
		n := sr.N(parameter.ThudSoundDuration)
		buf = sweep(sr, 110, 55, 0, 0, n)
		applyDecay(sr, buf, 18)

	case SoundSlam:
		n := sr.N(parameter.SlamSoundDuration)
		noise := oscillator(sr, waveNoise, 0, n, rng)
		lowPass(noise, 0.35)
		applyDecay(sr, noise, 22)
		body := sweep(sr, 90, 40, 0, 0, n)
		applyDecay(sr, body, 9)
		buf = mixFloatBuffers(body, noise, 0.9)

	case SoundClick:
		n := sr.N(parameter.ClickSoundDuration)
		buf = oscillator(sr, waveSquare, 2400, n, rng)
		buf = mixFloatBuffers(buf, oscillator(sr, waveNoise, 0, n, rng), 0.5)
		applyDecay(sr, buf, 160)

	case SoundSting:
		// Minor second cluster rising into a tritone
		n := sr.N(parameter.StingSoundDuration)
		buf = sweep(sr, 220, 233, 0, 0, n)
		buf = mixFloatBuffers(buf, sweep(sr, 233, 311, 0, 0, n), 0.8)
		buf = mixFloatBuffers(buf, oscillator(sr, waveSaw, 110, n, rng), 0.25)
		applyDecay(sr, buf, 2.5)

	case SoundScream:
		n := sr.N(parameter.ScreamSoundDuration)
		buf = sweep(sr, 900, 1400, 23, 120, n)
		buf = mixFloatBuffers(buf, sweep(sr, 1350, 2100, 31, 180, n), 0.6)
		noise := oscillator(sr, waveNoise, 0, n, rng)
		lowPass(noise, 0.6)
		buf = mixFloatBuffers(buf, noise, 0.7)
		applyDecay(sr, buf, 0.8)

	default:
		return nil
	}

	applyEnvelope(sr, buf, parameter.SoundEnvelopeAttack, parameter.SoundEnvelopeRelease)
	normalize(buf, 0.9)
	return buf
}
