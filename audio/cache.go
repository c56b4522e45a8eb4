package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// soundCache stores pre-rendered unity-gain buffers per sample rate
type soundCache struct {
	mu    sync.RWMutex
	sr    beep.SampleRate
	store [soundTypeCount]floatBuffer
	ready [soundTypeCount]bool
}

func newSoundCache(sr beep.SampleRate) *soundCache {
	return &soundCache{sr: sr}
}

// get returns cached buffer or generates on demand
func (c *soundCache) get(st SoundType) floatBuffer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[st] {
		buf := c.store[st]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready[st] {
		return c.store[st]
	}

	buf := generateSound(c.sr, st)
	c.store[st] = buf
	c.ready[st] = true
	return buf
}

// preload renders every effect so the first door creak does not stall the tick
func (c *soundCache) preload() {
	for st := SoundType(0); st < soundTypeCount; st++ {
		c.get(st)
	}
}
