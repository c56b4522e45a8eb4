package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-driven clock for deterministic game runs
// It satisfies TimeProvider and can step a Game directly with Drive
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime jumps the clock; a jump backwards reaches Game.Step as a zero delta
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d and returns the new time
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
	return m.now
}

// Drive steps g once per step-sized advance until d has elapsed and returns the tick count
func (m *MockTimeProvider) Drive(g *Game, step, d time.Duration) int {
	if step <= 0 {
		return 0
	}
	n := 0
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		g.Step(m.Advance(step))
		n++
	}
	return n
}
