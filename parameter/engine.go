package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the terminal redraw interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// GameUpdateInterval is the game logic update interval (clock tick)
	GameUpdateInterval = 20 * time.Millisecond

	// MaxTickDelta caps dt fed to timers after a stall (debugger, suspended laptop)
	MaxTickDelta = 250 * time.Millisecond

	// EventLoopIterations is the number of dispatch passes per tick for events emitted by handlers
	EventLoopIterations = 16
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
