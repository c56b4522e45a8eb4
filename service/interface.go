package service

// Service defines the lifecycle interface for infrastructure subsystems
// Services manage long-lived resources: the serial port, the audio device, the spectator listener
//
// Lifecycle:
//  1. Construction
//  2. Init(args...) - configuration handed over at Register time
//  3. Start() - open resources and launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation
	// A service whose hardware is missing degrades and returns nil
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}
