package network

import (
	"time"

	"github.com/lixenwraith/night-door/parameter"
)

// Config holds spectator feed configuration
type Config struct {
	// Listen is the HTTP bind address; empty disables the service
	Listen string

	// Session tags every hello message; empty generates one
	Session string

	// AllowCommands lets spectators push light, door and reset requests
	AllowCommands bool

	// Timing
	WriteWait  time.Duration
	PongWait   time.Duration
	PingPeriod time.Duration

	// Limits
	MaxMessageSize     int64
	SendQueueSize      int
	BroadcastQueueSize int
}

// DefaultConfig returns a disabled feed with production timings
func DefaultConfig() *Config {
	return &Config{
		Listen:             parameter.NetworkDefaultListen,
		WriteWait:          parameter.NetworkWriteWait,
		PongWait:           parameter.NetworkPongWait,
		PingPeriod:         parameter.NetworkPingPeriod,
		MaxMessageSize:     parameter.NetworkMaxMessage,
		SendQueueSize:      parameter.NetworkSendQueueSize,
		BroadcastQueueSize: parameter.NetworkBroadcastQueueSize,
	}
}
