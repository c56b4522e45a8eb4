package parameter

import "time"

// Spectator Feed
const (
	// NetworkDefaultListen is empty: the feed is opt-in
	NetworkDefaultListen = ""

	// NetworkSendQueueSize bounds per-client backlog; slow clients are dropped
	NetworkSendQueueSize = 64

	// NetworkBroadcastQueueSize bounds tick-side backlog; events beyond are dropped
	NetworkBroadcastQueueSize = 256

	NetworkWriteWait  = 5 * time.Second
	NetworkPongWait   = 30 * time.Second
	NetworkPingPeriod = (NetworkPongWait * 9) / 10
	NetworkMaxMessage = 512
)
