package parameter

import "time"

// Door Thresholds (rotation units after offset)
const (
	// DoorPeekBuffer is the rotation at which the door counts as cracked open
	DoorPeekBuffer = 2

	// DoorOpenBuffer is the rotation at which the door counts as fully open
	DoorOpenBuffer = 6

	// DoorSlamDistance is the single-tick closing distance from Open that counts as a slam
	DoorSlamDistance = 4
)

// Room Clear Timing
const (
	// DoorMinClearTime is the lower bound of the per-room open-in-the-dark requirement
	DoorMinClearTime = 4 * time.Second

	// DoorMaxClearTime is the upper bound of the per-room open-in-the-dark requirement
	DoorMaxClearTime = 9 * time.Second
)
