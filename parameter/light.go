package parameter

import "time"

// Light Flick Detection
const (
	// LightFlashToggles is the toggle count inside LightFlashWindow that counts as a flash
	LightFlashToggles = 3

	// LightFlashWindow is the sliding window for flash detection
	LightFlashWindow = 1 * time.Second

	// LightToggleHistory is the minimum toggle timestamp ring; it grows to fit the flash toggle count
	LightToggleHistory = 8
)
