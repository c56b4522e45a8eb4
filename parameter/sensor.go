package parameter

import "time"

// Serial Channel
const (
	// SensorDefaultPort is the serial device the Arduino enumerates as on Linux
	SensorDefaultPort = "/dev/ttyACM0"

	// SensorDefaultBaud matches the sketch's Serial.begin
	SensorDefaultBaud = 9600

	// SensorEncoderPrefix marks the rotary encoder line grammar: "ENC <int>"
	SensorEncoderPrefix = "ENC"

	// SensorReadErrorBackoff throttles the reader loop when the channel keeps failing (unplugged device)
	SensorReadErrorBackoff = 50 * time.Millisecond

	// SensorMaxLineLength discards runaway lines without a terminator
	SensorMaxLineLength = 64
)

// Calibration
const (
	// SensorBaseOffset is subtracted from every reading, 0 for rotary encoders
	SensorBaseOffset = 0
)
