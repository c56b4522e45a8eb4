package parameter

// Layout & Margins
const (
	// TopMargin for the title bar
	TopMargin = 1

	// BottomMargin for the status bar
	BottomMargin = 1

	// LeftMargin inside panels
	LeftMargin = 2

	// DoorPanelWidth is the drawn door frame width in cells
	DoorPanelWidth = 14

	// DoorPanelHeight is the drawn door frame height in cells
	DoorPanelHeight = 10

	// MeterWidth is the width of the clear and mistake meters
	MeterWidth = 20
)

// Keyboard Simulation
const (
	// InputDoorStep is the rotation change per arrow key press
	InputDoorStep = 1
)

// Status Bar Text
const (
	AudioStr    = "♫ "
	MutedStr    = "× "
	SensorStr   = " SENSOR "
	KeyboardStr = " KEYS "
	HelpText    = "space light  ↑↓ door  PgUp/PgDn open/close  r restart  m mute  q quit"
)
