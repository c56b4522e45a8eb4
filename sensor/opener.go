package sensor

import (
	"io"

	"go.bug.st/serial"
)

// Opener opens the line-oriented channel the bridge reads from
// Close on the returned reader must abort a pending Read, otherwise Stop hangs
type Opener interface {
	Open(port string, baud int) (io.ReadCloser, error)
}

// OpenerFunc adapts a function to Opener
type OpenerFunc func(port string, baud int) (io.ReadCloser, error)

func (f OpenerFunc) Open(port string, baud int) (io.ReadCloser, error) { return f(port, baud) }

// SerialOpener opens a hardware serial port, 8N1
type SerialOpener struct{}

func (SerialOpener) Open(port string, baud int) (io.ReadCloser, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	return serial.Open(port, mode)
}

// AvailablePorts lists serial devices, used to hint at the right -port on open failure
func AvailablePorts() []string {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil
	}
	return ports
}
