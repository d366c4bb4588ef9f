// Package serial provides the serial transport to cockpit.
package serial

import (
	"fmt"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// ConnectionError indicates the serial port can't be opened.
type ConnectionError struct {
	Port     string
	BaudRate int
	Err      error
}

// Error implements error.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not open port %s with baud rate %d: %v", e.Port, e.BaudRate, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Port is an opened serial port.
type Port struct {
	Config Config

	port serial.Port
}

var openPort = serial.Open

// Mode returns the serial mode for baud rate, 8 data bits,
// no parity and one stop bit.
func Mode(baudRate int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// Open opens a serial port.
func Open(conf Config) (*Port, error) {
	p, err := openPort(conf.Port, Mode(conf.BaudRate))
	if err != nil {
		return nil, &ConnectionError{Port: conf.Port, BaudRate: conf.BaudRate, Err: err}
	}
	glog.Infof("opened %s at %d baud", conf.Port, conf.BaudRate)
	return &Port{Config: conf, port: p}, nil
}

// Read implements io.Reader.
func (p *Port) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write implements io.Writer.
func (p *Port) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Flush waits until all written bytes are transmitted.
func (p *Port) Flush() error {
	return p.port.Drain()
}

// Close implements io.Closer.
func (p *Port) Close() error {
	return p.port.Close()
}

// List enumerates serial ports available on the system.
func List() ([]string, error) {
	return serial.GetPortsList()
}
