package sh

import (
	"errors"
	"fmt"
	"io"

	"github.com/robotalks/trident/pkg/serial"
	"github.com/robotalks/trident/pkg/wire"
)

// ErrNotOpened indicates no serial port is opened.
var ErrNotOpened = errors.New("port not opened")

// Port is an opened port to cockpit.
type Port interface {
	wire.Port
	io.Closer
}

// OpenFunc opens a port.
type OpenFunc func(serial.Config) (Port, error)

// OpenSerial opens a real serial port.
func OpenSerial(conf serial.Config) (Port, error) {
	p, err := serial.Open(conf)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Session holds the opened port and sends commands.
type Session struct {
	Open OpenFunc

	conf   serial.Config
	port   Port
	writer *wire.Writer
}

// NewSession creates a Session.
func NewSession(open OpenFunc) *Session {
	return &Session{Open: open}
}

// IsOpened indicates a port is opened.
func (s *Session) IsOpened() bool {
	return s.port != nil
}

// Config gets the config of the opened port.
func (s *Session) Config() serial.Config {
	return s.conf
}

// OpenPort opens a port, the currently opened one is closed first.
func (s *Session) OpenPort(conf serial.Config) error {
	port, err := s.Open(conf)
	if err != nil {
		return err
	}
	s.ClosePort()
	s.conf, s.port, s.writer = conf, port, wire.NewWriter(port)
	return nil
}

// ClosePort closes the opened port.
func (s *Session) ClosePort() error {
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port, s.writer = nil, nil
	return err
}

// Send implements throttle.Sender.
func (s *Session) Send(cmd wire.Command) (wire.Frame, error) {
	if s.writer == nil {
		return nil, ErrNotOpened
	}
	frame, err := s.writer.Send(cmd)
	if err != nil {
		return frame, fmt.Errorf("send %s: %v", cmd, err)
	}
	return frame, nil
}

// CommandFromArgs builds a command from shell arguments.
// Arguments are passed verbatim.
func CommandFromArgs(args []string) (wire.Command, error) {
	if len(args) == 0 {
		return wire.Command{}, errors.New("command name required")
	}
	cmd := wire.Command{Name: args[0]}
	for _, arg := range args[1:] {
		cmd.Args = append(cmd.Args, arg)
	}
	return cmd, nil
}
