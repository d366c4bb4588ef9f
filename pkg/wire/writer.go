package wire

import (
	"io"

	"github.com/golang/glog"
)

// Port is the capability required to transmit frames.
type Port interface {
	io.Writer
	// Flush blocks until all written bytes are transmitted.
	Flush() error
}

// SendObserver is notified for every frame sent successfully.
type SendObserver interface {
	FrameSent(Command, Frame)
}

// Writer sends commands to a Port. It's fire-and-forget, no
// acknowledgement is expected from the device.
type Writer struct {
	Port     Port
	Observer SendObserver
}

// NewWriter creates a Writer.
func NewWriter(port Port) *Writer {
	return &Writer{Port: port}
}

// Send encodes and transmits a command.
func (w *Writer) Send(cmd Command) (Frame, error) {
	frame := Build(cmd)
	if _, err := frame.WriteTo(w.Port); err != nil {
		return frame, err
	}
	if err := w.Port.Flush(); err != nil {
		return frame, err
	}
	glog.V(1).Infof("Wrote: %s", frame)
	if o := w.Observer; o != nil {
		o.FrameSent(cmd, frame)
	}
	return frame, nil
}

// SendCommand is a shortcut of Send(NewCommand(name, args...)).
func (w *Writer) SendCommand(name string, args ...interface{}) error {
	_, err := w.Send(NewCommand(name, args...))
	return err
}
