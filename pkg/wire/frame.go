package wire

import (
	"fmt"
	"io"
)

// Frame is an encoded command: checksum byte followed by the payload.
type Frame []byte

// Build encodes a command into a frame ready for transmission.
func Build(cmd Command) Frame {
	payload := cmd.Payload()
	f := make(Frame, len(payload)+1)
	f[0] = Checksum(payload)
	copy(f[1:], payload)
	return f
}

// Checksum returns the leading checksum byte.
func (f Frame) Checksum() byte {
	if len(f) == 0 {
		return 0
	}
	return f[0]
}

// Payload returns the textual part of the frame.
func (f Frame) Payload() []byte {
	if len(f) == 0 {
		return nil
	}
	return f[1:]
}

// Valid checks the checksum against the payload.
func (f Frame) Valid() bool {
	return len(f) > 0 && Checksum(f.Payload()) == f.Checksum()
}

// String formats the frame for logging, e.g. [1e]throttle(100);
func (f Frame) String() string {
	return fmt.Sprintf("[%02x]%s", f.Checksum(), f.Payload())
}

// WriteTo writes encoded bytes.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f)
	return int64(n), err
}
