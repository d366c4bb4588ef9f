package wire

import (
	"bufio"
	"bytes"
	"io"
)

var terminator = []byte(");")

// Scanner splits a byte stream into frames on the ");" terminator.
// It's used on the device side (e.g. mock device) to verify what the
// host transmits.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Split(SplitFrames)
	return &Scanner{s: s}
}

// Scan advances to the next frame.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Frame returns the current frame. The returned slice is only valid
// until the next call to Scan.
func (s *Scanner) Frame() Frame {
	return Frame(s.s.Bytes())
}

// Err returns the first non-EOF error.
func (s *Scanner) Err() error {
	return s.s.Err()
}

// SplitFrames is a bufio.SplitFunc for frames. The checksum byte is the
// first byte of a frame, so a terminator is only searched after it.
func SplitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if len(data) > 1 {
		if i := bytes.Index(data[1:], terminator); i >= 0 {
			end := i + 1 + len(terminator)
			return end, data[:end], nil
		}
	}
	if atEOF && len(data) > 0 {
		// trailing partial frame.
		return len(data), data, nil
	}
	return 0, nil, nil
}
