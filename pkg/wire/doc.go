// Package wire provides the cockpit command protocol.
package wire

// The cockpit firmware accepts textual commands over a serial line:
//
//	name(arg0,arg1,...,argN);
//
// Each command is prefixed with a single CRC-8 byte computed over the
// textual payload. There is no length prefix and no separator between
// consecutive frames, the receiver finds frame boundaries from the
// literal ");" terminator.
//
// The protocol is one-way: the host only transmits and never expects
// acknowledgement from the device.
//
// Producer: host controller
// Consumer: cockpit firmware
