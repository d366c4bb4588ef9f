package wire

import (
	"bytes"
	"fmt"
)

// Command is a named command with ordered arguments.
type Command struct {
	Name string
	Args []interface{}
}

// NewCommand creates a Command.
func NewCommand(name string, args ...interface{}) Command {
	return Command{Name: name, Args: args}
}

// Payload renders the command as name(arg0,...,argN);
// Arguments are formatted in their natural form and are not escaped.
func (c Command) Payload() []byte {
	var buf bytes.Buffer
	buf.WriteString(c.Name)
	buf.WriteByte('(')
	for n, arg := range c.Args {
		if n > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprint(&buf, arg)
	}
	buf.WriteString(");")
	return buf.Bytes()
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return string(c.Payload())
}
