package throttle

import "github.com/robotalks/trident/pkg/wire"

// CommandName is the cockpit command to set throttle.
const CommandName = "throttle"

// Level is the throttle level.
type Level int

// Predefined levels.
const (
	Zero Level = 0
	Low  Level = 5
	High Level = 100
)

// Level maps label to throttle level: slow is Low, fast is High
// and anything else is Zero.
func (l Label) Level() Level {
	switch l {
	case Slow:
		return Low
	case Fast:
		return High
	}
	return Zero
}

// Command builds the throttle command for the level.
func Command(level Level) wire.Command {
	return wire.NewCommand(CommandName, int(level))
}

// Sender transmits commands.
type Sender interface {
	Send(wire.Command) (wire.Frame, error)
}

// SendLevel sends a throttle command.
func SendLevel(s Sender, level Level) error {
	_, err := s.Send(Command(level))
	return err
}

// SendHigh sends a high powered throttle command.
func SendHigh(s Sender) error {
	return SendLevel(s, High)
}

// SendLow sends a low powered throttle command.
func SendLow(s Sender) error {
	return SendLevel(s, Low)
}

// SendZero sends a zero throttle command.
func SendZero(s Sender) error {
	return SendLevel(s, Zero)
}
