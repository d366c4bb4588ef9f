package sh

import (
	"fmt"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/trident/pkg/serial"
	"github.com/robotalks/trident/pkg/throttle"
	"github.com/robotalks/trident/pkg/wire"
)

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

func sendFunc(fn func(throttle.Sender) error) func(c *ishell.Context) {
	return MustBeOpened(func(c *ishell.Context) {
		if err := fn(ShellFrom(c).Session); err != nil {
			c.Err(err)
			return
		}
		c.Println("OK")
	})
}

var (
	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"l"},
		Help:    "list serial ports",
		Func: func(c *ishell.Context) {
			ports, err := serial.List()
			if err != nil {
				c.Err(err)
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, p := range ports {
				c.Println(p)
			}
		},
	}

	// OpenCmd opens a serial port.
	OpenCmd = ishell.Cmd{
		Name:    "open",
		Aliases: []string{"o"},
		Help:    "[PORT [BAUD]]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			conf := *s.Config
			if len(c.Args) > 0 {
				conf.Port = c.Args[0]
			}
			if len(c.Args) > 1 {
				baud, err := strconv.Atoi(c.Args[1])
				if err != nil {
					c.Err(fmt.Errorf("invalid baud rate %q", c.Args[1]))
					return
				}
				conf.BaudRate = baud
			}
			if err := s.Open(conf); err != nil {
				c.Err(err)
			}
		},
	}

	// CloseCmd closes the serial port.
	CloseCmd = ishell.Cmd{
		Name:    "close",
		Aliases: []string{"c"},
		Help:    "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).Close(); err != nil {
				c.Err(err)
			}
		},
	}

	// SendCmd sends an arbitrary command.
	SendCmd = ishell.Cmd{
		Name:    "send",
		Aliases: []string{"s"},
		Help:    "NAME [ARGS...]",
		Func: MustBeOpened(func(c *ishell.Context) {
			cmd, err := CommandFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			frame, err := ShellFrom(c).Session.Send(cmd)
			if err != nil {
				c.Err(err)
				return
			}
			c.Println(frame.String())
		}),
	}

	// ThrottleCmd sends throttle command with a level.
	ThrottleCmd = ishell.Cmd{
		Name:    "throttle",
		Aliases: []string{"t"},
		Help:    "LEVEL",
		Func: MustBeOpened(func(c *ishell.Context) {
			if len(c.Args) != 1 {
				c.Err(fmt.Errorf("level required"))
				return
			}
			level, err := strconv.Atoi(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid level %q", c.Args[0]))
				return
			}
			sendFunc(func(s throttle.Sender) error {
				return throttle.SendLevel(s, throttle.Level(level))
			})(c)
		}),
	}

	// HighCmd sends high throttle.
	HighCmd = ishell.Cmd{
		Name: "high",
		Help: "throttle 100",
		Func: sendFunc(throttle.SendHigh),
	}

	// LowCmd sends low throttle.
	LowCmd = ishell.Cmd{
		Name: "low",
		Help: "throttle 5",
		Func: sendFunc(throttle.SendLow),
	}

	// ZeroCmd sends zero throttle.
	ZeroCmd = ishell.Cmd{
		Name:    "zero",
		Aliases: []string{"stop"},
		Help:    "throttle 0",
		Func:    sendFunc(throttle.SendZero),
	}

	// FrameCmd prints the encoded frame without sending.
	FrameCmd = ishell.Cmd{
		Name: "frame",
		Help: "NAME [ARGS...]",
		Func: func(c *ishell.Context) {
			cmd, err := CommandFromArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			frame := wire.Build(cmd)
			c.Printf("%s % x\n", frame, []byte(frame))
		},
	}
)
