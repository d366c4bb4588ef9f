// Package sh provides an interactive shell to send commands to cockpit.
package sh

import (
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/trident/pkg/serial"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	AutoOpen    bool

	Shell   *ishell.Shell
	Config  *serial.Config
	Session *Session
}

const (
	shellKey       = "$shell"
	unopenedPrompt = "[none] > "
)

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&PortsCmd,
		&OpenCmd,
		&CloseCmd,
		&SendCmd,
		&ThrottleCmd,
		&HighCmd,
		&LowCmd,
		&ZeroCmd,
		&FrameCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell.
func New(conf *serial.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Config:      conf,
		Session:     NewSession(OpenSerial),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unopenedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpened wraps command func requires an opened port.
func MustBeOpened(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if !ShellFrom(c).Session.IsOpened() {
			c.Err(ErrNotOpened)
			return
		}
		fn(c)
	}
}

// WithAutoOpen sets AutoOpen.
func (s *Shell) WithAutoOpen(en bool) *Shell {
	s.AutoOpen = en
	return s
}

// Open opens the serial port and updates prompt.
func (s *Shell) Open(conf serial.Config) error {
	if err := s.Session.OpenPort(conf); err != nil {
		return err
	}
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", conf.Port))
	return nil
}

// Close closes the serial port.
func (s *Shell) Close() error {
	s.Shell.SetPrompt(unopenedPrompt)
	return s.Session.ClosePort()
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	defer s.Session.ClosePort()
	if s.AutoOpen {
		if err := s.Open(*s.Config); err != nil {
			log.Fatalln(err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(serial.NewConfig()).WithAutoOpen(true).Run(flag.Args()...)
}
