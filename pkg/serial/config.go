package serial

import (
	"flag"
	"os"
)

// Config defines serial port options.
// Data bits, parity and stop bits are fixed to 8N1.
type Config struct {
	Port     string
	BaudRate int
}

// Defaults
const (
	DefaultPort     = "/dev/ttyUSB0"
	DefaultBaudRate = 115200
)

var defaultConfig = Config{
	Port:     DefaultPort,
	BaudRate: DefaultBaudRate,
}

func init() {
	if val := os.Getenv("TRIDENT_PORT"); val != "" {
		defaultConfig.Port = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port connected to cockpit.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Baud rate of serial port.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Open opens the port using the config.
func (c *Config) Open() (*Port, error) {
	return Open(*c)
}
