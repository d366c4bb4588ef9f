package throttle

import (
	"flag"
	"time"

	fx "github.com/robotalks/trident/pkg/framework"
)

// Config defines the configurations for the controller.
type Config struct {
	// Rate is the loop frequency in Hz.
	Rate     float64
	Schedule string
	DryRun   bool
}

// DefaultRate is the default loop frequency.
const DefaultRate float64 = 60

var defaultConfig = Config{
	Rate:     DefaultRate,
	Schedule: DefaultSchedule,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.Rate, "rate", defaultConfig.Rate, "Command rate (Hz).")
	flag.StringVar(&defaultConfig.Schedule, "schedule", defaultConfig.Schedule, "Throttle schedule: label:end-seconds,...")
	flag.BoolVar(&defaultConfig.DryRun, "dry-run", defaultConfig.DryRun, "Only log the schedule, don't transmit.")
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

// Period is the loop period derived from Rate.
func (c *Config) Period() time.Duration {
	return fx.PeriodFromRate(c.Rate)
}

// NewController creates a controller using the config.
func (c *Config) NewController(s Sender) (*Controller, error) {
	policy, err := ParseSchedule(c.Schedule)
	if err != nil {
		return nil, err
	}
	ctl := NewController(s)
	ctl.Policy = policy
	ctl.DryRun = c.DryRun
	return ctl, nil
}

// NewLoop creates a loop running at the configured rate.
func (c *Config) NewLoop() *fx.Loop {
	loop := fx.NewLoop()
	loop.Period = c.Period()
	return loop
}
