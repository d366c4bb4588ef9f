package telemetry

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/throttle"
)

// Config defines telemetry options.
type Config struct {
	// MQTTBrokerURL specifies the MQTT broker to use, empty disables telemetry.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	ID            string
	// Every publishes one of every N decisions. Label changes are
	// always published.
	Every uint64
}

var defaultConfig = Config{Every: 6}

func init() {
	if val := os.Getenv("TRIDENT_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL for telemetry, empty to disable.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID in telemetry topic, default is machine ID.")
	flag.Uint64Var(&defaultConfig.Every, "telemetry-every", defaultConfig.Every, "Publish one of every N ticks.")
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

// Topic is the topic (without prefix) events are published to.
func Topic(id string) string {
	return id + "/throttle"
}

// NewPublisher creates a Publisher, nil if telemetry is disabled.
func (c *Config) NewPublisher() (*Publisher, error) {
	if c.MQTTBrokerURL == "" {
		return nil, nil
	}
	q, err := NewQueueFromURL(c.MQTTBrokerURL)
	if err != nil {
		return nil, err
	}
	id := c.ID
	if id == "" {
		id = MachineID()
	}
	p := NewPublisher(q, id)
	p.Every = c.Every
	return p, nil
}

// Publisher publishes throttle decisions.
type Publisher struct {
	Queue *Queue
	Topic string
	Every uint64

	last throttle.Label
}

// NewPublisher creates a Publisher.
func NewPublisher(q *Queue, id string) *Publisher {
	return &Publisher{Queue: q, Topic: Topic(id), Every: 1}
}

// Name implements framework.Named.
func (p *Publisher) Name() string {
	return "telemetry"
}

// AddToLoop implements LoopAdder.
func (p *Publisher) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(p)
}

// Run implements Runnable to keep MQTT connected.
func (p *Publisher) Run(ctx context.Context) error {
	token := p.Queue.Connect()
	if token.Wait(); token.Error() != nil {
		glog.Warningf("mqtt connect error: %v", token.Error())
	}
	<-ctx.Done()
	p.Queue.Close()
	return ctx.Err()
}

// Decided implements throttle.Observer.
func (p *Publisher) Decided(d throttle.Decision) {
	changed := d.Label != p.last
	p.last = d.Label
	if !changed && p.Every > 1 && d.Tick%p.Every != 0 {
		return
	}
	payload, err := EventFrom(d).Encode()
	if err != nil {
		glog.Errorf("encode telemetry error: %v", err)
		return
	}
	p.Queue.Pub(p.Topic, payload)
}
