package throttle

import (
	"fmt"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/wire"
)

// Decision is what the controller decided in one tick.
type Decision struct {
	Tick    uint64
	Time    time.Time
	Elapsed time.Duration
	Label   Label
	Level   Level
	// Frame is nil when nothing is transmitted.
	Frame wire.Frame
}

// Observer receives decisions, e.g. for telemetry.
type Observer interface {
	Decided(Decision)
}

// Controller selects throttle from the virtual elapsed time of
// the loop and transmits it every tick.
type Controller struct {
	Policy *Policy
	Sender Sender
	// DryRun only logs the labels.
	DryRun    bool
	Observers []Observer

	last Label
}

// NewController creates a Controller with default policy.
func NewController(s Sender) *Controller {
	return &Controller{Policy: DefaultPolicy(), Sender: s}
}

// Name implements framework.Named.
func (c *Controller) Name() string {
	return CommandName
}

// AddToLoop implements LoopAdder.
func (c *Controller) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PrLvControl, c)
}

// Observe adds observers.
func (c *Controller) Observe(observers ...Observer) *Controller {
	c.Observers = append(c.Observers, observers...)
	return c
}

// Control implements Controller.
func (c *Controller) Control(cc fx.ControlContext) error {
	d := Decision{Tick: cc.Tick(), Time: cc.Time(), Elapsed: cc.Elapsed()}
	d.Label = c.Policy.Select(d.Elapsed.Seconds())
	d.Level = d.Label.Level()
	if d.Label != c.last {
		glog.Infof("%s (%.3fs)", d.Label.Message(), d.Elapsed.Seconds())
		c.last = d.Label
	} else if glog.V(2) {
		glog.Info(d.Label.Message())
	}
	if !c.DryRun && c.Sender != nil {
		frame, err := c.Sender.Send(Command(d.Level))
		if err != nil {
			return fmt.Errorf("send %s: %v", Command(d.Level), err)
		}
		d.Frame = frame
	}
	for _, o := range c.Observers {
		o.Decided(d)
	}
	return nil
}

// Last gets the label selected in the latest tick.
func (c *Controller) Last() Label {
	return c.last
}
