package throttle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	fx "github.com/robotalks/trident/pkg/framework"
	"github.com/robotalks/trident/pkg/wire"
)

type recordSender struct {
	cmds []wire.Command
	err  error
}

func (s *recordSender) Send(cmd wire.Command) (wire.Frame, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.cmds = append(s.cmds, cmd)
	return wire.Build(cmd), nil
}

type recordObserver []Decision

func (o *recordObserver) Decided(d Decision) {
	*o = append(*o, d)
}

type testControlContext struct {
	tick    uint64
	elapsed time.Duration
}

func (c *testControlContext) Context() context.Context { return context.Background() }
func (c *testControlContext) Time() time.Time          { return time.Unix(0, 0) }
func (c *testControlContext) PriorityLevel() int       { return fx.PrLvControl }
func (c *testControlContext) Tick() uint64             { return c.tick }
func (c *testControlContext) Elapsed() time.Duration   { return c.elapsed }

func TestSendHelpers(t *testing.T) {
	s := &recordSender{}
	require.NoError(t, SendHigh(s))
	require.NoError(t, SendLow(s))
	require.NoError(t, SendZero(s))
	require.Equal(t, []wire.Command{
		wire.NewCommand("throttle", 100),
		wire.NewCommand("throttle", 5),
		wire.NewCommand("throttle", 0),
	}, s.cmds)
}

func TestControllerControl(t *testing.T) {
	s := &recordSender{}
	var decisions recordObserver
	ctl := NewController(s).Observe(&decisions)
	for n, sec := range []float64{0, 3, 6, 9, 12, 13, 16, 20} {
		cc := &testControlContext{tick: uint64(n), elapsed: time.Duration(sec * float64(time.Second))}
		require.NoError(t, ctl.Control(cc))
	}
	levels := make([]interface{}, len(s.cmds))
	for n, cmd := range s.cmds {
		require.Equal(t, CommandName, cmd.Name)
		levels[n] = cmd.Args[0]
	}
	require.Equal(t, []interface{}{5, 5, 0, 100, 0, 5, 0, 0}, levels)
	require.Len(t, decisions, 8)
	require.Equal(t, Fast, decisions[3].Label)
	require.Equal(t, High, decisions[3].Level)
	require.Equal(t, wire.Build(wire.NewCommand("throttle", 100)), decisions[3].Frame)
	require.Equal(t, Stop, ctl.Last())
}

func TestControllerDryRun(t *testing.T) {
	s := &recordSender{}
	var decisions recordObserver
	ctl := NewController(s).Observe(&decisions)
	ctl.DryRun = true
	require.NoError(t, ctl.Control(&testControlContext{elapsed: 7 * time.Second}))
	require.Empty(t, s.cmds)
	require.Len(t, decisions, 1)
	require.Equal(t, Fast, decisions[0].Label)
	require.Nil(t, decisions[0].Frame)
}

func TestControllerSendError(t *testing.T) {
	errIO := errors.New("io error")
	var decisions recordObserver
	ctl := NewController(&recordSender{err: errIO}).Observe(&decisions)
	err := ctl.Control(&testControlContext{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "throttle(5);")
	require.Empty(t, decisions)
}

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time        { return c.now }
func (c *stepClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func TestControllerInLoop(t *testing.T) {
	conf := NewConfig()
	s := &recordSender{}
	ctl, err := conf.NewController(s)
	require.NoError(t, err)
	var decisions recordObserver
	ctl.Observe(&decisions)

	loop := conf.NewLoop()
	loop.Clock = &stepClock{now: time.Unix(0, 0)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Add(ctl)
	loop.AddController(fx.PrLvIdle, fx.ControlFunc(func(cc fx.ControlContext) error {
		if cc.Elapsed() >= 20*time.Second {
			cancel()
		}
		return nil
	}))
	require.Equal(t, context.Canceled, loop.Run(ctx))

	counts := make(map[Label]int)
	for n, d := range decisions {
		require.Equal(t, uint64(n), d.Tick)
		require.Equal(t, time.Duration(n)*16*time.Millisecond, d.Elapsed)
		counts[d.Label]++
	}
	require.Len(t, s.cmds, len(decisions))
	// 16ms ticks hit 6s, 12s and 16s exactly, all of them select stop.
	require.Len(t, decisions, 1251)
	require.Equal(t, Stop, decisions[375].Label)
	require.Equal(t, Stop, decisions[750].Label)
	require.Equal(t, 375+249, counts[Slow])
	require.Equal(t, 374, counts[Fast])
	require.Equal(t, 2+251, counts[Stop])
}

func TestConfigNewControllerError(t *testing.T) {
	conf := NewConfig()
	conf.Schedule = "slow"
	_, err := conf.NewController(nil)
	require.Error(t, err)
	require.Equal(t, 16*time.Millisecond, NewConfig().Period())
}
