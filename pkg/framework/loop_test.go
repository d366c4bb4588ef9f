package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakeClock only advances on Sleep or when work is simulated.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
}

func (c *fakeClock) work(d time.Duration) {
	c.now = c.now.Add(d)
}

type loopTestEnv struct {
	clock  *fakeClock
	loop   *Loop
	ctx    context.Context
	cancel func()
	stats  []TickStats
}

func newLoopTestEnv(period time.Duration) *loopTestEnv {
	env := &loopTestEnv{clock: &fakeClock{now: time.Unix(1000, 0)}}
	env.loop = NewLoop()
	env.loop.Period = period
	env.loop.Clock = env.clock
	env.loop.Observer = TickDoneFunc(func(s TickStats) {
		env.stats = append(env.stats, s)
	})
	env.ctx, env.cancel = context.WithCancel(context.Background())
	return env
}

// stopAfter cancels the loop during tick n-1 so exactly n ticks finish.
func (e *loopTestEnv) stopAfter(n uint64) Controller {
	return ControlFunc(func(cc ControlContext) error {
		if cc.Tick()+1 >= n {
			e.cancel()
		}
		return nil
	})
}

func TestLoopZeroCost(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	var elapsed []time.Duration
	env.loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		elapsed = append(elapsed, cc.Elapsed())
		return nil
	}))
	env.loop.AddController(PrLvIdle, env.stopAfter(100))

	err := env.loop.Run(env.ctx)
	require.Equal(t, context.Canceled, err)
	require.Equal(t, uint64(100), env.loop.Ticks())
	require.Equal(t, 100*16*time.Millisecond, env.loop.Elapsed())
	require.Len(t, elapsed, 100)
	for n, d := range elapsed {
		require.Equal(t, time.Duration(n)*16*time.Millisecond, d)
	}
	for _, s := range env.stats {
		require.False(t, s.Overrun())
		require.Equal(t, 16*time.Millisecond, s.Sleep)
	}
}

func TestLoopWorkCompensation(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	costs := []time.Duration{
		5 * time.Millisecond,
		16 * time.Millisecond,
		20 * time.Millisecond,
		0,
	}
	env.loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		env.clock.work(costs[cc.Tick()])
		return nil
	}))
	env.loop.AddController(PrLvIdle, env.stopAfter(uint64(len(costs))))

	require.Equal(t, context.Canceled, env.loop.Run(env.ctx))
	require.Equal(t, []time.Duration{11 * time.Millisecond, 16 * time.Millisecond}, env.clock.sleeps)
	require.Len(t, env.stats, 4)
	require.False(t, env.stats[0].Overrun())
	require.True(t, env.stats[1].Overrun())
	require.True(t, env.stats[2].Overrun())
	require.Equal(t, 20*time.Millisecond, env.stats[2].Work)
	require.Equal(t, (16+16+20+16)*time.Millisecond, env.loop.Elapsed())
	require.Equal(t, env.loop.Elapsed(), env.stats[3].Elapsed)
}

func TestLoopPriorityOrder(t *testing.T) {
	env := newLoopTestEnv(time.Millisecond)
	var order []int
	record := func(cc ControlContext) error {
		order = append(order, cc.PriorityLevel())
		return nil
	}
	env.loop.AddController(PrLvPostProc, ControlFunc(record))
	env.loop.AddController(PrLvTop, ControlFunc(record))
	env.loop.AddController(PrLvControl, ControlFunc(record))
	env.loop.AddController(PrLvIdle, env.stopAfter(1))
	require.Equal(t, context.Canceled, env.loop.Run(env.ctx))
	require.Equal(t, []int{PrLvTop, PrLvControl, PrLvPostProc}, order)
}

type namedController struct {
	ControlFunc
}

func (c *namedController) Name() string { return "failing" }

func TestLoopControllerError(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	errSend := errors.New("send failed")
	var calls int
	env.loop.AddController(PrLvControl, &namedController{ControlFunc(func(cc ControlContext) error {
		if cc.Tick() == 2 {
			return errSend
		}
		return nil
	})})
	env.loop.AddController(PrLvPostProc, ControlFunc(func(cc ControlContext) error {
		calls++
		return nil
	}))

	err := env.loop.Run(env.ctx)
	var cerr *ControlError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, uint64(2), cerr.Tick)
	require.Equal(t, "failing", cerr.Controller)
	require.True(t, errors.Is(err, errSend))
	require.Equal(t, 2, calls)
	require.Equal(t, uint64(2), env.loop.Ticks())
}

func TestLoopRunnables(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	started := make(chan struct{})
	stopped := make(chan struct{})
	env.loop.AddRunnable(RunFunc(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(stopped)
		return ctx.Err()
	}))
	env.loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		<-started
		return nil
	}))
	env.loop.AddController(PrLvIdle, env.stopAfter(3))
	require.Equal(t, context.Canceled, env.loop.Run(env.ctx))
	select {
	case <-stopped:
	default:
		t.Fatal("runnable not stopped")
	}
}

func TestLoopRunnableError(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	errBind := errors.New("bind: permission denied")
	env.loop.AddRunnable(NamedRun("metrics", RunFunc(func(ctx context.Context) error {
		return errBind
	})))
	env.loop.AddController(PrLvIdle, env.stopAfter(50))

	err := env.loop.Run(env.ctx)
	require.Error(t, err)
	require.True(t, errors.Is(err, errBind))
	require.LessOrEqual(t, env.loop.Ticks(), uint64(50))
}

func TestLoopStopsOnRunnableError(t *testing.T) {
	env := newLoopTestEnv(16 * time.Millisecond)
	errBroker := errors.New("broker unreachable")
	failed := make(chan struct{})
	env.loop.AddRunnable(RunFunc(func(ctx context.Context) error {
		close(failed)
		return errBroker
	}))
	env.loop.AddController(PrLvControl, ControlFunc(func(cc ControlContext) error {
		<-failed
		return nil
	}))
	env.loop.AddController(PrLvIdle, env.stopAfter(1000000))

	err := env.loop.Run(env.ctx)
	require.True(t, errors.Is(err, errBroker))
	require.NoError(t, env.ctx.Err())
}

func TestPeriodFromRate(t *testing.T) {
	require.Equal(t, 16*time.Millisecond, PeriodFromRate(60))
	require.Equal(t, 100*time.Millisecond, PeriodFromRate(10))
	require.Equal(t, time.Millisecond, PeriodFromRate(1000))
	require.Equal(t, MinPeriod, PeriodFromRate(1001))
	require.Equal(t, MinPeriod, PeriodFromRate(2000))
	require.Equal(t, DefaultPeriod, PeriodFromRate(0))
	require.Equal(t, DefaultPeriod, PeriodFromRate(-1))
}
