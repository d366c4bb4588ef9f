package framework

import (
	"context"
	"errors"
	"time"

	"github.com/golang/glog"
)

// DefaultPeriod is the period of 60Hz loop.
const DefaultPeriod = 16 * time.Millisecond

// Loop runs controllers at a fixed rate and maintains a virtual
// elapsed clock advanced by the measured duration of each iteration.
type Loop struct {
	Period   time.Duration
	Clock    Clock
	Observer TickObserver

	controllers [PriorityLevels][]Controller
	runners     []Runnable

	tick    uint64
	elapsed time.Duration
}

// LoopAdder provides specific logic to add components to loop.
type LoopAdder interface {
	AddToLoop(*Loop)
}

type loopIteration struct {
	ctx           context.Context
	time          time.Time
	tick          uint64
	elapsed       time.Duration
	priorityLevel int
}

// NewLoop creates a Loop.
func NewLoop() *Loop {
	return &Loop{Period: DefaultPeriod, Clock: SystemClock{}}
}

// Add adds LoopAdders.
func (l *Loop) Add(adders ...LoopAdder) *Loop {
	for _, adder := range adders {
		adder.AddToLoop(l)
	}
	return l
}

// AddController registers controllers to the loop.
func (l *Loop) AddController(priorityLevel int, ctls ...Controller) *Loop {
	l.controllers[priorityLevel] = append(l.controllers[priorityLevel], ctls...)
	for _, ctl := range ctls {
		if runner, ok := ctl.(Runnable); ok {
			l.runners = append(l.runners, runner)
		}
	}
	return l
}

// AddRunnable adds Runnable implementions.
func (l *Loop) AddRunnable(runnables ...Runnable) *Loop {
	l.runners = append(l.runners, runnables...)
	return l
}

// Elapsed gets the virtual elapsed time.
func (l *Loop) Elapsed() time.Duration {
	return l.elapsed
}

// Ticks gets the number of finished iterations.
func (l *Loop) Ticks() uint64 {
	return l.tick
}

// Run implements Runnable. It returns when ctx is canceled, any
// controller fails or any background Runnable stops.
func (l *Loop) Run(ctx context.Context) error {
	runner := NewRunnerWith(ctx)
	runner.Go(l.runners...)
	err := l.runTicks(ctx, runner.Context)
	runner.Stop()
	if rerr := runner.Wait(); rerr != nil && (err == nil || errors.Is(err, context.Canceled)) {
		return rerr
	}
	return err
}

func (l *Loop) runTicks(ctx, runnersCtx context.Context) error {
	clock := l.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	period := l.Period
	if period <= 0 {
		period = DefaultPeriod
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-runnersCtx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}
			// a background Runnable stopped, its error is collected by Run.
			return nil
		default:
		}

		start := clock.Now()
		if err := l.runIteration(ctx, start); err != nil {
			return err
		}
		stats := TickStats{Tick: l.tick, Work: clock.Now().Sub(start)}
		if remain := period - stats.Work; remain > 0 {
			stats.Sleep = remain
			clock.Sleep(remain)
		} else {
			glog.V(2).Infof("tick %d overrun: %v", l.tick, stats.Work)
		}
		l.elapsed += stats.Work + stats.Sleep
		l.tick++
		stats.Elapsed = l.elapsed
		if o := l.Observer; o != nil {
			o.TickDone(stats)
		}
	}
}

// RunOrFail is intended to be used in main to simply run the loop.
func (l *Loop) RunOrFail() {
	if err := l.Run(context.TODO()); err != nil {
		glog.Fatal(err)
	}
}

func (l *Loop) runIteration(ctx context.Context, start time.Time) error {
	iter := &loopIteration{ctx: ctx, time: start, tick: l.tick, elapsed: l.elapsed}
	for i := 0; i < PriorityLevels; i++ {
		iter.priorityLevel = i
		for _, ctl := range l.controllers[i] {
			if err := ctl.Control(iter); err != nil {
				cerr := &ControlError{Tick: l.tick, Err: err}
				if named, ok := ctl.(Named); ok {
					cerr.Controller = named.Name()
				}
				return cerr
			}
		}
	}
	return nil
}

func (t *loopIteration) Context() context.Context {
	return t.ctx
}

func (t *loopIteration) Time() time.Time {
	return t.time
}

func (t *loopIteration) PriorityLevel() int {
	return t.priorityLevel
}

func (t *loopIteration) Tick() uint64 {
	return t.tick
}

func (t *loopIteration) Elapsed() time.Duration {
	return t.elapsed
}
