package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Controller defines the abstract controlling logic.
type Controller interface {
	Control(ControlContext) error
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of current control
// iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// PriorityLevel gets the current priority level.
	PriorityLevel() int
	// Tick is the zero-based iteration number.
	Tick() uint64
	// Elapsed is the virtual elapsed time of the loop when
	// this iteration starts.
	Elapsed() time.Duration
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefine priority levels
const (
	PrLvTop    int = 0
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvControl is the alias of priority level for controllers.
	PrLvControl = PrLvNormal
	// PrLvAcuate is the alias of priority level for acuators.
	PrLvAcuate = PrLvLow
	// PrLvPostProc is the alias of priority level for post-processing.
	PrLvPostProc = PrLvIdle - 1
)

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// TickStats reports timing of a finished iteration.
type TickStats struct {
	Tick uint64
	// Work is the measured duration of running controllers.
	Work time.Duration
	// Sleep is the time slept for rate limiting.
	Sleep time.Duration
	// Elapsed is the virtual elapsed time after this iteration.
	Elapsed time.Duration
}

// Overrun indicates the iteration used up the whole period.
func (s TickStats) Overrun() bool {
	return s.Sleep == 0
}

// TickObserver is notified after each iteration.
type TickObserver interface {
	TickDone(TickStats)
}

// TickDoneFunc is the func form of TickObserver.
type TickDoneFunc func(TickStats)

// TickDone implements TickObserver.
func (f TickDoneFunc) TickDone(s TickStats) {
	f(s)
}
