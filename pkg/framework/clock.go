package framework

import "time"

// Clock provides time measurement and sleep for the loop.
type Clock interface {
	Now() time.Time
	Sleep(time.Duration)
}

// SystemClock uses the monotonic clock from package time.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep implements Clock.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// MinPeriod is the shortest period of the loop.
const MinPeriod = time.Millisecond

// PeriodFromRate converts a rate in Hz into a period truncated to
// whole milliseconds, e.g. 60Hz is 16ms. Rates above 1000Hz are
// limited to MinPeriod.
func PeriodFromRate(hz float64) time.Duration {
	if hz <= 0 {
		return DefaultPeriod
	}
	if period := time.Duration(1000/hz) * time.Millisecond; period > MinPeriod {
		return period
	}
	return MinPeriod
}
