// Package throttle drives cockpit throttle from a time based policy.
package throttle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Label names the phase selected by a Policy.
type Label string

// Labels
const (
	Slow Label = "slow"
	Fast Label = "fast"
	Stop Label = "stop"
)

// Segment selects Label when From < t < To. Both bounds are exclusive,
// so t equal to a bound never matches.
type Segment struct {
	From  float64
	To    float64
	Label Label
}

// Contains checks if t falls into the segment.
func (s Segment) Contains(t float64) bool {
	return t > s.From && t < s.To
}

// Policy is a piecewise mapping from elapsed seconds to Label.
type Policy struct {
	Segments []Segment
	// Default is used when no segment matches.
	Default Label
}

// DefaultSchedule is the demo schedule of cockpit motors.
const DefaultSchedule = "slow:6,fast:12,slow:16"

// DefaultPolicy is slow until 6s, fast until 12s, slow until 16s,
// then stop. Exactly 6s, 12s and 16s select stop.
func DefaultPolicy() *Policy {
	p, err := ParseSchedule(DefaultSchedule)
	if err != nil {
		panic(err)
	}
	return p
}

// Select chooses the Label for elapsed seconds t.
func (p *Policy) Select(t float64) Label {
	for _, s := range p.Segments {
		if s.Contains(t) {
			return s.Label
		}
	}
	return p.Default
}

// String formats the policy in schedule syntax.
func (p *Policy) String() string {
	items := make([]string, len(p.Segments))
	for n, s := range p.Segments {
		items[n] = string(s.Label) + ":" + strconv.FormatFloat(s.To, 'g', -1, 64)
	}
	return strings.Join(items, ",")
}

// ParseSchedule parses schedule like "slow:6,fast:12,slow:16".
// Each item is label:end-seconds, the start of an item is the end of
// previous one, and the first item is unbounded below. Elapsed time
// beyond the last item selects stop.
func ParseSchedule(schedule string) (*Policy, error) {
	p := &Policy{Default: Stop}
	from := math.Inf(-1)
	for _, item := range strings.Split(schedule, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		pos := strings.IndexByte(item, ':')
		if pos < 0 {
			return nil, fmt.Errorf("invalid schedule item %q: expect label:seconds", item)
		}
		label, err := ParseLabel(item[:pos])
		if err != nil {
			return nil, err
		}
		to, err := strconv.ParseFloat(item[pos+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule item %q: %v", item, err)
		}
		if to <= from {
			return nil, fmt.Errorf("invalid schedule item %q: must be after %v", item, from)
		}
		p.Segments = append(p.Segments, Segment{From: from, To: to, Label: label})
		from = to
	}
	return p, nil
}

// ParseLabel parses a label name.
func ParseLabel(s string) (Label, error) {
	switch l := Label(strings.ToLower(strings.TrimSpace(s))); l {
	case Slow, Fast, Stop:
		return l, nil
	}
	return "", fmt.Errorf("unknown label %q", s)
}

// Message is the text logged when the label is selected.
func (l Label) Message() string {
	switch l {
	case Slow:
		return "Slow"
	case Fast:
		return "Fast"
	case Stop:
		return "Stop"
	}
	return string(l)
}
