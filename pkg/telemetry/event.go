// Package telemetry publishes throttle decisions over MQTT.
package telemetry

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/golang/protobuf/ptypes"
	structpb "github.com/golang/protobuf/ptypes/struct"

	"github.com/robotalks/trident/pkg/throttle"
)

// Event is the telemetry of one tick.
type Event struct {
	Tick    uint64
	Time    time.Time
	Elapsed float64
	Label   throttle.Label
	Level   throttle.Level
	Frame   []byte
}

// EventFrom creates an Event from a decision.
func EventFrom(d throttle.Decision) *Event {
	return &Event{
		Tick:    d.Tick,
		Time:    d.Time,
		Elapsed: d.Elapsed.Seconds(),
		Label:   d.Label,
		Level:   d.Level,
		Frame:   d.Frame,
	}
}

func numberValue(v float64) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: v}}
}

func stringValue(v string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: v}}
}

// Encode encodes the event as google.protobuf.Struct.
func (e *Event) Encode() ([]byte, error) {
	ts, err := ptypes.TimestampProto(e.Time)
	if err != nil {
		return nil, err
	}
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		"tick":    numberValue(float64(e.Tick)),
		"time":    stringValue(ptypes.TimestampString(ts)),
		"elapsed": numberValue(e.Elapsed),
		"label":   stringValue(string(e.Label)),
		"level":   numberValue(float64(e.Level)),
	}}
	if len(e.Frame) > 0 {
		s.Fields["frame"] = stringValue(hex.EncodeToString(e.Frame))
	}
	return proto.Marshal(s)
}

// DecodeEvent decodes an encoded Event.
func DecodeEvent(data []byte) (*Event, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	e := &Event{}
	for key, val := range s.Fields {
		switch key {
		case "tick":
			e.Tick = uint64(val.GetNumberValue())
		case "elapsed":
			e.Elapsed = val.GetNumberValue()
		case "level":
			e.Level = throttle.Level(val.GetNumberValue())
		case "label":
			e.Label = throttle.Label(val.GetStringValue())
		case "time":
			t, err := time.Parse(time.RFC3339Nano, val.GetStringValue())
			if err != nil {
				return nil, fmt.Errorf("invalid time: %v", err)
			}
			e.Time = t
		case "frame":
			frame, err := hex.DecodeString(val.GetStringValue())
			if err != nil {
				return nil, fmt.Errorf("invalid frame: %v", err)
			}
			e.Frame = frame
		}
	}
	return e, nil
}

// String formats the event for display.
func (e *Event) String() string {
	s := fmt.Sprintf("#%d %.3fs %s level=%d", e.Tick, e.Elapsed, e.Label, e.Level)
	if len(e.Frame) > 0 {
		s += fmt.Sprintf(" frame=[%02x]%s", e.Frame[0], e.Frame[1:])
	}
	return s
}
