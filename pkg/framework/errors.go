package framework

import (
	"fmt"
	"strings"
)

// AggregatedError aggregates multiple errors.
type AggregatedError struct {
	Errors []error
}

// Error implements error
func (e *AggregatedError) Error() string {
	switch len(e.Errors) {
	case 0:
		return ""
	case 1:
		return e.Errors[0].Error()
	}
	msg := make([]string, 0, len(e.Errors)+1)
	msg = append(msg, "Multiple errors:")
	for _, err := range e.Errors {
		msg = append(msg, err.Error())
	}
	return strings.Join(msg, "\n")
}

// Add adds errors to be aggregated. nil will be skipped.
func (e *AggregatedError) Add(errs ...error) *AggregatedError {
	for _, err := range errs {
		if err != nil {
			e.Errors = append(e.Errors, err)
		}
	}
	return e
}

// Aggregate returns aggregated error if any error happened.
func (e *AggregatedError) Aggregate() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Unwrap returns the aggregated errors.
func (e *AggregatedError) Unwrap() []error {
	return e.Errors
}

// ControlError is returned by Loop.Run when a controller fails.
type ControlError struct {
	Tick       uint64
	Controller string
	Err        error
}

// Error implements error.
func (e *ControlError) Error() string {
	if e.Controller != "" {
		return fmt.Sprintf("tick %d: controller %s: %v", e.Tick, e.Controller, e.Err)
	}
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Err)
}

// Unwrap returns the controller error.
func (e *ControlError) Unwrap() error {
	return e.Err
}
