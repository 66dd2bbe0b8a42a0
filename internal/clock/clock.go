// Package clock provides the time source injected into the study core so
// that scheduling stays deterministic under test.
package clock

import "time"

type Clock interface {
	Now() time.Time
}

// Real reads the wall clock in the configured location.
type Real struct {
	Location *time.Location
}

func (c Real) Now() time.Time {
	now := time.Now()
	if c.Location != nil {
		return now.In(c.Location)
	}
	return now
}

// Fixed always returns the same instant.
type Fixed time.Time

func (c Fixed) Now() time.Time {
	return time.Time(c)
}
