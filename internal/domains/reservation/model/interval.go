package model

import (
	"errors"
	"time"
)

// Interval is a half-open time range [Start, End). A reservation occupying
// 14:00-16:00 and another starting at exactly 16:00 do not overlap.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Validate() error {
	if !i.End.After(i.Start) {
		return errors.New("interval end must be after start")
	}

	return nil
}

// Overlaps reports whether the two intervals share any instant. The predicate
// is symmetric and treats the boundaries as exclusive on the end side.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}
