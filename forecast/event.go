package forecast

import (
	"errors"
	"time"
)

var (
	ErrStartAfterEnd = errors.New("event start time is after end time")
	ErrUnsetTime     = errors.New("unset event start or end time")
	ErrNoEventName   = errors.New("no event name")
)

// Event marks a contiguous span of months whose level departs from the
// surrounding series, such as a reporting gap or a temporary shutdown.
// It is modeled as a dedicated bias feature active only inside the span.
type Event struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewEvent(name string, start, end time.Time) Event {
	return Event{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (e *Event) Valid() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrUnsetTime
	}
	if e.Start.After(e.End) {
		return ErrStartAfterEnd
	}
	if e.Name == "" {
		return ErrNoEventName
	}
	return nil
}

// covers reports whether the month of t falls within the event span,
// comparing at month granularity so first-of-month and end-of-month
// timestamps land in the same bucket.
func (e *Event) covers(t time.Time) bool {
	m := monthOf(t)
	return !m.Before(monthOf(e.Start)) && !m.After(monthOf(e.End))
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
