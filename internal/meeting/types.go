package meeting

import (
	"time"

	"github.com/teemow/nextmeet/internal/calendar"
)

// NoMeetingsMessage is printed when no qualifying meeting is upcoming
const NoMeetingsMessage = "Congrats! Keep working, you have no upcoming meetings"

// Meeting is the next qualifying event relative to a point in time
type Meeting struct {
	Summary  string
	Start    time.Time
	Location string // empty when the event has no location
	JoinLink string // empty when the event has no conferencing link

	// AlreadyStarted is true when Start lies before the reference time.
	// Duration is then the time since the start, otherwise the time until it.
	AlreadyStarted bool
	Duration       time.Duration
}

// FromEvent builds a Meeting from e relative to now. It returns false when e
// lacks a summary or a start time.
func FromEvent(e calendar.Event, now time.Time) (Meeting, bool) {
	if !Qualifies(e) {
		return Meeting{}, false
	}

	m := Meeting{
		Summary: *e.Summary,
		Start:   *e.Start,
	}
	if e.Location != nil {
		m.Location = *e.Location
	}
	if e.JoinLink != nil {
		m.JoinLink = *e.JoinLink
	}

	delta := m.Start.Sub(now)
	if delta < 0 {
		m.AlreadyStarted = true
		m.Duration = -delta
	} else {
		m.Duration = delta
	}

	return m, true
}

// Qualifies reports whether e has both a summary and a start time
func Qualifies(e calendar.Event) bool {
	return e.Summary != nil && e.Start != nil
}

// Next returns the first qualifying event of events as a Meeting
func Next(events []calendar.Event, now time.Time) (Meeting, bool) {
	for _, e := range events {
		if m, ok := FromEvent(e, now); ok {
			return m, true
		}
	}
	return Meeting{}, false
}
