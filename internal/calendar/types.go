package calendar

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// Event is a flattened calendar event. Optional fields are nil when the API
// response does not carry them.
type Event struct {
	ID       string
	Summary  *string
	Start    *time.Time
	Location *string
	JoinLink *string
}

// toEvent converts a Google Calendar event to an Event
func toEvent(event *calendar.Event) Event {
	if event == nil {
		return Event{}
	}

	e := Event{
		ID:       event.Id,
		Summary:  optional(event.Summary),
		Location: optional(event.Location),
		Start:    parseEventTime(event.Start),
	}

	// Conference video entry point first, then the legacy Hangouts link
	if event.ConferenceData != nil {
		for _, ep := range event.ConferenceData.EntryPoints {
			if ep != nil && ep.EntryPointType == "video" && ep.Uri != "" {
				e.JoinLink = optional(ep.Uri)
				break
			}
		}
	}
	if e.JoinLink == nil {
		e.JoinLink = optional(event.HangoutLink)
	}

	return e
}

// parseEventTime reads a timed start (RFC 3339) or an all-day date (local midnight)
func parseEventTime(dt *calendar.EventDateTime) *time.Time {
	if dt == nil {
		return nil
	}
	if dt.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, dt.DateTime); err == nil {
			return &t
		}
		return nil
	}
	if dt.Date != "" {
		loc := time.Local
		if dt.TimeZone != "" {
			if l, err := time.LoadLocation(dt.TimeZone); err == nil {
				loc = l
			}
		}
		if t, err := time.ParseInLocation("2006-01-02", dt.Date, loc); err == nil {
			return &t
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
