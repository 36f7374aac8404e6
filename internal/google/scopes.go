package google

import (
	calendar "google.golang.org/api/calendar/v3"
)

// Scopes are the OAuth scopes nextmeet requests. Read-only access to the
// calendar is all the event listing needs.
var Scopes = []string{
	calendar.CalendarReadonlyScope,
}
