// Package calendar provides a client for reading upcoming events from the
// Google Calendar API.
//
// The client issues a single, fixed query against the caller's primary
// calendar: events starting from now, recurring events expanded into single
// instances, ordered ascending by start time. Callers rely on that ordering;
// the client never re-sorts the response.
//
// Every failure is returned as a *RemoteError whose Kind is one of a closed set
// of variants, so callers can map each one to a specific message.
//
// Example usage:
//
//	client, err := calendar.NewClient(ctx, httpClient)
//	if err != nil {
//	    return err
//	}
//
//	events, err := client.ListUpcoming(ctx, time.Now())
//	if err != nil {
//	    var remoteErr *calendar.RemoteError
//	    if errors.As(err, &remoteErr) {
//	        // remoteErr.Kind
//	    }
//	    return err
//	}
package calendar
