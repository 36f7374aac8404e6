// Package meeting turns an ordered list of calendar events into a short report
// about the next qualifying meeting.
//
// A qualifying event has both a summary and a start time. The first qualifying
// event in the list is the next meeting; the list is expected to arrive sorted
// ascending by start time (see calendar.Client.ListUpcoming) and is not
// re-sorted here.
package meeting
