package meeting

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/teemow/nextmeet/internal/calendar"
)

// header printed above the meeting in full mode
const header = "Next Meeting Details:"

// Styles decorates the header and summary lines. The zero value prints plain text.
type Styles struct {
	Enabled bool
	Header  lipgloss.Style
	Summary lipgloss.Style
}

// TerminalStyles returns the styles used when stdout is a terminal
func TerminalStyles() Styles {
	return Styles{
		Enabled: true,
		Header:  lipgloss.NewStyle().Bold(true).Underline(true),
		Summary: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
	}
}

func (s Styles) header(str string) string {
	if !s.Enabled {
		return str
	}
	return s.Header.Render(str)
}

func (s Styles) summary(str string) string {
	if !s.Enabled {
		return str
	}
	return s.Summary.Render(str)
}

// Summarizer selects the next meeting from an event list and renders it
type Summarizer struct {
	mode   OutputMode
	styles Styles
}

// NewSummarizer creates a Summarizer printing in mode
func NewSummarizer(mode OutputMode, styles Styles) *Summarizer {
	return &Summarizer{mode: mode, styles: styles}
}

// Report is the rendered result of one summary
type Report struct {
	// Meeting is nil when no qualifying meeting was found
	Meeting *Meeting
	Lines   []string
}

// Found reports whether a qualifying meeting was found
func (r Report) Found() bool {
	return r.Meeting != nil
}

// String joins the report lines, each terminated by a newline
func (r Report) String() string {
	var b strings.Builder
	for _, l := range r.Lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the report to w
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, r.String())
	return int64(n), err
}

// Summarize picks the first qualifying event relative to now and renders it.
// With no qualifying event the report holds only NoMeetingsMessage.
func (s *Summarizer) Summarize(events []calendar.Event, now time.Time) Report {
	m, ok := Next(events, now)
	if !ok {
		return Report{Lines: []string{NoMeetingsMessage}}
	}
	return Report{Meeting: &m, Lines: s.Render(m)}
}

// Render returns the output lines for m according to the summarizer's mode
func (s *Summarizer) Render(m Meeting) []string {
	lines := make([]string, 0, 4)
	if !s.mode.TimeOnly() {
		lines = append(lines, s.styles.header(header), s.styles.summary(m.Summary))
	}
	lines = append(lines, StatusLine(m))
	if s.mode.IncludeJoin() && m.JoinLink != "" {
		lines = append(lines, "Join: "+m.JoinLink)
	}
	return lines
}

// StatusLine renders "Starts in 30m" or "Already started 30m ago", followed by
// " in location X" when the meeting has a location.
func StatusLine(m Meeting) string {
	var b strings.Builder
	if m.AlreadyStarted {
		b.WriteString("Already started ")
		b.WriteString(FormatDuration(m.Duration))
		b.WriteString(" ago")
	} else {
		b.WriteString("Starts in ")
		b.WriteString(FormatDuration(m.Duration))
	}
	if m.Location != "" {
		b.WriteString(" in location ")
		b.WriteString(m.Location)
	}
	return b.String()
}
