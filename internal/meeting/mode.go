package meeting

import "fmt"

// OutputMode selects which parts of the report are printed
type OutputMode int

const (
	// ModeFull prints the header, the summary and the status line
	ModeFull OutputMode = iota
	// ModeFullWithJoin is ModeFull plus the join link when the event has one
	ModeFullWithJoin
	// ModeTimeOnly prints only the status line
	ModeTimeOnly
	// ModeTimeWithJoin prints the status line plus the join link when the event has one
	ModeTimeWithJoin
)

// ResolveMode maps the --time and --join flags to an OutputMode
func ResolveMode(timeOnly, join bool) OutputMode {
	switch {
	case timeOnly && join:
		return ModeTimeWithJoin
	case timeOnly:
		return ModeTimeOnly
	case join:
		return ModeFullWithJoin
	default:
		return ModeFull
	}
}

// TimeOnly reports whether the header and summary are left out
func (m OutputMode) TimeOnly() bool {
	return m == ModeTimeOnly || m == ModeTimeWithJoin
}

// IncludeJoin reports whether the join link is printed when available
func (m OutputMode) IncludeJoin() bool {
	return m == ModeFullWithJoin || m == ModeTimeWithJoin
}

func (m OutputMode) String() string {
	switch m {
	case ModeFull:
		return "full"
	case ModeFullWithJoin:
		return "full+join"
	case ModeTimeOnly:
		return "time"
	case ModeTimeWithJoin:
		return "time+join"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}
