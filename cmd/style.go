package cmd

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/teemow/nextmeet/internal/meeting"
)

// stylesFor returns terminal styles when w is an interactive terminal and
// plain output otherwise. NO_COLOR disables styling.
func stylesFor(w io.Writer) meeting.Styles {
	if os.Getenv("NO_COLOR") != "" {
		return meeting.Styles{}
	}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return meeting.Styles{}
	}
	return meeting.TerminalStyles()
}
