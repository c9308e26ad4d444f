package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII banner followed by the algorithm name.
func PrintBanner(w io.Writer, subtitle string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{"  ___  ___ _ __ ___ | | ___   __ _ _   _", "#818cf8"},
		{" / __|/ _ \\ '__/ _ \\| |/ _ \\ / _` | | | |", "#a78bfa"},
		{" \\__ \\  __/ | | (_) | | (_) | (_| | |_| |", "#c084fc"},
		{" |___/\\___|_|  \\___/|_|\\___/ \\__, |\\__, |", "#e879f9"},
		{"                             |___/ |___/", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if subtitle != "" {
		fmt.Fprintln(w, out.String("  "+subtitle).Faint())
	}
	fmt.Fprintln(w)
}
