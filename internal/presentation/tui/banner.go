package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6", "#fb7185"}

// PrintBanner writes the program name with a colour gradient, one colour per
// letter pair, followed by the version.
func PrintBanner(w io.Writer, version string) {
	o := termenv.NewOutput(w)
	name := "blockscript"

	fmt.Fprintln(w)
	fmt.Fprint(w, "  ")
	for i, r := range name {
		color := bannerColors[(i/2)%len(bannerColors)]
		fmt.Fprint(w, o.String(string(r)).Bold().Foreground(o.Color(color)))
	}
	fmt.Fprintf(w, " %s\n\n", o.String(version).Faint())
}

// Status writes a one-line outcome for subject: a green check when err is
// nil, a red cross and the error otherwise.
func Status(w io.Writer, subject string, err error) {
	o := termenv.NewOutput(w)
	if err == nil {
		fmt.Fprintf(w, "%s %s\n", o.String("✓").Foreground(o.Color("#22c55e")), subject)
		return
	}
	fmt.Fprintf(w, "%s %s: %v\n", o.String("✗").Foreground(o.Color("#ef4444")), subject, err)
}
