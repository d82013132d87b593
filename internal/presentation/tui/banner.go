package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`           _   _`,
	`  ___  ___| |_(_) __ _`,
	` / _ \/ __| __| |/ _` + "`" + ` |`,
	`| (_) \__ \ |_| | (_| |`,
	` \___/|___/\__|_|\__,_|`,
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9", "#f472b6"}

// PrintBanner writes the ostia ASCII art banner to w, coloured when the
// terminal supports it.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
