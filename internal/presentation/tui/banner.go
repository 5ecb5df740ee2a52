package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  ____         __  __ _       `,
	` |  _ \ _   _ / _|/ _(_)_ __  `,
	` | |_) | | | | |_| |_| | '_ \ `,
	` |  __/| |_| |  _|  _| | | | |`,
	` |_|    \__,_|_| |_| |_|_| |_|`,
}

var bannerColors = []string{"#c084fc", "#a78bfa", "#818cf8", "#a78bfa", "#c084fc"}

// PrintBanner writes the puffin banner in a purple gradient.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
