package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const banner = `
  _   _____  _____  ___  ___  _____  ________  __________  ____  __   ____
 | | / / _ \/ ___/ / _ \/ _ \/  _/ |/ /_  __/ /_  __/ __ \/ __ \/ /  / __/
 | |/ / , _/ /__  / ___/ , _// //    / / /     / / / /_/ / /_/ / /___\ \
 |___/_/|_|\___/ /_/  /_/|_/___/_/|_/ /_/     /_/  \____/\____/____/___/

===========================[  by GuusDeKroon  ]===========================
`

const smallBanner = "VRC Print Tools - by GuusDeKroon"

// defaultWidth is assumed when the output is not a terminal.
const defaultWidth = 80

// TerminalWidth returns the column count of f, or 80 when unknown.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func bannerWidth() int {
	need := 0
	for _, line := range strings.Split(banner, "\n") {
		if strings.TrimSpace(line) != "" && len(line) > need {
			need = len(line)
		}
	}
	return need
}

// PrintBanner writes the large banner when it fits in width columns and a
// one-line title with an underline otherwise.
func PrintBanner(w io.Writer, s *Styler, width int) {
	if width >= bannerWidth() {
		fmt.Fprintln(w, s.Bold(banner))
		return
	}
	fmt.Fprintln(w, s.Bold(smallBanner))
	n := len(smallBanner)
	if width < n {
		n = width
	}
	fmt.Fprintln(w, strings.Repeat("=", n))
}
