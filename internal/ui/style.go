// Package ui holds the console presentation: styling, banner and prompts.
// Nothing here is imported by the transform packages.
package ui

import (
	"os"

	"github.com/mitchellh/colorstring"
	"golang.org/x/term"

	"github.com/GuusDeKroon/VRCprintutils/internal/config"
)

// Styler colors console text. It is built once at startup and passed to
// everything that prints.
type Styler struct {
	colorize colorstring.Colorize
}

// NewStyler returns a Styler that emits ANSI codes only when enabled.
func NewStyler(enabled bool) *Styler {
	return &Styler{colorize: colorstring.Colorize{
		Colors:  colorstring.DefaultColors,
		Disable: !enabled,
	}}
}

// ColorEnabled resolves a config color setting against the output file.
// "auto" colors only a terminal and honors NO_COLOR.
func ColorEnabled(setting string, out *os.File) bool {
	switch setting {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return out != nil && term.IsTerminal(int(out.Fd()))
}

// Enabled reports whether output is colored.
func (s *Styler) Enabled() bool {
	return !s.colorize.Disable
}

// The text is never run through the color parser, so brackets in paths
// survive untouched.
func (s *Styler) paint(code, text string) string {
	return s.colorize.Color("["+code+"]") + text + s.colorize.Color("[reset]")
}

func (s *Styler) Bold(text string) string   { return s.paint("bold", text) }
func (s *Styler) Green(text string) string  { return s.paint("green", text) }
func (s *Styler) Cyan(text string) string   { return s.paint("cyan", text) }
func (s *Styler) Yellow(text string) string { return s.paint("yellow", text) }
func (s *Styler) Red(text string) string    { return s.paint("red", text) }
