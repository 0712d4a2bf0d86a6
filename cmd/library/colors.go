package main

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGray  = "\033[90m"

	colorBrightRed    = "\033[91m"
	colorBrightGreen  = "\033[92m"
	colorBrightYellow = "\033[93m"
	colorBrightCyan   = "\033[96m"
)

// palette colors text only when writing to a terminal and NO_COLOR is unset.
type palette struct {
	enabled bool
}

func paletteFor(w io.Writer) palette {
	if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
		return palette{}
	}

	f, ok := w.(*os.File)
	if !ok {
		return palette{}
	}

	return palette{enabled: term.IsTerminal(int(f.Fd()))} //nolint:gosec // fd fits into int
}

func (p palette) colorize(text, color string) string {
	if !p.enabled {
		return text
	}

	return color + text + colorReset
}

func (p palette) success(text string) string { return p.colorize(text, colorBrightGreen) }
func (p palette) failure(text string) string { return p.colorize(text, colorBrightRed) }
func (p palette) warning(text string) string { return p.colorize(text, colorBrightYellow) }
func (p palette) header(text string) string {
	return p.colorize(p.colorize(text, colorBrightCyan), colorBold)
}
func (p palette) muted(text string) string { return p.colorize(text, colorGray) }
