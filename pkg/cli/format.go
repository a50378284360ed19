// Package cli provides output helpers for the ifcfg command.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// colorEnabled is false when NO_COLOR is set (no-color.org).
var colorEnabled = os.Getenv("NO_COLOR") == ""

func paint(code, s string) string {
	if !colorEnabled {
		return s
	}
	return "\033[" + code + "m" + s + "\033[0m"
}

// Green wraps s in ANSI green.
func Green(s string) string { return paint("32", s) }

// Yellow wraps s in ANSI yellow.
func Yellow(s string) string { return paint("33", s) }

// Red wraps s in ANSI red.
func Red(s string) string { return paint("31", s) }

// Bold wraps s in ANSI bold.
func Bold(s string) string { return paint("1", s) }

// Dim wraps s in ANSI dim.
func Dim(s string) string { return paint("2", s) }

// AdminState renders an interface's shutdown flag.
func AdminState(shutdown bool) string {
	if shutdown {
		return Red("shutdown")
	}
	return Green("up")
}

// YesNo renders a capability or feature flag.
func YesNo(b bool) string {
	if b {
		return Green("yes")
	}
	return Dim("no")
}

// OrDash returns s, or "-" when s is empty.
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// DotPad pads name with dots to the given width.
// Example: DotPad("set-sflow", 20) → "set-sflow .........."
func DotPad(name string, width int) string {
	if width <= 0 || len(name) >= width-1 {
		return name
	}
	return name + " " + strings.Repeat(".", width-len(name)-1)
}

// PrintDiff writes a unified diff with added lines in green and removed
// lines in red.
func PrintDiff(w io.Writer, diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		text := strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(text, "+++"), strings.HasPrefix(text, "---"):
			text = Bold(text)
		case strings.HasPrefix(text, "@@"):
			text = Dim(text)
		case strings.HasPrefix(text, "+"):
			text = Green(text)
		case strings.HasPrefix(text, "-"):
			text = Red(text)
		}
		fmt.Fprintln(w, text)
	}
}
