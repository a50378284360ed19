package cli

import (
	"bytes"
	"strings"
	"testing"
)

func withoutColor(t *testing.T) {
	t.Helper()
	old := colorEnabled
	colorEnabled = false
	t.Cleanup(func() { colorEnabled = old })
}

func TestDotPad(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{"normal case", "set-sflow", 20, "set-sflow " + strings.Repeat(".", 10)},
		{"name equals width minus one", "abcde", 6, "abcde"},
		{"name longer than width", "set-flowcontrol-receive", 5, "set-flowcontrol-receive"},
		{"empty string", "", 10, " " + strings.Repeat(".", 9)},
		{"zero width", "get", 0, "get"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DotPad(tt.input, tt.width); got != tt.expected {
				t.Errorf("DotPad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.expected)
			}
		})
	}
}

func TestColorFunctions(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(string) string
		prefix string
	}{
		{"Green", Green, "\033[32m"},
		{"Yellow", Yellow, "\033[33m"},
		{"Red", Red, "\033[31m"},
		{"Bold", Bold, "\033[1m"},
		{"Dim", Dim, "\033[2m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			old := colorEnabled
			colorEnabled = true
			defer func() { colorEnabled = old }()

			got := tt.fn("hello")
			if got != tt.prefix+"hello\033[0m" {
				t.Errorf("%s(hello) = %q", tt.name, got)
			}

			colorEnabled = false
			if got := tt.fn("hello"); got != "hello" {
				t.Errorf("%s(hello) without colour = %q", tt.name, got)
			}
		})
	}
}

func TestStateHelpers(t *testing.T) {
	withoutColor(t)

	if AdminState(true) != "shutdown" || AdminState(false) != "up" {
		t.Error("AdminState")
	}
	if YesNo(true) != "yes" || YesNo(false) != "no" {
		t.Error("YesNo")
	}
	if OrDash("") != "-" || OrDash("Loopback0") != "Loopback0" {
		t.Error("OrDash")
	}
}

func TestPrintDiff(t *testing.T) {
	withoutColor(t)

	diff := "--- leaf1 (running)\n+++ leaf1 (proposed)\n@@ -1,2 +1,2 @@\n interface Ethernet1\n-   shutdown\n+   no shutdown\n"
	var buf bytes.Buffer
	PrintDiff(&buf, diff)
	if buf.String() != diff {
		t.Errorf("PrintDiff() = %q, want %q", buf.String(), diff)
	}

	buf.Reset()
	PrintDiff(&buf, "")
	if buf.Len() != 0 {
		t.Errorf("PrintDiff(empty) = %q", buf.String())
	}
}
