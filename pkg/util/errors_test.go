package util

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupportedError("create", "Ethernet1", "ethernet")

	msg := err.Error()
	for _, want := range []string{"create", "Ethernet1", "ethernet"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error message should contain %q: %s", want, msg)
		}
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("UnsupportedError should unwrap to ErrUnsupported")
	}

	noKind := NewUnsupportedError("set-sflow", "Loopback0", "")
	if strings.Contains(noKind.Error(), "()") {
		t.Errorf("Error message should not have empty kind: %s", noKind.Error())
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("Port-Channel5", "lacp_timeout")

	if !strings.Contains(err.Error(), "lacp_timeout") {
		t.Errorf("Error message should name the attribute: %s", err.Error())
	}
	if !errors.Is(err, ErrMissingAttribute) {
		t.Errorf("ParseError should unwrap to ErrMissingAttribute")
	}
}

func TestCommandError(t *testing.T) {
	commands := []string{"interface Ethernet1", "channel-group 5 mode bogus"}
	err := NewCommandError("leaf1", commands, "% Invalid input\n")

	msg := err.Error()
	if !strings.Contains(msg, "leaf1 rejected 2 command(s)") {
		t.Errorf("unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "% Invalid input") {
		t.Errorf("message should carry device output: %s", msg)
	}
	if strings.HasSuffix(msg, "\n") {
		t.Errorf("device output should be trimmed: %q", msg)
	}

	commands[0] = "mutated"
	if err.Commands[0] != "interface Ethernet1" {
		t.Errorf("CommandError should own a copy of the commands")
	}

	if !errors.Is(err, ErrRejected) {
		t.Errorf("CommandError should unwrap to ErrRejected")
	}

	silent := NewCommandError("leaf1", nil, "")
	if strings.Contains(silent.Error(), ":") {
		t.Errorf("empty output should not add a suffix: %s", silent.Error())
	}
}

func TestValidationError(t *testing.T) {
	t.Run("single error", func(t *testing.T) {
		err := NewValidationError("lacp mode must be one of on, passive, active")
		if !strings.Contains(err.Error(), "lacp mode") {
			t.Errorf("Error message should contain the error: %s", err.Error())
		}
		if !errors.Is(err, ErrValidationFailed) {
			t.Errorf("ValidationError should unwrap to ErrValidationFailed")
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		err := NewValidationError("field1 is required", "field2 is invalid", "field3 out of range")
		msg := err.Error()
		if !strings.Contains(msg, "field1") || !strings.Contains(msg, "field2") || !strings.Contains(msg, "field3") {
			t.Errorf("Error message should contain all errors: %s", msg)
		}
	})
}

func TestValidationBuilder(t *testing.T) {
	t.Run("no errors", func(t *testing.T) {
		v := &ValidationBuilder{}
		v.Add(true, "this should not appear")

		if err := v.Build(); err != nil {
			t.Errorf("Build() should return nil when no errors: %v", err)
		}
	})

	t.Run("chaining", func(t *testing.T) {
		err := (&ValidationBuilder{}).
			Add(false, "error1").
			Add(true, "passes").
			AddErrorf("error%d", 2).
			Build()

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("Expected *ValidationError, got %T", err)
		}
		if len(validationErr.Errors) != 2 {
			t.Errorf("Expected 2 errors, got %d", len(validationErr.Errors))
		}
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotConnected,
		ErrNotFound,
		ErrInvalidConfig,
		ErrUnsupported,
		ErrValidationFailed,
		ErrMissingAttribute,
		ErrRejected,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v == %v", err1, err2)
			}
		}
	}
}

func TestErrorsIsWrapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"UnsupportedError", NewUnsupportedError("delete", "Ethernet1", "ethernet"), ErrUnsupported},
		{"ParseError", NewParseError("Port-Channel1", "lacp_timeout"), ErrMissingAttribute},
		{"CommandError", NewCommandError("leaf1", []string{"bogus"}, ""), ErrRejected},
		{"ValidationError", NewValidationError("msg"), ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			if !errors.Is(wrapped, tt.sentinel) {
				t.Errorf("%s should wrap %v", tt.name, tt.sentinel)
			}
		})
	}
}
