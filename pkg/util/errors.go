// Package util provides logging, the error taxonomy, and interface-name helpers.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below unwrap to one of these.
var (
	ErrNotConnected     = errors.New("device not connected")
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnsupported      = errors.New("unsupported operation")
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingAttribute = errors.New("required attribute missing")
	ErrRejected         = errors.New("commands rejected by device")
)

// UnsupportedError reports an operation the interface's type does not implement
type UnsupportedError struct {
	Operation string
	Interface string
	Kind      string
}

func (e *UnsupportedError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("%s is not supported on %s (%s)", e.Operation, e.Interface, e.Kind)
	}
	return fmt.Sprintf("%s is not supported on %s", e.Operation, e.Interface)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// NewUnsupportedError creates an unsupported-operation error
func NewUnsupportedError(operation, intf, kind string) *UnsupportedError {
	return &UnsupportedError{Operation: operation, Interface: intf, Kind: kind}
}

// ParseError reports a required attribute that could not be extracted
// from an interface's configuration block.
type ParseError struct {
	Interface string
	Attribute string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: attribute %q not present in configuration", e.Interface, e.Attribute)
}

func (e *ParseError) Unwrap() error {
	return ErrMissingAttribute
}

// NewParseError creates a parse error
func NewParseError(intf, attribute string) *ParseError {
	return &ParseError{Interface: intf, Attribute: attribute}
}

// CommandError reports a configure batch the device refused. The batch is
// all-or-nothing, so the whole command list is carried.
type CommandError struct {
	Device   string
	Commands []string
	Output   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s rejected %d command(s)", e.Device, len(e.Commands))
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return ErrRejected
}

// NewCommandError creates a command error
func NewCommandError(device string, commands []string, output string) *CommandError {
	return &CommandError{
		Device:   device,
		Commands: append([]string(nil), commands...),
		Output:   output,
	}
}

// ValidationError represents one or more validation failures
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "validation failed: " + e.Errors[0]
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a validation error from messages
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Errors: messages}
}

// ValidationBuilder helps accumulate validation errors
type ValidationBuilder struct {
	errors []string
}

// Add adds an error message if condition is false
func (v *ValidationBuilder) Add(condition bool, message string) *ValidationBuilder {
	if !condition {
		v.errors = append(v.errors, message)
	}
	return v
}

// AddErrorf adds a formatted error message
func (v *ValidationBuilder) AddErrorf(format string, args ...interface{}) *ValidationBuilder {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
	return v
}

// Build returns the validation error or nil if no errors
func (v *ValidationBuilder) Build() error {
	if len(v.errors) == 0 {
		return nil
	}
	return &ValidationError{Errors: v.errors}
}
