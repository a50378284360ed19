// Package device provides access to a switch's running configuration and
// CLI command execution. A Node is the only thing the interface layer talks
// to; the concrete nodes differ in where the configuration lives (memory, a
// file, Redis, or a live EOS device over SSH).
package device

import (
	"context"
)

// Encoding selects the output format of an enable-mode command.
type Encoding string

const (
	EncodingText Encoding = "text"
	EncodingJSON Encoding = "json"
)

// Node is a connection to a single switch.
type Node interface {
	// Name identifies the device in logs and errors.
	Name() string

	// RunningConfig returns the full running configuration as text.
	RunningConfig(ctx context.Context) (string, error)

	// Configure applies commands in configuration mode as one batch.
	// Either every command is accepted or none is; a rejected batch
	// returns a *util.CommandError.
	Configure(ctx context.Context, commands ...string) error

	// Enable runs a single enable-mode command and returns its output.
	Enable(ctx context.Context, command string, enc Encoding) (string, error)
}

// Closer is implemented by nodes holding a network connection.
type Closer interface {
	Close() error
}

// Close releases n's connection if it has one.
func Close(n Node) error {
	if c, ok := n.(Closer); ok {
		return c.Close()
	}
	return nil
}
