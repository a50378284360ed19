// Package audit records every configuration batch sent to a device.
package audit

import (
	"os/user"
	"strconv"
	"time"
)

// Event is one executed facade operation and the commands it sent.
type Event struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	User      string        `json:"user"`
	Device    string        `json:"device"`
	Interface string        `json:"interface,omitempty"`
	Operation string        `json:"operation"`
	Commands  []string      `json:"commands,omitempty"`
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// Filter selects events in Query. Zero fields match everything.
type Filter struct {
	Device      string
	Interface   string
	Operation   string
	Since       time.Time
	Until       time.Time
	FailureOnly bool

	// Limit keeps only the newest Limit matches.
	Limit int
}

// NewEvent starts an event for the current OS user.
func NewEvent(device, intf, operation string) *Event {
	return &Event{
		ID:        strconv.FormatInt(time.Now().UnixNano(), 36),
		Timestamp: time.Now(),
		User:      currentUser(),
		Device:    device,
		Interface: intf,
		Operation: operation,
	}
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}

// WithCommands sets the commands sent to the device
func (e *Event) WithCommands(cmds []string) *Event {
	e.Commands = cmds
	return e
}

// Finish stamps the duration since the event started and records the
// outcome of the operation.
func (e *Event) Finish(err error) *Event {
	e.Duration = time.Since(e.Timestamp)
	e.Success = err == nil
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

func (e *Event) matches(f Filter) bool {
	switch {
	case f.Device != "" && e.Device != f.Device:
		return false
	case f.Interface != "" && e.Interface != f.Interface:
		return false
	case f.Operation != "" && e.Operation != f.Operation:
		return false
	case !f.Since.IsZero() && e.Timestamp.Before(f.Since):
		return false
	case !f.Until.IsZero() && e.Timestamp.After(f.Until):
		return false
	case f.FailureOnly && e.Success:
		return false
	}
	return true
}
