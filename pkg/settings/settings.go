// Package settings manages persistent user settings for the ifcfg CLI.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/newtron-network/ifcfg/pkg/util"
)

// Settings holds persistent user preferences
type Settings struct {
	// DefaultDevice is the device to use when -d is not specified
	DefaultDevice string `json:"default_device,omitempty"`

	// Inventory overrides the default inventory file
	Inventory string `json:"inventory,omitempty"`

	// AuditLog overrides the default audit log file
	AuditLog string `json:"audit_log,omitempty"`
}

// Keys lists the setting names accepted by Get and Set.
func Keys() []string {
	keys := []string{"default_device", "inventory", "audit_log"}
	sort.Strings(keys)
	return keys
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ifcfg")
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	dir := baseDir()
	if dir == "" {
		return "ifcfg_settings.json"
	}
	return filepath.Join(dir, "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// empty settings.
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(DefaultSettingsPath())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetDevice sets the default device
func (s *Settings) SetDevice(device string) {
	s.DefaultDevice = device
}

// GetInventory returns the inventory path (with fallback)
func (s *Settings) GetInventory() string {
	if s.Inventory != "" {
		return s.Inventory
	}
	if dir := baseDir(); dir != "" {
		return filepath.Join(dir, "inventory.yaml")
	}
	return "inventory.yaml"
}

// GetAuditLog returns the audit log path (with fallback)
func (s *Settings) GetAuditLog() string {
	if s.AuditLog != "" {
		return s.AuditLog
	}
	if dir := baseDir(); dir != "" {
		return filepath.Join(dir, "audit.log")
	}
	return "ifcfg_audit.log"
}

// Get returns a setting by its JSON name.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "default_device":
		return s.DefaultDevice, nil
	case "inventory":
		return s.GetInventory(), nil
	case "audit_log":
		return s.GetAuditLog(), nil
	}
	return "", fmt.Errorf("setting %q: %w", key, util.ErrNotFound)
}

// Set updates a setting by its JSON name.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "default_device":
		s.SetDevice(value)
	case "inventory":
		s.Inventory = value
	case "audit_log":
		s.AuditLog = value
	default:
		return fmt.Errorf("setting %q: %w", key, util.ErrNotFound)
	}
	return nil
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
