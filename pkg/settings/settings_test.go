package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/newtron-network/ifcfg/pkg/util"
)

func TestSettings_Defaults(t *testing.T) {
	t.Setenv("HOME", "/home/ops")
	s := &Settings{}

	if got := s.GetInventory(); got != "/home/ops/.ifcfg/inventory.yaml" {
		t.Errorf("GetInventory() default = %q", got)
	}
	if got := s.GetAuditLog(); got != "/home/ops/.ifcfg/audit.log" {
		t.Errorf("GetAuditLog() default = %q", got)
	}
	if s.DefaultDevice != "" {
		t.Errorf("DefaultDevice should be empty, got %q", s.DefaultDevice)
	}
}

func TestSettings_GetSet(t *testing.T) {
	s := &Settings{}

	tests := []struct {
		key   string
		value string
	}{
		{"default_device", "leaf1"},
		{"inventory", "/etc/ifcfg/inventory.yaml"},
		{"audit_log", "/var/log/ifcfg.log"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := s.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			got, err := s.Get(tt.key)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got != tt.value {
				t.Errorf("Get(%s) = %q, want %q", tt.key, got, tt.value)
			}
		})
	}

	if err := s.Set("colour", "blue"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Set(unknown) error = %v, want ErrNotFound", err)
	}
	if _, err := s.Get("colour"); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}
	if len(Keys()) != len(tests) {
		t.Errorf("Keys() = %v", Keys())
	}
}

func TestSettings_Clear(t *testing.T) {
	s := &Settings{
		DefaultDevice: "leaf1",
		Inventory:     "/path",
		AuditLog:      "/log",
	}

	s.Clear()

	if *s != (Settings{}) {
		t.Errorf("Clear() left %+v", s)
	}
}

func TestSettings_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	original := &Settings{
		DefaultDevice: "leaf1",
		Inventory:     "/etc/ifcfg/inventory.yaml",
		AuditLog:      "/var/log/ifcfg.log",
	}
	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if *loaded != *original {
		t.Errorf("LoadFrom() = %+v, want %+v", loaded, original)
	}
}

func TestSettings_LoadNonExistent(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("LoadFrom() non-existent should not error: %v", err)
	}
	if s == nil || *s != (Settings{}) {
		t.Errorf("LoadFrom() non-existent = %+v, want empty", s)
	}
}

func TestSettings_LoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("invalid json {"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("LoadFrom() with invalid JSON should error")
	}
}

func TestLoadFrom_ReadError(t *testing.T) {
	dirAsFile := filepath.Join(t.TempDir(), "settings.json")
	if err := os.Mkdir(dirAsFile, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(dirAsFile); err == nil {
		t.Error("LoadFrom() should error when path is a directory")
	}
}

func TestSaveTo_MkdirError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("blocking"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &Settings{DefaultDevice: "leaf1"}
	if err := s.SaveTo(filepath.Join(blocker, "subdir", "settings.json")); err == nil {
		t.Error("SaveTo() should fail when directory creation fails")
	}
}

func TestLoadSaveDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Load()
	if err != nil {
		t.Fatalf("Load() with no file: %v", err)
	}
	s.SetDevice("spine1")
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	expected := filepath.Join(home, ".ifcfg", "settings.json")
	if DefaultSettingsPath() != expected {
		t.Errorf("DefaultSettingsPath() = %q, want %q", DefaultSettingsPath(), expected)
	}
	if _, err := os.Stat(expected); err != nil {
		t.Fatalf("Save() did not create %s: %v", expected, err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.DefaultDevice != "spine1" {
		t.Errorf("DefaultDevice = %q, want spine1", loaded.DefaultDevice)
	}
}

func TestDefaultSettingsPath_NoHome(t *testing.T) {
	t.Setenv("HOME", "")

	if path := DefaultSettingsPath(); path != "ifcfg_settings.json" {
		t.Errorf("DefaultSettingsPath() with no HOME = %q", path)
	}
}
