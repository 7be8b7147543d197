// Package settings provides local settings file management.
// Settings are stored in settings.json in the program directory and hold
// machine-local overrides that should not travel with the user config.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const (
	// SettingsFileName is the name of the settings file
	SettingsFileName = "settings.json"
)

// LocalSettings represents settings stored in the program directory
type LocalSettings struct {
	// DeviceClass overrides device detection: "desktop", "mobile" or "" for auto
	DeviceClass string `json:"device_class,omitempty"`
	// PanMode selects the pan gesture on touch devices: "single-finger" or "two-finger"
	PanMode string `json:"pan_mode,omitempty"`
}

// Manager manages the local settings file
type Manager struct {
	filePath string
	settings *LocalSettings
	mu       sync.RWMutex
}

// NewManager creates a new settings manager.
// It looks for settings.json in the program's directory.
func NewManager() (*Manager, error) {
	exePath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	filePath := filepath.Join(filepath.Dir(exePath), SettingsFileName)

	m := &Manager{
		filePath: filePath,
		settings: &LocalSettings{},
	}
	_ = m.Load() // Ignore error if file doesn't exist

	return m, nil
}

// NewManagerWithPath creates a new settings manager with a custom path.
// Useful for testing.
func NewManagerWithPath(filePath string) *Manager {
	m := &Manager{
		filePath: filePath,
		settings: &LocalSettings{},
	}
	_ = m.Load()
	return m
}

// Load loads settings from the file
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.filePath)
	if err != nil {
		return err
	}

	settings := &LocalSettings{}
	if err := json.Unmarshal(data, settings); err != nil {
		return err
	}

	m.settings = settings
	return nil
}

// Save writes settings to the file
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m.settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.filePath, data, 0644)
}

// DeviceClass returns the device class override, or "" when detection should apply
func (m *Manager) DeviceClass() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.DeviceClass
}

// SetDeviceClass sets the device class override and persists it
func (m *Manager) SetDeviceClass(class string) error {
	m.mu.Lock()
	m.settings.DeviceClass = class
	m.mu.Unlock()
	return m.Save()
}

// PanMode returns the configured pan gesture mode
func (m *Manager) PanMode() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings.PanMode
}

// SetPanMode sets the pan gesture mode and persists it
func (m *Manager) SetPanMode(mode string) error {
	m.mu.Lock()
	m.settings.PanMode = mode
	m.mu.Unlock()
	return m.Save()
}
