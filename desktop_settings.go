package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DesktopConfig represents the [desktop] section of config.toml.
type DesktopConfig struct {
	Theme string `toml:"theme"` // "dark", "light", or "auto"
}

// DesktopSettingsManager manages desktop-specific settings in config.toml.
// The file is shared with the sidecar's own configuration, so unknown
// sections are preserved on save.
type DesktopSettingsManager struct {
	configPath string
}

// NewDesktopSettingsManager creates a manager over the per-user config file.
func NewDesktopSettingsManager() *DesktopSettingsManager {
	dir, err := userConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return &DesktopSettingsManager{
		configPath: filepath.Join(dir, appConfigDir, "config.toml"),
	}
}

// Path returns the location of the config file.
func (dsm *DesktopSettingsManager) Path() string {
	return dsm.configPath
}

// fullConfig covers the part of config.toml the shell owns.
type fullConfig struct {
	Desktop DesktopConfig `toml:"desktop"`
}

// loadDesktopSettings loads the desktop section from config.toml.
func (dsm *DesktopSettingsManager) loadDesktopSettings() (*DesktopConfig, error) {
	defaults := &DesktopConfig{Theme: "dark"}

	data, err := os.ReadFile(dsm.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return nil, err
	}

	var config fullConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return defaults, nil // Return defaults on parse error
	}

	switch config.Desktop.Theme {
	case "dark", "light", "auto":
		// Valid
	default:
		config.Desktop.Theme = "dark"
	}

	return &config.Desktop, nil
}

// saveDesktopSettings saves the desktop config, preserving other sections.
func (dsm *DesktopSettingsManager) saveDesktopSettings(desktop *DesktopConfig) error {
	existingData, _ := os.ReadFile(dsm.configPath)

	var existingConfig map[string]interface{}
	if len(existingData) > 0 {
		if err := toml.Unmarshal(existingData, &existingConfig); err != nil {
			existingConfig = make(map[string]interface{})
		}
	} else {
		existingConfig = make(map[string]interface{})
	}

	existingConfig["desktop"] = map[string]interface{}{
		"theme": desktop.Theme,
	}

	if err := os.MkdirAll(filepath.Dir(dsm.configPath), 0700); err != nil {
		return err
	}

	var buf bytes.Buffer
	if len(existingData) == 0 {
		buf.WriteString("# Pluto Duck Configuration\n\n")
	}
	if err := toml.NewEncoder(&buf).Encode(existingConfig); err != nil {
		return err
	}

	return os.WriteFile(dsm.configPath, buf.Bytes(), 0600)
}

// GetTheme returns the current desktop theme preference.
func (dsm *DesktopSettingsManager) GetTheme() (string, error) {
	config, err := dsm.loadDesktopSettings()
	if err != nil {
		return "dark", err
	}
	return config.Theme, nil
}

// SetTheme sets the desktop theme preference. Invalid values fall back to
// "dark".
func (dsm *DesktopSettingsManager) SetTheme(theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	switch theme {
	case "dark", "light", "auto":
		// Valid
	default:
		theme = "dark"
	}

	config, err := dsm.loadDesktopSettings()
	if err != nil {
		config = &DesktopConfig{}
	}

	config.Theme = theme
	return dsm.saveDesktopSettings(config)
}
