package tui

import (
	"encoding/json"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// Prefs holds viewer preferences that persist across sessions.
type Prefs struct {
	// HidePayloads masks decoded text in the detail pane.
	HidePayloads bool `json:"hide_payloads"`
}

// DefaultPrefs returns the default preferences.
func DefaultPrefs() Prefs {
	return Prefs{HidePayloads: true}
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".zerowidth", "tui_prefs.json"), nil
}

// LoadPrefs loads preferences from disk, returning defaults if not found.
func LoadPrefs() Prefs {
	prefs := DefaultPrefs()

	path, err := prefsPath()
	if err != nil {
		return prefs
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}
	_ = json.Unmarshal(data, &prefs) //nolint:errcheck // fall back to defaults
	return prefs
}

// SavePrefs persists preferences to disk.
func SavePrefs(prefs Prefs) error {
	path, err := prefsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// maskPayload keeps the first four runes of a decoded payload.
// Very short payloads are fully masked.
func maskPayload(s string) string {
	if utf8.RuneCountInString(s) <= 4 {
		return "***"
	}
	return string([]rune(s)[:4]) + "***"
}
