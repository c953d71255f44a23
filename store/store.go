package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const appDir = "seat-booking-cli"

// Preferences are UI settings remembered between runs. Seats and bookings
// are never written here.
type Preferences struct {
	ShowPrices bool `json:"show_prices"`
}

func DefaultPreferences() Preferences {
	return Preferences{ShowPrices: true}
}

func LoadPreferences() (Preferences, error) {
	path, err := configPath("preferences.json")
	if err != nil {
		return DefaultPreferences(), err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPreferences(), nil
		}
		return DefaultPreferences(), err
	}

	prefs := DefaultPreferences()
	if err := json.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), errors.New("invalid preferences format")
	}
	return prefs, nil
}

func SavePreferences(prefs Preferences) error {
	path, err := configPath("preferences.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir, name), nil
}
