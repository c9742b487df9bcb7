package config

import (
	"os"
	"path/filepath"
)

// RitmoHome returns the ritmo home directory, honoring $RITMO_HOME
func RitmoHome() string {
	if home := os.Getenv("RITMO_HOME"); home != "" {
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".ritmo" // Fallback to relative path
	}
	return filepath.Join(homeDir, ".ritmo")
}

// GetDBPath returns the path to the sqlite database
func GetDBPath() string {
	return filepath.Join(RitmoHome(), "ritmo.db")
}

// GetSettingsPath returns the path to the settings file
func GetSettingsPath() string {
	return filepath.Join(RitmoHome(), "settings.json")
}

// GetSessionTokenPath returns the path to the identity session token
func GetSessionTokenPath() string {
	return filepath.Join(RitmoHome(), "session.token")
}

// GetProfilePath returns the path to the local profile file
func GetProfilePath() string {
	return filepath.Join(RitmoHome(), "profile.json")
}

// ExpandPath expands a leading ~ to the user's home directory
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}
