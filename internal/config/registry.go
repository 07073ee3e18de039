package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "samsung-tv-remote"
	configFile = "config.yaml"
)

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// environment abstracts the process environment for directory lookups
type environment struct {
	goos    string
	getenv  func(string) string
	homeDir func() (string, error)
}

func currentEnvironment() environment {
	return environment{
		goos:    runtime.GOOS,
		getenv:  os.Getenv,
		homeDir: os.UserHomeDir,
	}
}

// GetConfigDir returns the OS-appropriate configuration directory for the application.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/samsung-tv-remote or $HOME/.config/samsung-tv-remote
//   - macOS: $HOME/.config/samsung-tv-remote
//   - Windows: %LOCALAPPDATA%\samsung-tv-remote
func GetConfigDir() (string, error) {
	return configDir(currentEnvironment())
}

func configDir(env environment) (string, error) {
	switch env.goos {
	case "windows":
		base, err := localAppData(env)
		if err != nil {
			return "", err
		}
		return filepath.Join(base, appName), nil

	case "darwin":
		homeDir, err := env.homeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil

	default:
		if xdg := env.getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		homeDir, err := env.homeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".config", appName), nil
	}
}

// GetCacheDir returns the OS-appropriate per-user cache directory:
//   - macOS: $HOME/Library/Caches
//   - Windows: %LOCALAPPDATA% or $HOME/AppData/Local
//   - others: $XDG_CACHE_HOME or $HOME/.cache
func GetCacheDir() (string, error) {
	return cacheDir(currentEnvironment())
}

func cacheDir(env environment) (string, error) {
	switch env.goos {
	case "windows":
		return localAppData(env)

	case "darwin":
		homeDir, err := env.homeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, "Library", "Caches"), nil

	default:
		if xdg := env.getenv("XDG_CACHE_HOME"); xdg != "" {
			return xdg, nil
		}
		homeDir, err := env.homeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(homeDir, ".cache"), nil
	}
}

func localAppData(env environment) (string, error) {
	if dir := env.getenv("LOCALAPPDATA"); dir != "" {
		return dir, nil
	}
	homeDir, err := env.homeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA not set): %w", err)
	}
	return filepath.Join(homeDir, "AppData", "Local"), nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// LoadRegistry loads the configuration registry from path.
// If the file doesn't exist, returns a new default registry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewRegistry(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// An empty file decodes to the zero value
	if registry.Version == 0 {
		registry.Version = 1
	}
	if registry.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", registry.Version)
	}

	if registry.Devices == nil {
		registry.Devices = make(map[string]*Device)
	}
	if registry.Preferences == nil {
		registry.Preferences = defaultPreferences()
	}

	return &registry, nil
}

// Save saves the registry to path.
// Performs an atomic write to prevent corruption on crash.
func (r *Registry) Save(path string) error {
	fileMutex.Lock()
	defer fileMutex.Unlock()

	// User-only permissions: the file holds pairing tokens
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# samsung-tv-remote configuration file
# Stores preferences and the pairing tokens issued by your TVs.
#
# Location: ` + path + `

`)
	data = append(header, data...)

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write temporary config file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save config file: %w", err)
	}

	return nil
}
