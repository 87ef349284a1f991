// Package cliconfig holds per-user preferences that are not tied to a
// project: theme override, recently opened sheets and the column widths the
// user last dragged each sheet to.
package cliconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

const maxRecentSheets = 10

var (
	cachedConfig *Config
	configMutex  sync.Mutex

	// pathOverride redirects the config file, used by tests.
	pathOverride string
)

// Config represents the user-level configuration stored at
// ~/.config/tusk-sheet/cli.json
type Config struct {
	DarkMode *bool `json:"dark_mode,omitempty"`

	// RecentSheets holds absolute paths, most recent first.
	RecentSheets []string `json:"recent_sheets,omitempty"`

	// Widths maps an absolute sheet path to its last width vector.
	Widths map[string][]float64 `json:"widths,omitempty"`
}

// GetPath returns the path to the CLI config file
func GetPath() string {
	if pathOverride != "" {
		return pathOverride
	}
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		cfgDir = os.Getenv("HOME")
	}
	return filepath.Join(cfgDir, "tusk-sheet", "cli.json")
}

// Load loads the CLI config from disk. A missing file yields defaults.
func Load() (*Config, error) {
	configMutex.Lock()
	defer configMutex.Unlock()

	if cachedConfig != nil {
		return cachedConfig, nil
	}

	data, err := os.ReadFile(GetPath())
	if err != nil {
		if os.IsNotExist(err) {
			cachedConfig = &Config{}
			return cachedConfig, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cachedConfig = &cfg
	return cachedConfig, nil
}

// Save persists the config to disk
func (c *Config) Save() error {
	configMutex.Lock()
	defer configMutex.Unlock()

	path := GetPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}

	cachedConfig = c
	return nil
}

// RememberSheet moves path to the front of the recent list.
func (c *Config) RememberSheet(path string) {
	path = absPath(path)
	c.RecentSheets = slices.DeleteFunc(c.RecentSheets, func(p string) bool { return p == path })
	c.RecentSheets = append([]string{path}, c.RecentSheets...)
	if len(c.RecentSheets) > maxRecentSheets {
		c.RecentSheets = c.RecentSheets[:maxRecentSheets]
	}
}

// SavedWidths returns a copy of the widths stored for path, or nil.
func (c *Config) SavedWidths(path string) []float64 {
	w, ok := c.Widths[absPath(path)]
	if !ok {
		return nil
	}
	return slices.Clone(w)
}

func (c *Config) SetSavedWidths(path string, widths []float64) {
	if c.Widths == nil {
		c.Widths = make(map[string][]float64)
	}
	c.Widths[absPath(path)] = slices.Clone(widths)
}

// ForgetWidths drops the stored widths for path.
func (c *Config) ForgetWidths(path string) {
	delete(c.Widths, absPath(path))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Invalidate clears the cached config, forcing a reload on next Load()
func Invalidate() {
	configMutex.Lock()
	defer configMutex.Unlock()
	cachedConfig = nil
}

// SetPathForTesting points the package at path and clears the cache.
func SetPathForTesting(path string) {
	configMutex.Lock()
	defer configMutex.Unlock()
	pathOverride = path
	cachedConfig = nil
}
