package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/Use-Tusk/tusk-sheet/internal/log"
)

var (
	k = koanf.New(".")

	cachedConfig    *Config
	cachedConfigErr error
	loadMutex       sync.Mutex
	hasLoaded       bool
	loadedFile      string
)

const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

type Config struct {
	Layout LayoutConfig `koanf:"layout"`
	Mouse  MouseConfig  `koanf:"mouse"`
	UI     UIConfig     `koanf:"ui"`
}

type LayoutConfig struct {
	Direction string `koanf:"direction"` // "ltr" or "rtl"
	Banner    string `koanf:"banner"`    // overrides the sheet banner when set
}

type MouseConfig struct {
	AllMotion *bool `koanf:"all_motion"`
}

type UIConfig struct {
	DarkMode  *bool  `koanf:"dark_mode"`
	MinWidth  int    `koanf:"min_width"`
	MinHeight int    `koanf:"min_height"`
	DebugLog  string `koanf:"debug_log"`
}

// IsRTL reports whether columns flow right to left.
func (cfg *Config) IsRTL() bool {
	return cfg.Layout.Direction == DirectionRTL
}

// Load loads the config file and applies environment overrides.
// This function is idempotent - calling it multiple times will only load once.
func Load(configFile string) error {
	loadMutex.Lock()
	defer loadMutex.Unlock()

	if hasLoaded {
		log.Debug("Config already loaded, skipping reload")
		return nil
	}

	if configFile == "" {
		configFile = findConfigFile()
	}

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return fmt.Errorf("error loading config file: %w", err)
		}
		loadedFile = configFile
		log.Debug("Config file loaded", "file", configFile)
	} else {
		log.Debug("No config file found, using defaults and environment variables")
	}

	envOverrides := map[string]string{
		"TUSK_SHEET_DIRECTION":          "layout.direction",
		"TUSK_SHEET_BANNER":             "layout.banner",
		"TUSK_SHEET_MIN_TERMINAL_WIDTH": "ui.min_width",
		"TUSK_SHEET_DEBUG_LOG":          "ui.debug_log",
	}

	for envKey, configKey := range envOverrides {
		if val := os.Getenv(envKey); val != "" {
			if err := k.Set(configKey, val); err != nil {
				return fmt.Errorf("error setting %s from env: %w", envKey, err)
			}
		}
	}

	hasLoaded = true
	log.Debug("All loaded config", "config", k.All())
	return nil
}

// Get returns the cached config. If not loaded yet, loads from default location.
func Get() (*Config, error) {
	if err := Load(""); err != nil {
		return nil, err
	}

	loadMutex.Lock()
	defer loadMutex.Unlock()

	if cachedConfig != nil {
		return cachedConfig, cachedConfigErr
	}

	cachedConfig, cachedConfigErr = parseAndValidate()
	return cachedConfig, cachedConfigErr
}

// LoadedFile returns the config file in use, or "" when running on defaults.
func LoadedFile() string {
	loadMutex.Lock()
	defer loadMutex.Unlock()
	return loadedFile
}

// parseAndValidate parses the loaded koanf data into a Config struct and validates it
func parseAndValidate() (*Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Layout.Direction = strings.ToLower(strings.TrimSpace(cfg.Layout.Direction))
	if cfg.Layout.Direction == "" {
		cfg.Layout.Direction = DirectionLTR
	}
	if cfg.Mouse.AllMotion == nil {
		allMotion := true
		cfg.Mouse.AllMotion = &allMotion
	}
	if cfg.UI.MinWidth == 0 {
		cfg.UI.MinWidth = 40
	}
	if cfg.UI.MinHeight == 0 {
		cfg.UI.MinHeight = 8
	}
	if cfg.UI.DebugLog == "" {
		cfg.UI.DebugLog = filepath.Join(os.TempDir(), "tusk-sheet-debug.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) Validate() error {
	var errs []error

	if cfg.Layout.Direction != DirectionLTR && cfg.Layout.Direction != DirectionRTL {
		errs = append(errs, fmt.Errorf("layout.direction must be 'ltr' or 'rtl', got %q", cfg.Layout.Direction))
	}

	if cfg.UI.MinWidth < 0 {
		errs = append(errs, fmt.Errorf("ui.min_width must not be negative, got %d", cfg.UI.MinWidth))
	}

	if cfg.UI.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("ui.min_height must not be negative, got %d", cfg.UI.MinHeight))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ValidationResult contains detailed validation results for config files.
type ValidationResult struct {
	Valid       bool     `json:"valid"`
	Errors      []string `json:"errors,omitempty"`
	Warnings    []string `json:"warnings,omitempty"`
	UnknownKeys []string `json:"unknown_keys,omitempty"`
}

// ValidateConfigFile loads configPath fresh and reports parse errors,
// value errors and unknown keys (with typo suggestions).
func ValidateConfigFile(configPath string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Config file not found: %s", configPath))
		return result
	}

	Invalidate()
	if err := Load(configPath); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to parse config: %s", err))
		return result
	}

	result.UnknownKeys = CheckUnknownKeys()
	for _, key := range result.UnknownKeys {
		if suggestion := SuggestKey(key); suggestion != "" {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown key '%s' - did you mean '%s'?", key, suggestion))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown key '%s' will be ignored", key))
		}
	}

	if _, err := Get(); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
	}

	return result
}

// CheckUnknownKeys compares loaded config keys against the valid schema.
// Returns a list of keys that don't match any known config field.
func CheckUnknownKeys() []string {
	validSet := make(map[string]bool)
	for _, key := range validKeys() {
		validSet[key] = true
	}

	var unknown []string
	for _, key := range k.Keys() {
		if !validSet[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// SuggestKey returns the closest known key to an unknown one, or "" when
// nothing is close enough to be a typo.
func SuggestKey(unknownKey string) string {
	best := ""
	bestDist := -1
	for _, key := range validKeys() {
		d := levenshtein.ComputeDistance(unknownKey, key)
		if bestDist < 0 || d < bestDist {
			best, bestDist = key, d
		}
	}
	if bestDist < 0 || bestDist > max(2, len(unknownKey)/4) {
		return ""
	}
	return best
}

func validKeys() []string {
	keys := getValidKeys(reflect.TypeOf(Config{}), "")
	// Parent paths are valid too (e.g. "layout" for "layout.direction")
	var out []string
	seen := make(map[string]bool)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		for i := 1; i <= len(parts); i++ {
			p := strings.Join(parts[:i], ".")
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// getValidKeys extracts all valid config key paths from struct tags recursively.
func getValidKeys(t reflect.Type, prefix string) []string {
	var keys []string

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return keys
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("koanf")
		if tag == "" || tag == "-" {
			continue
		}

		fullKey := tag
		if prefix != "" {
			fullKey = prefix + "." + tag
		}

		keys = append(keys, fullKey)

		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}
		if fieldType.Kind() == reflect.Struct {
			keys = append(keys, getValidKeys(fieldType, fullKey)...)
		}
	}

	return keys
}

func findConfigFile() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	possiblePaths := []string{
		".tusk-sheet/config.yaml",
		".tusk-sheet/config.yml",
		"tusk-sheet.yaml",
		"tusk-sheet.yml",
	}

	// Traverse upwards, starting from current directory
	currentDir := wd
	for {
		for _, relPath := range possiblePaths {
			fullPath := filepath.Join(currentDir, relPath)
			if _, err := os.Stat(fullPath); err == nil {
				return fullPath
			}
		}

		parent := filepath.Dir(currentDir)

		if parent == currentDir || parent == "." {
			break
		}

		currentDir = parent
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalConfig := filepath.Join(homeDir, ".tusk-sheet", "config.yaml")
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig
		}
	}

	return ""
}

// Invalidate clears all cached config state, forcing a reload on next Get().
func Invalidate() {
	loadMutex.Lock()
	defer loadMutex.Unlock()
	hasLoaded = false
	loadedFile = ""
	cachedConfig = nil
	cachedConfigErr = nil
	k = koanf.New(".")
}

// ResetForTesting resets all global config state.
func ResetForTesting() {
	Invalidate()
}
