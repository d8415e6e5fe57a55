package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides every other config location when set
const EnvConfigPath = "VAPT_CONFIG_PATH"

var (
	ErrUnknownSetting = errors.New("unknown setting")
	ErrInvalidValue   = errors.New("invalid setting value")
)

// Config represents the user configuration
type Config struct {
	Editor     EditorConfig     `yaml:"editor"`
	AptInstall AptInstallConfig `yaml:"apt_install"`
}

// EditorConfig holds interface preferences
type EditorConfig struct {
	InstallsAutocompletion    bool   `yaml:"installs_autocompletion"`
	UpgradesSelectedByDefault bool   `yaml:"upgrades_selected_by_default"`
	LocalizationFile          string `yaml:"localization_file,omitempty"` // empty means the fallback language
}

// AptInstallConfig holds the repair flags passed to apt-get install
type AptInstallConfig struct {
	FixMissing bool `yaml:"fix_missing"`
	FixBroken  bool `yaml:"fix_broken"`
	FixPolicy  bool `yaml:"fix_policy"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			InstallsAutocompletion:    true,
			UpgradesSelectedByDefault: true,
		},
		AptInstall: AptInstallConfig{
			FixMissing: true,
			FixBroken:  true,
			FixPolicy:  false,
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. $VAPT_CONFIG_PATH (exclusive when set)
// 2. $XDG_CONFIG_HOME/vapt.yml, defaulting to ~/.config/vapt.yml
// 3. ~/.vapt/config.yml (legacy fallback)
func ConfigPaths() ([]string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return []string{env}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "vapt.yml"),
		filepath.Join(home, ".vapt", "config.yml"),
	}, nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return paths[0], nil
}

// LoadFrom reads configuration from a specific file path.
// A missing file is created with the defaults; keys absent from an
// existing file keep their default values.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if saveErr := cfg.SaveTo(path); saveErr != nil {
				return nil, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg, nil
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// setting binds a "section/key" path to a field of Config
type setting struct {
	get func(c *Config) string
	set func(c *Config, value string) error
}

func boolSetting(field func(c *Config) *bool) setting {
	return setting{
		get: func(c *Config) string {
			return strconv.FormatBool(*field(c))
		},
		set: func(c *Config, value string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, value)
			}
			*field(c) = b
			return nil
		},
	}
}

var settings = map[string]setting{
	"editor/installs_autocompletion": boolSetting(func(c *Config) *bool {
		return &c.Editor.InstallsAutocompletion
	}),
	"editor/upgrades_selected_by_default": boolSetting(func(c *Config) *bool {
		return &c.Editor.UpgradesSelectedByDefault
	}),
	"editor/localization_file": {
		get: func(c *Config) string { return c.Editor.LocalizationFile },
		set: func(c *Config, value string) error {
			c.Editor.LocalizationFile = strings.TrimSpace(value)
			return nil
		},
	},
	"apt_install/fix_missing": boolSetting(func(c *Config) *bool {
		return &c.AptInstall.FixMissing
	}),
	"apt_install/fix_broken": boolSetting(func(c *Config) *bool {
		return &c.AptInstall.FixBroken
	}),
	"apt_install/fix_policy": boolSetting(func(c *Config) *bool {
		return &c.AptInstall.FixPolicy
	}),
}

// Keys returns every settable "section/key" path, sorted
func Keys() []string {
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a "section/key" setting as text
func (c *Config) Get(key string) (string, error) {
	s, ok := settings[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return s.get(c), nil
}

// Set parses and assigns a "section/key" setting
func (c *Config) Set(key, value string) error {
	s, ok := settings[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return s.set(c, value)
}

// Store owns the configuration for the lifetime of the process and writes
// the whole file back on every change
type Store struct {
	mu   sync.Mutex
	path string
	cfg  *Config
}

// NewStore loads the configuration at path into a Store
func NewStore(path string) (*Store, error) {
	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, cfg: cfg}, nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current configuration
func (s *Store) Snapshot() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.cfg
}

// Set changes one setting and saves the file before returning.
// The in-memory value is left untouched when the save fails.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.cfg
	if err := next.Set(key, value); err != nil {
		return err
	}
	if err := next.SaveTo(s.path); err != nil {
		return err
	}
	*s.cfg = next
	return nil
}

// Toggle flips a boolean setting and saves the file
func (s *Store) Toggle(key string) (bool, error) {
	current, err := s.get(key)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(current)
	if err != nil {
		return false, fmt.Errorf("%w: %s is not a boolean setting", ErrInvalidValue, key)
	}
	if err := s.Set(key, strconv.FormatBool(!b)); err != nil {
		return b, err
	}
	return !b, nil
}

func (s *Store) get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Get(key)
}
