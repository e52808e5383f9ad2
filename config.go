package bff

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigTemplate is written to the configuration path when no file
// exists there yet. Replace the placeholder values after the first run.
const DefaultConfigTemplate = `database:
  host: 127.0.0.1
  name: porgs
  port: 3306
  pwd: bacca
  user: Chew
env: prod
imports:
  star_wars:
    - ewok
    - bantha
`

// DefaultConfigPath returns the location of the per-user configuration file.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "bff", "config.yml"), nil
}

// Config loads settings from a YAML configuration file and serves them to
// the rest of the application.
type Config struct {
	mu       sync.RWMutex
	v        *viper.Viper
	settings map[string]any
	path     string
	template string
}

// NewConfig creates a loader for the user configuration file.
//
// When to use NewConfig:
//   - Tools that need credentials or environment names without hardcoding them
//   - Long-running jobs that should pick up configuration edits while running
//
// The file is created from DefaultConfigTemplate on first use, so a fresh
// machine starts from a working skeleton instead of a missing-file error.
// Keys are addressed with dots for nested sections, as in "database.user".
//
// Example:
//
//	config := bff.NewConfig()
//	if err := config.Load(); err != nil {
//		log.Fatal(err)
//	}
//
//	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
//		config.GetString("database.user"),
//		config.GetString("database.pwd"),
//		config.GetString("database.host"),
//		config.GetInt("database.port"),
//		config.GetString("database.name"))
//
// Returns a Config reading from DefaultConfigPath. Use WithPath or
// WithTemplate to override the defaults before calling Load.
func NewConfig() *Config {
	return &Config{
		v:        viper.New(),
		template: DefaultConfigTemplate,
	}
}

// WithPath sets the configuration file location instead of DefaultConfigPath.
func (c *Config) WithPath(path string) *Config {
	c.path = path
	return c
}

// WithTemplate sets the content written when the configuration file is missing.
func (c *Config) WithTemplate(template string) *Config {
	c.template = template
	return c
}

// Load reads the configuration file, creating it from the template first
// when it does not exist.
func (c *Config) Load() error {
	path := c.path
	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		Logger().Infof("Configuration file does not exist, creating it from the default template.")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create configuration directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(c.template), 0o644); err != nil {
			return fmt.Errorf("write default configuration: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("stat configuration file: %w", err)
	}

	c.v.SetConfigFile(path)
	c.v.SetConfigType("yaml")
	if err := c.v.ReadInConfig(); err != nil {
		return fmt.Errorf("read configuration: %w", err)
	}

	c.mu.Lock()
	c.settings = c.v.AllSettings()
	c.mu.Unlock()
	c.path = path
	return nil
}

// Get returns the value stored under key, or nil when the key is absent.
// Absent keys are logged so typos surface during development.
func (c *Config) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := lookupSetting(c.settings, key)
	if !ok {
		Logger().Errorf("Configuration for %s does not exist.", key)
		return nil
	}
	return value
}

// GetString returns the value under key converted to a string.
func (c *Config) GetString(key string) string {
	return cast.ToString(c.Get(key))
}

// GetInt returns the value under key converted to an int.
func (c *Config) GetInt(key string) int {
	return cast.ToInt(c.Get(key))
}

// GetBool returns the value under key converted to a bool.
func (c *Config) GetBool(key string) bool {
	return cast.ToBool(c.Get(key))
}

// IsSet reports whether key holds a value.
func (c *Config) IsSet(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := lookupSetting(c.settings, key)
	return ok
}

// AllSettings returns every loaded setting, nested sections included.
func (c *Config) AllSettings() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.settings
}

// Unmarshal decodes the loaded settings into out, which must be a pointer
// to a struct or map.
func (c *Config) Unmarshal(out any) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v.Unmarshal(out)
}

// Watch reloads the settings whenever the configuration file changes on
// disk. The optional onChange callback runs after each reload.
func (c *Config) Watch(onChange func()) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		c.mu.Lock()
		c.settings = c.v.AllSettings()
		c.mu.Unlock()

		Logger().Infow("Configuration file reloaded.", "file", e.Name)
		if onChange != nil {
			onChange()
		}
	})
	c.v.WatchConfig()
}

// String renders the settings as YAML, mirroring the file on disk.
func (c *Config) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out, err := yaml.Marshal(c.settings)
	if err != nil {
		return fmt.Sprintf("%v", c.settings)
	}
	return string(out)
}

// lookupSetting resolves a dotted key against nested settings maps. Keys are
// matched case-insensitively, like the file loader stores them.
func lookupSetting(settings map[string]any, key string) (any, bool) {
	var current any = settings
	for _, part := range strings.Split(strings.ToLower(key), ".") {
		section, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		if current, ok = section[part]; !ok {
			return nil, false
		}
	}
	return current, true
}
