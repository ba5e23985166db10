// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/nib/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Editor EditorConfig  `toml:"editor"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	Flavor          string `toml:"flavor"`
	Backend         string `toml:"backend"`
	Title           string `toml:"title"`
	EscapeTimeoutMs int    `toml:"escape_timeout_ms"`
	UndoDepth       int    `toml:"undo_depth"`
	CursorDepth     int    `toml:"cursor_depth"`
	SystemClipboard bool   `toml:"system_clipboard"`
	ReadOnly        bool   `toml:"read_only"`
	OpenEnabled     bool   `toml:"open_enabled"`
	ThemeFile       string `toml:"theme_file"`
}

// EscapeTimeout returns the escape disambiguation wait as a duration.
func (e EditorConfig) EscapeTimeout() time.Duration {
	return time.Duration(e.EscapeTimeoutMs) * time.Millisecond
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			Flavor:          DefaultFlavor,
			Backend:         BackendANSI,
			Title:           DefaultTitle,
			EscapeTimeoutMs: int(DefaultEscapeTimeout / time.Millisecond),
			UndoDepth:       DefaultUndoDepth,
			CursorDepth:     DefaultCursorDepth,
			SystemClipboard: SystemClipboard,
			OpenEnabled:     true,
		},
	}
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
func loadFromFile(filePath string, cfg *Config) error {
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		// Logger is not up yet during the first load; this only lands when reloaded.
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, undecoded)
	}
	return nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Editor.Flavor == "" {
		c.Editor.Flavor = defaults.Editor.Flavor
	}
	c.Editor.Backend = strings.ToLower(c.Editor.Backend)
	if c.Editor.Backend != BackendANSI && c.Editor.Backend != BackendTcell {
		c.Editor.Backend = defaults.Editor.Backend
	}
	if c.Editor.Title == "" {
		c.Editor.Title = defaults.Editor.Title
	}
	if c.Editor.EscapeTimeoutMs <= 0 {
		c.Editor.EscapeTimeoutMs = defaults.Editor.EscapeTimeoutMs
	}
	if c.Editor.UndoDepth <= 0 {
		c.Editor.UndoDepth = defaults.Editor.UndoDepth
	}
	if c.Editor.CursorDepth <= 0 {
		c.Editor.CursorDepth = defaults.Editor.CursorDepth
	}
}

// DefaultPath returns the per-user config file location, or "" if unknown.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// Load builds a Config from defaults, the file at path (DefaultPath when
// empty) and any flags that were set, in that order.
func Load(configFilePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := configFilePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var err error
	if effectivePath != "" {
		err = loadFromFile(effectivePath, cfg)
	}
	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, err
}

// LoadConfig runs Load once and remembers the result for Get.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
