package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iburimskiy/ambience/internal/theme"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Info panel and controls card geometry
	PanelX         = 24
	PanelY         = 24
	PanelWidth     = 380
	PanelHeight    = 220
	PanelHeader    = 36
	ControlsWidth  = 380
	ControlsHeight = 250
	ControlsMargin = 24
	SliderHeight   = 12
	KnobRadius     = 8

	// Enter button on the welcome overlay
	ButtonWidth  = 160
	ButtonHeight = 44
)

// StartupPolicy selects the theme shown at launch.
type StartupPolicy string

const (
	// StartupFixed always starts on StartupTheme, ignoring the stored preference.
	StartupFixed StartupPolicy = "fixed"
	// StartupPersisted starts on the stored preference when there is one.
	StartupPersisted StartupPolicy = "persisted"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Window   WindowConfig
	Audio    AudioConfig
	Prefs    PrefsConfig
	Startup  StartupConfig
	LogLevel string
}

// WindowConfig sizes the initial window.
type WindowConfig struct {
	Width  int
	Height int
}

// AudioConfig locates the ambient assets.
type AudioConfig struct {
	AssetDir      string
	SynthFallback bool
}

// PrefsConfig locates the preference database. An empty path keeps the
// preference in memory only.
type PrefsConfig struct {
	Path string
}

// StartupConfig decides the first theme.
type StartupConfig struct {
	Policy StartupPolicy
	Theme  theme.ID
}

// Load inspects the environment and builds a Config value.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{}

	cfg.Window = WindowConfig{
		Width:  parseIntWithDefault(getenv("AMBIENCE_WINDOW_WIDTH"), WindowWidth),
		Height: parseIntWithDefault(getenv("AMBIENCE_WINDOW_HEIGHT"), WindowHeight),
	}

	cfg.Audio = AudioConfig{
		AssetDir:      firstNonEmpty(getenv("AMBIENCE_ASSET_DIR"), "assets"),
		SynthFallback: parseBoolWithDefault(getenv("AMBIENCE_SYNTH_FALLBACK"), true),
	}

	cfg.Prefs = PrefsConfig{Path: firstNonEmpty(getenv("AMBIENCE_PREFS_DB"), defaultPrefsPath())}

	cfg.Startup = StartupConfig{
		Policy: StartupPolicy(firstNonEmpty(getenv("AMBIENCE_STARTUP"), string(StartupFixed))),
		Theme:  theme.ID(firstNonEmpty(getenv("AMBIENCE_STARTUP_THEME"), string(theme.Default))),
	}

	cfg.LogLevel = firstNonEmpty(getenv("AMBIENCE_LOG_LEVEL"), "info")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks and normalizes values that may also be set from flags.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	c.Startup.Policy = StartupPolicy(strings.ToLower(strings.TrimSpace(string(c.Startup.Policy))))
	switch c.Startup.Policy {
	case StartupFixed, StartupPersisted:
	default:
		return fmt.Errorf("unknown startup policy: %s", c.Startup.Policy)
	}
	id, ok := theme.Normalize(string(c.Startup.Theme))
	if !ok {
		return fmt.Errorf("unknown startup theme: %s", c.Startup.Theme)
	}
	c.Startup.Theme = id
	if isMemory(c.Prefs.Path) {
		c.Prefs.Path = ""
	}
	if strings.TrimSpace(c.Audio.AssetDir) == "" {
		return fmt.Errorf("asset directory must not be empty")
	}
	return nil
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ambience-prefs.db"
	}
	return filepath.Join(dir, "ambience", "prefs.db")
}

func isMemory(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "memory", "off", "none":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}
