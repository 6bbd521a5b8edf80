package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/inkmark/inkmark/internal/watermark"
	"gopkg.in/yaml.v3"
)

const (
	DefaultProfileName = "Default"
	DefaultText        = "@Watermark"
	DefaultMargin      = 0.0
	DefaultRelHeight   = 0.02
	DefaultRelStroke   = 0.05
	DefaultOpacity     = 128
	DefaultAnchor      = "rb"
	DefaultOutDir      = "Watermarked"
	DefaultLogLevel    = "warn"
	DefaultQuality     = 85

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "INKMARK_CONFIG"
)

type Config struct {
	DefaultProfile string             `yaml:"default_profile"`
	LogLevel       string             `yaml:"log_level,omitempty"`
	Quality        int                `yaml:"quality,omitempty"`
	Profiles       map[string]Profile `yaml:"profiles"`
}

// Profile is the persisted form of a watermark profile.
type Profile struct {
	Text                string  `yaml:"text"`
	Font                string  `yaml:"font,omitempty"`
	Margin              float64 `yaml:"margin"`
	RelativeHeight      float64 `yaml:"relative_height"`
	RelativeStrokeWidth float64 `yaml:"relative_stroke_width"`
	Opacity             int     `yaml:"opacity"`
	Anchor              string  `yaml:"anchor"`
	AnchorX             float64 `yaml:"anchor_x"`
	AnchorY             float64 `yaml:"anchor_y"`
	OutDir              string  `yaml:"out_dir,omitempty"`
}

func DefaultProfileSettings() Profile {
	return Profile{
		Text:                DefaultText,
		Margin:              DefaultMargin,
		RelativeHeight:      DefaultRelHeight,
		RelativeStrokeWidth: DefaultRelStroke,
		Opacity:             DefaultOpacity,
		Anchor:              DefaultAnchor,
		AnchorX:             1,
		AnchorY:             1,
		OutDir:              DefaultOutDir,
	}
}

// Watermark converts the stored profile into the engine's record.
func (p Profile) Watermark() watermark.Profile {
	opacity := p.Opacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 255 {
		opacity = 255
	}
	return watermark.Profile{
		Text:                p.Text,
		FontPath:            p.Font,
		Margin:              p.Margin,
		RelativeHeight:      p.RelativeHeight,
		RelativeStrokeWidth: p.RelativeStrokeWidth,
		Opacity:             uint8(opacity),
		Anchor:              p.Anchor,
		AnchorX:             p.AnchorX,
		AnchorY:             p.AnchorY,
	}
}

func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "inkmark"), nil
}

func Path() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file, seeding it with a Default profile on first
// run so a fresh install works without any setup.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := &Config{
			DefaultProfile: DefaultProfileName,
			LogLevel:       DefaultLogLevel,
			Quality:        DefaultQuality,
			Profiles: map[string]Profile{
				DefaultProfileName: DefaultProfileSettings(),
			},
		}
		if err := cfg.Save(); err != nil {
			return nil, fmt.Errorf("failed to initialise config: %w", err)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]Profile)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.Quality == 0 {
		cfg.Quality = DefaultQuality
	}
	return cfg, nil
}

func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) Profile(name string) (Profile, bool) {
	p, ok := c.Profiles[name]
	return p, ok
}

// Active returns the default profile, falling back to hardcoded defaults
// when the configured name is missing from the store.
func (c *Config) Active() Profile {
	if p, ok := c.Profiles[c.DefaultProfile]; ok {
		return p
	}
	return DefaultProfileSettings()
}

func (c *Config) SetProfile(name string, p Profile) {
	if c.Profiles == nil {
		c.Profiles = make(map[string]Profile)
	}
	c.Profiles[name] = p
}

// DeleteProfiles removes the named profiles and reports how many existed.
func (c *Config) DeleteProfiles(names []string) int {
	removed := 0
	for _, name := range names {
		if _, ok := c.Profiles[name]; ok {
			delete(c.Profiles, name)
			removed++
		}
	}
	return removed
}

// SetDefault marks an existing profile as the default.
func (c *Config) SetDefault(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.DefaultProfile = name
	return nil
}

func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
