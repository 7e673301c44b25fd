// Package config resolves runmark settings from built-in defaults, an
// optional YAML file, the environment and command-line flags, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/runmark/internal/highlight"
	"github.com/kk-code-lab/runmark/internal/layout"
	"github.com/kk-code-lab/runmark/internal/logging"
	"github.com/kk-code-lab/runmark/internal/search"
)

// EnvConfig names a config file that replaces the default location.
const EnvConfig = "RUNMARK_CONFIG"

var (
	ErrConfigNotFound = errors.New("config: file not found")
	ErrInvalidConfig  = errors.New("config: invalid configuration")
)

// Config is the resolved configuration.
type Config struct {
	CaseSensitive      bool          `yaml:"case_sensitive"`
	FlexibleWhitespace bool          `yaml:"flexible_whitespace"`
	Fuzzy              bool          `yaml:"fuzzy"`
	FuzzyThreshold     float64       `yaml:"fuzzy_threshold"`
	AutoScroll         bool          `yaml:"auto_scroll"`
	Layout             LayoutConfig  `yaml:"layout"`
	Theme              ThemeConfig   `yaml:"theme"`
	Contexts           []ContextSpec `yaml:"contexts"`

	Debug     bool   `yaml:"-"`
	DebugFile string `yaml:"-"`
	// Path is the file the config was read from, empty for defaults only.
	Path string `yaml:"-"`
}

type LayoutConfig struct {
	Width     int `yaml:"width"`
	RunLength int `yaml:"run_length"`
	Zoom      int `yaml:"zoom"`
}

type ThemeConfig struct {
	// Palette holds one color per context tag, by tcell color name or #rrggbb.
	Palette []string `yaml:"palette"`
}

// ContextSpec is a saved query. Unset fields inherit the shared options.
type ContextSpec struct {
	Query              string   `yaml:"query"`
	CaseSensitive      *bool    `yaml:"case_sensitive"`
	FlexibleWhitespace *bool    `yaml:"flexible_whitespace"`
	Fuzzy              *bool    `yaml:"fuzzy"`
	FuzzyThreshold     *float64 `yaml:"fuzzy_threshold"`
}

// DefaultPalette is used for tags the config leaves unset.
var DefaultPalette = []string{"yellow", "aqua", "lime", "fuchsia", "orange", "skyblue", "pink", "silver"}

// Default returns the built-in configuration.
func Default() Config {
	opts := search.DefaultOptions()
	lo := layout.DefaultOptions()
	return Config{
		CaseSensitive:      opts.CaseSensitive,
		FlexibleWhitespace: opts.FlexibleWhitespace,
		Fuzzy:              opts.Fuzzy,
		FuzzyThreshold:     opts.FuzzyThreshold,
		AutoScroll:         opts.AutoScroll,
		Layout: LayoutConfig{
			Width:     lo.Width,
			RunLength: lo.RunLength,
			Zoom:      layout.DefaultZoom,
		},
		Theme: ThemeConfig{Palette: append([]string(nil), DefaultPalette...)},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/runmark/config.yaml, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "runmark", "config.yaml"), nil
}

// Load resolves defaults, the config file and the environment. An explicit
// path (argument or RUNMARK_CONFIG) must exist; the default file may not.
func Load(explicit string) (Config, error) {
	cfg := Default()

	path := explicit
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	required := path != ""
	if !required {
		p, err := DefaultPath()
		if err != nil {
			logging.For("config").Debug("no default config location", "err", err)
			return cfg.applyEnv(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.decode(bytes.NewReader(data)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		cfg.Path = path
	case errors.Is(err, os.ErrNotExist) && !required:
	case errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg = cfg.applyEnv()
	logging.For("config").Debug("configuration loaded", "path", cfg.Path, "fuzzy", cfg.Fuzzy, "contexts", len(cfg.Contexts))
	return cfg, nil
}

// Parse decodes YAML on top of the defaults without touching the
// environment.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return c.Validate()
}

func (c Config) applyEnv() Config {
	lo := logging.FromEnv(logging.Options{Debug: c.Debug, File: c.DebugFile})
	c.Debug = lo.Debug
	c.DebugFile = lo.File
	return c
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 || c.FuzzyThreshold != c.FuzzyThreshold {
		return fmt.Errorf("%w: fuzzy_threshold %v is outside [0, 1]", ErrInvalidConfig, c.FuzzyThreshold)
	}
	if c.Layout.Width < 0 || c.Layout.RunLength < 0 {
		return fmt.Errorf("%w: layout sizes must not be negative", ErrInvalidConfig)
	}
	if c.Layout.Zoom != 0 && (c.Layout.Zoom < layout.MinZoom || c.Layout.Zoom > layout.MaxZoom) {
		return fmt.Errorf("%w: zoom %d is outside [%d, %d]", ErrInvalidConfig, c.Layout.Zoom, layout.MinZoom, layout.MaxZoom)
	}
	if len(c.Theme.Palette) > highlight.TagCount {
		return fmt.Errorf("%w: palette has %d colors, at most %d are used", ErrInvalidConfig, len(c.Theme.Palette), highlight.TagCount)
	}
	for _, name := range c.Theme.Palette {
		if tcell.GetColor(name) == tcell.ColorDefault {
			return fmt.Errorf("%w: unknown color %q", ErrInvalidConfig, name)
		}
	}
	for i, ctx := range c.Contexts {
		if t := ctx.FuzzyThreshold; t != nil && (*t < 0 || *t > 1) {
			return fmt.Errorf("%w: context %d fuzzy_threshold %v is outside [0, 1]", ErrInvalidConfig, i, *t)
		}
	}
	return nil
}

// SearchOptions returns the shared search options.
func (c Config) SearchOptions() search.Options {
	return search.Options{
		CaseSensitive:      c.CaseSensitive,
		FlexibleWhitespace: c.FlexibleWhitespace,
		Fuzzy:              c.Fuzzy,
		FuzzyThreshold:     c.FuzzyThreshold,
		AutoScroll:         c.AutoScroll,
	}
}

// LayoutOptions returns the plain-text layout settings.
func (c Config) LayoutOptions() layout.Options {
	return layout.Options{Width: c.Layout.Width, RunLength: c.Layout.RunLength}
}

// LoggingOptions returns the logging settings.
func (c Config) LoggingOptions() logging.Options {
	return logging.Options{Debug: c.Debug, File: c.DebugFile}
}

// ZoomLevel returns the configured initial zoom.
func (c Config) ZoomLevel() int {
	if c.Layout.Zoom == 0 {
		return layout.DefaultZoom
	}
	return c.Layout.Zoom
}

// SearchContexts converts the saved contexts, skipping blank queries.
func (c Config) SearchContexts() []highlight.Context {
	out := make([]highlight.Context, 0, len(c.Contexts))
	for _, spec := range c.Contexts {
		if strings.TrimSpace(spec.Query) == "" {
			continue
		}
		out = append(out, highlight.Context{
			Query: spec.Query,
			Overrides: search.Overrides{
				CaseSensitive:      spec.CaseSensitive,
				FlexibleWhitespace: spec.FlexibleWhitespace,
				Fuzzy:              spec.Fuzzy,
				FuzzyThreshold:     spec.FuzzyThreshold,
			},
		})
	}
	return out
}

// PaletteColors resolves the palette to one color per tag, filling gaps
// from DefaultPalette.
func (c Config) PaletteColors() [highlight.TagCount]tcell.Color {
	var out [highlight.TagCount]tcell.Color
	for i := range out {
		name := DefaultPalette[i]
		if i < len(c.Theme.Palette) && c.Theme.Palette[i] != "" {
			name = c.Theme.Palette[i]
		}
		out[i] = tcell.GetColor(name)
	}
	return out
}
