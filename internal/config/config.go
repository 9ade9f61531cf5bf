// Package config loads img2ascii settings from a YAML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wbrown/img2ascii"
	"github.com/wbrown/img2ascii/imageutil"
	"github.com/wbrown/img2ascii/internal/log"
)

// Config holds every tunable of the CLI, server and terminal UI.
type Config struct {
	Size          img2ascii.SizeProfile   `yaml:"size"`
	Interpolation imageutil.Interpolation `yaml:"interpolation"`
	LogLevel      string                  `yaml:"log_level"`

	Server  Server  `yaml:"server"`
	Preview Preview `yaml:"preview"`
	TUI     TUI     `yaml:"tui"`
}

// Server configures the HTTP front-end.
type Server struct {
	Listen          string        `yaml:"listen"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	MaxPixels       int64         `yaml:"max_pixels"`
	MaxConns        int           `yaml:"max_conns"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Preview configures PNG previews.
type Preview struct {
	FontSize float64 `yaml:"font_size"`
	DPI      float64 `yaml:"dpi"`
}

// TUI configures the terminal UI.
type TUI struct {
	// Dir is the directory the file picker lists. Empty means the
	// working directory.
	Dir string `yaml:"dir"`
	// SaveDir receives ascii-art.txt. Empty means the working directory.
	SaveDir string `yaml:"save_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Size:          img2ascii.DefaultProfile,
		Interpolation: imageutil.InterpolationBilinear,
		LogLevel:      "info",
		Server: Server{
			Listen:          ":8080",
			MaxUploadBytes:  10 << 20,
			MaxPixels:       imageutil.DefaultMaxPixels,
			MaxConns:        64,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Preview: Preview{
			FontSize: 12,
			DPI:      72,
		},
	}
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/img2ascii/config.yaml or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "img2ascii", "config.yaml")
}

// Load reads path over the defaults. An empty path falls back to
// DefaultPath, which may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := decode(bytes.NewReader(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks ranges that YAML typing cannot express.
func (c *Config) Validate() error {
	if !c.Size.Valid() {
		return fmt.Errorf("size: %w", img2ascii.ErrUnknownProfile)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.MaxPixels <= 0 {
		return fmt.Errorf("server.max_pixels must be positive, got %d", c.Server.MaxPixels)
	}
	if c.Server.MaxConns < 0 {
		return fmt.Errorf("server.max_conns must not be negative, got %d", c.Server.MaxConns)
	}
	if c.Preview.FontSize <= 0 {
		return fmt.Errorf("preview.font_size must be positive, got %v", c.Preview.FontSize)
	}
	if c.Preview.DPI <= 0 {
		return fmt.Errorf("preview.dpi must be positive, got %v", c.Preview.DPI)
	}
	return nil
}

// Marshal renders the configuration as YAML, used by -print-config.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
