// Package config loads the idntool configuration file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/networkgear/tools/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by all validation errors of Resolve.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the on-disk configuration. Every field is optional, unset
// fields keep the values of Default.
type Config struct {
	// Options is the name of the validity options preset names are
	// parsed with: "none", "loose", "default" or "idna2008".
	Options string `yaml:"options"`
	// Flags are extra option flags added to the preset, as named by
	// domain.Options.String.
	Flags []string `yaml:"flags"`
	// PSL is the path of a public suffix list file to use instead of
	// the embedded one.
	PSL string `yaml:"psl"`
	// Workers is the number of names checked concurrently.
	Workers int `yaml:"workers"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		Options:  "default",
		Workers:  runtime.GOMAXPROCS(0),
		LogLevel: "info",
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads YAML configuration from r over the defaults. Unknown
// keys are an error.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return cfg, nil
}

// Settings is a validated Config.
type Settings struct {
	Options  domain.Options
	PSL      string
	Workers  int
	LogLevel log.Level
}

// Resolve validates c and converts it to Settings.
func (c *Config) Resolve() (Settings, error) {
	opts, err := domain.ParseOptions(c.Options)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, name := range c.Flags {
		flag, err := domain.ParseFlag(name)
		if err != nil {
			return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		opts = opts.Union(flag)
	}

	if c.Workers < 1 {
		return Settings{}, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, c.Workers)
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return Settings{
		Options:  opts,
		PSL:      c.PSL,
		Workers:  c.Workers,
		LogLevel: level,
	}, nil
}
