package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	perrors "github.com/matzehuels/pedtower/pkg/errors"
	"github.com/matzehuels/pedtower/pkg/io"
	"github.com/matzehuels/pedtower/pkg/pipeline"
	"github.com/matzehuels/pedtower/pkg/render"
)

const configFile = "config.toml"

// Cache backends accepted in the config file.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config is the optional config file. Command-line flags override it.
//
//	seed = 7
//	formats = ["svg", "pdf"]
//	results = "out/"
//
//	[columns]
//	family = "FID"
//	id = "IID"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
type Config struct {
	Seed        uint64      `toml:"seed"`
	Formats     []string    `toml:"formats"`
	Detailed    bool        `toml:"detailed"`
	Scale       float64     `toml:"scale"`
	Concurrency int         `toml:"concurrency"`
	Results     string      `toml:"results"`
	Columns     io.Columns  `toml:"columns"`
	Cache       CacheConfig `toml:"cache"`
}

// CacheConfig selects the layout and artifact cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

func defaultConfig() *Config {
	return &Config{
		Seed:    pipeline.DefaultSeed,
		Scale:   pipeline.DefaultScale,
		Results: "results",
		Columns: io.DefaultColumns(),
		Cache:   CacheConfig{Backend: backendFile, Prefix: appName + ":"},
	}
}

// loadConfig reads path, or the default config location when path is empty.
// A missing default file yields the defaults; a missing explicit file is an
// error.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, perrors.New(perrors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return cfg, nil
		}
		return nil, err
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidConfig, "unknown key %q in %s", undecoded[0].String(), path)
	}
	cfg.Columns = cfg.Columns.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config values.
func (c *Config) Validate() error {
	if err := c.Columns.Validate(); err != nil {
		return err
	}
	if _, err := render.ParseFormats(strings.Join(c.Formats, ",")); err != nil {
		return err
	}
	if c.Scale < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "scale must be positive, got %v", c.Scale)
	}
	switch c.Cache.Backend {
	case "", backendFile, backendNone:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return perrors.New(perrors.ErrCodeInvalidConfig, "cache backend redis needs redis_url")
		}
	default:
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	return nil
}

// pipelineOptions converts the config into pipeline options.
func (c *Config) pipelineOptions() (pipeline.Options, error) {
	opts := pipeline.Options{
		Seed:        c.Seed,
		Detailed:    c.Detailed,
		Scale:       c.Scale,
		Concurrency: c.Concurrency,
	}
	if len(c.Formats) > 0 {
		formats, err := render.ParseFormats(strings.Join(c.Formats, ","))
		if err != nil {
			return opts, err
		}
		opts.Formats = formats
	}
	return opts, nil
}

// configDir returns the config directory using XDG standard (~/.config/pedtower/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
