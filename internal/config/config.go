package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/trknhr/ghostchat/internal/model/attention"
	"github.com/trknhr/ghostchat/internal/model/ngram"
)

type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Batch    BatchConfig    `yaml:"batch"`
}

type ModelConfig struct {
	Name      string          `yaml:"name"`
	MinOrder  int             `yaml:"min_order"`
	MaxOrder  int             `yaml:"max_order"`
	MaxLength int             `yaml:"max_length"`
	Seed      uint64          `yaml:"seed"` // 0 seeds from the clock
	Attention AttentionConfig `yaml:"attention"`
}

type AttentionConfig struct {
	Enabled       bool `yaml:"enabled"`
	Width         int  `yaml:"width"`
	Hidden        int  `yaml:"hidden"`
	Output        int  `yaml:"output"`
	MaxHeadTokens int  `yaml:"max_head_tokens"`
}

func (a AttentionConfig) Stack() attention.Config {
	return attention.Config{
		Width:         a.Width,
		Hidden:        a.Hidden,
		Output:        a.Output,
		MaxHeadTokens: a.MaxHeadTokens,
	}
}

type CorpusConfig struct {
	// Paths are imported into the store before the model is built. With no
	// paths and an empty store the bundled corpus is used.
	Paths []string `yaml:"paths"`
}

type DatabaseConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type BatchConfig struct {
	Workers int `yaml:"workers"`
}

func Default() *Config {
	stack := attention.DefaultConfig()
	return &Config{
		Model: ModelConfig{
			Name:      "Ghostchat",
			MinOrder:  ngram.MinOrder,
			MaxOrder:  ngram.MaxOrder,
			MaxLength: 1000,
			Attention: AttentionConfig{
				Enabled:       true,
				Width:         stack.Width,
				Hidden:        stack.Hidden,
				Output:        stack.Output,
				MaxHeadTokens: stack.MaxHeadTokens,
			},
		},
		Database: DatabaseConfig{Path: DefaultDBPath()},
		Log:      LogConfig{Level: "warn"},
		Batch:    BatchConfig{Workers: 4},
	}
}

// DefaultPath is where Load looks when no config file is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ghostchat", "config.yaml")
}

func DefaultDBPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ghostchat", "ghostchat.db")
	}
	return filepath.Join(dir, "ghostchat", "ghostchat.db")
}

// Load reads the YAML file at path over the defaults. An empty path reads
// DefaultPath if it exists; an explicit path must exist.
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
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs error
	m := c.Model
	if m.MinOrder < ngram.MinOrder || m.MaxOrder > ngram.MaxOrder || m.MinOrder > m.MaxOrder {
		errs = errors.Join(errs, fmt.Errorf("model orders %d..%d out of range %d..%d",
			m.MinOrder, m.MaxOrder, ngram.MinOrder, ngram.MaxOrder))
	}
	if m.MaxLength < 0 {
		errs = errors.Join(errs, fmt.Errorf("model.max_length must not be negative, got %d", m.MaxLength))
	}
	if a := m.Attention; a.Enabled {
		if a.Width <= 0 || a.Hidden <= 0 || a.Output <= 0 {
			errs = errors.Join(errs, fmt.Errorf("attention widths must be positive, got width=%d hidden=%d output=%d",
				a.Width, a.Hidden, a.Output))
		}
		if a.MaxHeadTokens < 0 {
			errs = errors.Join(errs, fmt.Errorf("attention.max_head_tokens must not be negative, got %d", a.MaxHeadTokens))
		}
	}
	if c.Batch.Workers <= 0 {
		errs = errors.Join(errs, fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers))
	}
	if !c.Database.Disabled && c.Database.Path == "" {
		errs = errors.Join(errs, errors.New("database.path is required unless the database is disabled"))
	}
	return errs
}
