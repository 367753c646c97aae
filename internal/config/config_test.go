package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trknhr/ghostchat/internal/config"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Model.MinOrder)
	assert.Equal(t, 5, cfg.Model.MaxOrder)
	assert.Equal(t, 1000, cfg.Model.MaxLength)
	assert.True(t, cfg.Model.Attention.Enabled)
	assert.Equal(t, 3, cfg.Model.Attention.Stack().Width)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlData := `
model:
  max_order: 3
  max_length: 50
  seed: 7
  attention:
    enabled: false
corpus:
  paths: [a.txt, b.txt]
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yamlData), 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1, cfg.Model.MinOrder, "unset keys keep their defaults")
	assert.Equal(t, 3, cfg.Model.MaxOrder)
	assert.Equal(t, 50, cfg.Model.MaxLength)
	assert.Equal(t, uint64(7), cfg.Model.Seed)
	assert.False(t, cfg.Model.Attention.Enabled)
	assert.Equal(t, 10, cfg.Model.Attention.Hidden)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Corpus.Paths)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("model: [unclosed"), 0644))
	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"min order zero", func(c *config.Config) { c.Model.MinOrder = 0 }},
		{"max order too high", func(c *config.Config) { c.Model.MaxOrder = 6 }},
		{"inverted orders", func(c *config.Config) { c.Model.MinOrder, c.Model.MaxOrder = 4, 2 }},
		{"negative length", func(c *config.Config) { c.Model.MaxLength = -1 }},
		{"zero width", func(c *config.Config) { c.Model.Attention.Width = 0 }},
		{"no workers", func(c *config.Config) { c.Batch.Workers = 0 }},
		{"no db path", func(c *config.Config) { c.Database.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	cfg := config.Default()
	cfg.Model.Attention.Enabled = false
	cfg.Model.Attention.Width = 0
	assert.NoError(t, cfg.Validate(), "attention widths are ignored when disabled")

	cfg = config.Default()
	cfg.Database.Disabled = true
	cfg.Database.Path = ""
	assert.NoError(t, cfg.Validate())
}
