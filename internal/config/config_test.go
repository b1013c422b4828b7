package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ".png", cfg.Output.DefaultExt)
	assert.False(t, cfg.Transform.LightCaption)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Transform.LightCaption = true
	cfg.Output.JPEGQuality = 70
	cfg.UI.Color = ColorNever

	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadFromFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"jpeg_quality":60}}`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Output.JPEGQuality)
	assert.Equal(t, "bicubic", cfg.Transform.Resampler)
	assert.Equal(t, ColorAuto, cfg.UI.Color)
}

func TestLoadFromFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err = LoadFromFile(bad)
	assert.Error(t, err)
}

func TestLoadMissingFallsBack(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "resampler", mutate: func(c *Config) { c.Transform.Resampler = "sinc" }},
		{name: "jpeg quality", mutate: func(c *Config) { c.Output.JPEGQuality = 0 }},
		{name: "webp quality", mutate: func(c *Config) { c.Output.WebPQuality = 101 }},
		{name: "default ext", mutate: func(c *Config) { c.Output.DefaultExt = "png" }},
		{name: "log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "log rotation", mutate: func(c *Config) { c.Log.MaxBackups = -1 }},
		{name: "color", mutate: func(c *Config) { c.UI.Color = "sometimes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTransformerConfig(t *testing.T) {
	cfg := Default()
	cfg.Transform.Resampler = "lanczos"
	cfg.Transform.LightCaption = true

	tc, err := cfg.TransformerConfig()
	require.NoError(t, err)
	assert.Equal(t, imaging.Lanczos.Support, tc.Resampler.Support)
	assert.True(t, tc.LightCaption)
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()
	assert.Equal(t, "config.json", filepath.Base(path))
}
