package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GuusDeKroon/VRCprintutils/pkg/transform"
)

// Config holds the application configuration
type Config struct {
	Transform TransformConfig `json:"transform"`
	Output    OutputConfig    `json:"output"`
	Log       LogConfig       `json:"log"`
	UI        UIConfig        `json:"ui"`
}

// TransformConfig holds configuration for frame transforms
type TransformConfig struct {
	Resampler    string `json:"resampler"`
	LightCaption bool   `json:"light_caption"`
}

// OutputConfig holds configuration for output generation
type OutputConfig struct {
	JPEGQuality  int    `json:"jpeg_quality"`
	WebPLossless bool   `json:"webp_lossless"`
	WebPQuality  int    `json:"webp_quality"`
	OutputDir    string `json:"output_dir"`
	DefaultExt   string `json:"default_ext"`
}

// LogConfig holds configuration for logging
type LogConfig struct {
	Level      string `json:"level"`
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
	Compress   bool   `json:"compress"`
}

// UIConfig holds configuration for the console
type UIConfig struct {
	Color  string `json:"color"`
	Banner bool   `json:"banner"`
}

// Color settings
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Transform: TransformConfig{
			Resampler:    "bicubic",
			LightCaption: false,
		},
		Output: OutputConfig{
			JPEGQuality:  95,
			WebPLossless: true,
			WebPQuality:  90,
			OutputDir:    "",
			DefaultExt:   ".png",
		},
		Log: LogConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 2,
			MaxAgeDays: 28,
			Compress:   true,
		},
		UI: UIConfig{
			Color:  ColorAuto,
			Banner: true,
		},
	}
}

// LoadFromFile loads configuration from a JSON file. Missing keys keep
// their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load reads filename if it exists and falls back to defaults otherwise
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFromFile(filename)
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := transform.ResamplerByName(c.Transform.Resampler); err != nil {
		return fmt.Errorf("transform.resampler: %w", err)
	}

	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality must be between 1 and 100")
	}

	if c.Output.WebPQuality < 0 || c.Output.WebPQuality > 100 {
		return fmt.Errorf("output.webp_quality must be between 0 and 100")
	}

	if c.Output.DefaultExt != "" && !strings.HasPrefix(c.Output.DefaultExt, ".") {
		return fmt.Errorf("output.default_ext must start with a dot")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits cannot be negative")
	}

	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("ui.color must be one of auto, always, never")
	}

	return nil
}

// TransformerConfig converts the transform section for the engine
func (c *Config) TransformerConfig() (transform.Config, error) {
	f, err := transform.ResamplerByName(c.Transform.Resampler)
	if err != nil {
		return transform.Config{}, err
	}
	return transform.Config{Resampler: f, LightCaption: c.Transform.LightCaption}, nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "vrcprint", "config.json")
}
