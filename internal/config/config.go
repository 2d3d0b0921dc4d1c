package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Tree     TreeConfig
	Viewport ViewportConfig
}

// TreeConfig holds layout and interaction settings.
type TreeConfig struct {
	// Orientation is "horizontal" (depth grows rightward) or "vertical".
	Orientation string
	// PathFunc is a hint for the drawing layer: "diagonal" or "elbow".
	PathFunc string `mapstructure:"path_func"`
	// DepthFactor scales depth-axis spacing; 0 keeps the native spacing.
	DepthFactor float64 `mapstructure:"depth_factor"`
	// InitialDepth collapses nodes past this depth on the first layout
	// pass only. Negative means unlimited.
	InitialDepth int `mapstructure:"initial_depth"`
	// Collapsible gates node toggling entirely.
	Collapsible bool
}

// ViewportConfig holds pan/zoom settings.
type ViewportConfig struct {
	Zoomable   bool
	TranslateX float64 `mapstructure:"translate_x"`
	TranslateY float64 `mapstructure:"translate_y"`
	ScaleMin   float64 `mapstructure:"scale_min"`
	ScaleMax   float64 `mapstructure:"scale_max"`
}

// Load reads configuration from file and env. Env var overrides use prefix ARBOR_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("tree.orientation", "horizontal")
	v.SetDefault("tree.path_func", "diagonal")
	v.SetDefault("tree.depth_factor", 0.0)
	v.SetDefault("tree.initial_depth", -1)
	v.SetDefault("tree.collapsible", true)
	v.SetDefault("viewport.zoomable", true)
	v.SetDefault("viewport.translate_x", 0.0)
	v.SetDefault("viewport.translate_y", 0.0)
	v.SetDefault("viewport.scale_min", 0.1)
	v.SetDefault("viewport.scale_max", 1.0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("ARBOR_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "arbor"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("ARBOR")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory
// if needed. Used by the TUI settings surface.
func Save(cfg Config) error {
	path := os.Getenv("ARBOR_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "arbor", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("tree.orientation", cfg.Tree.Orientation)
	v.Set("tree.path_func", cfg.Tree.PathFunc)
	v.Set("tree.depth_factor", cfg.Tree.DepthFactor)
	v.Set("tree.initial_depth", cfg.Tree.InitialDepth)
	v.Set("tree.collapsible", cfg.Tree.Collapsible)
	v.Set("viewport.zoomable", cfg.Viewport.Zoomable)
	v.Set("viewport.translate_x", cfg.Viewport.TranslateX)
	v.Set("viewport.translate_y", cfg.Viewport.TranslateY)
	v.Set("viewport.scale_min", cfg.Viewport.ScaleMin)
	v.Set("viewport.scale_max", cfg.Viewport.ScaleMax)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
