package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"geostates/internal/colormap"
	"geostates/internal/plot"
)

// Config holds all application configuration.
type Config struct {
	Data   DataConfig   `mapstructure:"data"`
	Render RenderConfig `mapstructure:"render"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type DataConfig struct {
	// Dir holds the cb_2018 state and county shapefile directories.
	Dir string `mapstructure:"dir"`
	// Values is an optional CSV joined onto the states by code.
	Values string `mapstructure:"values"`
	Key    string `mapstructure:"key"`
	Column string `mapstructure:"column"`
}

type RenderConfig struct {
	Labels       string  `mapstructure:"labels"`
	LineStyle    string  `mapstructure:"linestyle"`
	Colormap     string  `mapstructure:"colormap"`
	Legend       string  `mapstructure:"legend"`
	Bins         int     `mapstructure:"bins"`
	ExtraRegions bool    `mapstructure:"extra_regions"`
	Width        float64 `mapstructure:"width"`
	Height       float64 `mapstructure:"height"`
	DPI          float64 `mapstructure:"dpi"`
}

type OutputConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// Load reads configuration from an optional file and environment
// variables. An explicit path must exist; otherwise geostates.yaml is
// looked up in . and ./configs. The result is not validated, so callers
// can override values before calling Validate.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	d := plot.DefaultOptions()
	v.SetDefault("data.dir", "shapefiles")
	v.SetDefault("data.values", "")
	v.SetDefault("data.key", "")
	v.SetDefault("data.column", "")
	v.SetDefault("render.labels", string(d.Labels))
	v.SetDefault("render.linestyle", string(d.LineStyle))
	v.SetDefault("render.colormap", d.Colormap)
	v.SetDefault("render.legend", string(d.Legend))
	v.SetDefault("render.bins", d.Bins)
	v.SetDefault("render.extra_regions", d.ExtraRegions)
	v.SetDefault("render.width", d.Width)
	v.SetDefault("render.height", d.Height)
	v.SetDefault("render.dpi", d.DPI)
	v.SetDefault("output.path", "states.svg")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("geostates")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// Environment variables: GEOSTATES_RENDER_BINS → render.bins
	v.SetEnvPrefix("GEOSTATES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.Dir == "" {
		errs = append(errs, "data.dir is required")
	}
	if _, err := plot.ParseLabelMode(c.Render.Labels); err != nil {
		errs = append(errs, "render: "+err.Error())
	}
	if _, err := plot.ParseLineStyle(c.Render.LineStyle); err != nil {
		errs = append(errs, "render: "+err.Error())
	}
	if _, err := plot.ParseLegendMode(c.Render.Legend); err != nil {
		errs = append(errs, "render: "+err.Error())
	}
	if _, err := colormap.Lookup(c.Render.Colormap); err != nil {
		errs = append(errs, "render.colormap: "+err.Error())
	}
	if c.Render.Bins <= 0 {
		errs = append(errs, fmt.Sprintf("render.bins must be positive, got %d", c.Render.Bins))
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 || c.Render.DPI <= 0 {
		errs = append(errs, "render.width, render.height and render.dpi must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Options converts the render section to plot options.
func (c *Config) Options() (plot.Options, error) {
	labels, err := plot.ParseLabelMode(c.Render.Labels)
	if err != nil {
		return plot.Options{}, err
	}
	ls, err := plot.ParseLineStyle(c.Render.LineStyle)
	if err != nil {
		return plot.Options{}, err
	}
	legend, err := plot.ParseLegendMode(c.Render.Legend)
	if err != nil {
		return plot.Options{}, err
	}
	o := plot.Options{
		Labels:       labels,
		ExtraRegions: c.Render.ExtraRegions,
		LineStyle:    ls,
		Colormap:     c.Render.Colormap,
		Legend:       legend,
		Bins:         c.Render.Bins,
		Width:        c.Render.Width,
		Height:       c.Render.Height,
		DPI:          c.Render.DPI,
	}
	return o, o.Validate()
}
