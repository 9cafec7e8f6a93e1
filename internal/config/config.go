// Package config defines the viewer settings read through viper and the
// default TOML file written by "tales config init".
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/agenticgokit/tales/internal/trajectory"
	"github.com/agenticgokit/tales/internal/utils"
	"github.com/agenticgokit/tales/internal/viewer"
)

// Viper keys.
const (
	KeyAutoplayInterval = "autoplay_interval"
	KeyOptionsMode      = "options_mode"
	KeyDefaultRun       = "default_run"
	KeyLogFile          = "log_file"
	KeyWatch            = "watch"
	KeyEnvironment      = "environment"
	KeyTrace            = "trace"
	KeyTraceExporter    = "trace_exporter"
	KeyTraceEndpoint    = "trace_endpoint"
	KeyTraceSample      = "trace_sample"
)

// Config holds every persisted setting.
type Config struct {
	AutoplayInterval string `toml:"autoplay_interval" mapstructure:"autoplay_interval"`
	OptionsMode      string `toml:"options_mode" mapstructure:"options_mode"`
	DefaultRun       string `toml:"default_run" mapstructure:"default_run"`
	LogFile          string `toml:"log_file,omitempty" mapstructure:"log_file"`
	Watch            bool   `toml:"watch" mapstructure:"watch"`
	Environment      string `toml:"environment" mapstructure:"environment"`

	Trace         bool    `toml:"trace" mapstructure:"trace"`
	TraceExporter string  `toml:"trace_exporter" mapstructure:"trace_exporter"`
	TraceEndpoint string  `toml:"trace_endpoint,omitempty" mapstructure:"trace_endpoint"`
	TraceSample   float64 `toml:"trace_sample" mapstructure:"trace_sample"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		AutoplayInterval: viewer.DefaultInterval.String(),
		OptionsMode:      string(trajectory.ModeInclusive),
		DefaultRun:       viewer.DefaultRunFirst,
		Environment:      "dev",
		TraceExporter:    "console",
		TraceSample:      1.0,
	}
}

// SetDefaults registers Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault(KeyAutoplayInterval, d.AutoplayInterval)
	v.SetDefault(KeyOptionsMode, d.OptionsMode)
	v.SetDefault(KeyDefaultRun, d.DefaultRun)
	v.SetDefault(KeyWatch, d.Watch)
	v.SetDefault(KeyEnvironment, d.Environment)
	v.SetDefault(KeyTraceExporter, d.TraceExporter)
	v.SetDefault(KeyTraceSample, d.TraceSample)
}

// FromViper reads and validates the effective configuration.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AutoplayInterval: v.GetString(KeyAutoplayInterval),
		OptionsMode:      v.GetString(KeyOptionsMode),
		DefaultRun:       v.GetString(KeyDefaultRun),
		LogFile:          v.GetString(KeyLogFile),
		Watch:            v.GetBool(KeyWatch),
		Environment:      v.GetString(KeyEnvironment),
		Trace:            v.GetBool(KeyTrace),
		TraceExporter:    v.GetString(KeyTraceExporter),
		TraceEndpoint:    v.GetString(KeyTraceEndpoint),
		TraceSample:      v.GetFloat64(KeyTraceSample),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field that has a constrained value.
func (c Config) Validate() error {
	if _, err := c.Interval(); err != nil {
		return err
	}
	if _, err := trajectory.ParseOptionsMode(c.OptionsMode); err != nil {
		return utils.NewChoiceError(KeyOptionsMode, c.OptionsMode,
			string(trajectory.ModeInclusive), string(trajectory.ModeExclusive))
	}
	switch strings.ToLower(c.DefaultRun) {
	case "", viewer.DefaultRunFirst, viewer.DefaultRunAll:
	default:
		return utils.NewChoiceError(KeyDefaultRun, c.DefaultRun, viewer.DefaultRunFirst, viewer.DefaultRunAll)
	}
	switch c.TraceExporter {
	case "", "console", "otlp", "file":
	default:
		return utils.NewChoiceError(KeyTraceExporter, c.TraceExporter, "console", "otlp", "file")
	}
	if c.TraceSample < 0 || c.TraceSample > 1 {
		return utils.NewValidationError(KeyTraceSample, "must be between 0.0 and 1.0")
	}
	return nil
}

// Interval parses AutoplayInterval. Empty means the built-in default.
func (c Config) Interval() (time.Duration, error) {
	if c.AutoplayInterval == "" {
		return viewer.DefaultInterval, nil
	}
	d, err := time.ParseDuration(c.AutoplayInterval)
	if err != nil {
		return 0, utils.NewValidationError(KeyAutoplayInterval, fmt.Sprintf("invalid duration %q", c.AutoplayInterval))
	}
	if d <= 0 {
		return 0, utils.NewValidationError(KeyAutoplayInterval, "must be positive")
	}
	return d, nil
}

// Settings converts the configuration to viewer settings.
func (c Config) Settings() (viewer.Settings, error) {
	interval, err := c.Interval()
	if err != nil {
		return viewer.Settings{}, err
	}
	mode, err := trajectory.ParseOptionsMode(c.OptionsMode)
	if err != nil {
		return viewer.Settings{}, err
	}
	run := strings.ToLower(c.DefaultRun)
	if run == "" {
		run = viewer.DefaultRunFirst
	}
	return viewer.Settings{
		Mode:       mode,
		Interval:   interval,
		DefaultRun: run,
	}, nil
}
