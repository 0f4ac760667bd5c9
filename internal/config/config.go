// Package config builds the resmon configuration from defaults, an optional
// YAML file, RESMON_* environment variables and command-line flags, in
// increasing order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/monitor"
	"github.com/agbru/resmon/internal/sysmon"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable read by this package.
const EnvPrefix = "RESMON_"

// Defaults not owned by another package.
const (
	DefaultLookback  = time.Minute
	DefaultPoints    = 60
	DefaultMaxPoints = 2000
	DefaultLogLevel  = "info"
	DefaultTheme     = "dark"
)

// Mode selects what the program does after startup.
type Mode string

const (
	ModeTUI   Mode = "tui"
	ModeOnce  Mode = "once"
	ModeServe Mode = "serve"
	ModeInfo  Mode = "info"
)

// Periods are the dashboard lookback choices, cycled with the period key.
var Periods = []time.Duration{
	time.Minute,
	5 * time.Minute,
	30 * time.Minute,
	3 * time.Hour,
	6 * time.Hour,
	12 * time.Hour,
	24 * time.Hour,
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Interval is the sampling cadence.
	Interval time.Duration `yaml:"interval"`
	// Retention is the History capacity in samples.
	Retention int `yaml:"retention"`
	// Lookback is the initial time span shown by the dashboard and the
	// default span of /api/window.
	Lookback time.Duration `yaml:"lookback"`
	// Points is the default point budget of a window query.
	Points int `yaml:"points"`
	// MaxPoints caps the point budget accepted over HTTP.
	MaxPoints int `yaml:"max_points"`

	// Serve is the HTTP listen address; non-empty selects serve mode.
	Serve string `yaml:"serve"`
	// TUI requests the dashboard explicitly; it is also the default mode.
	TUI bool `yaml:"-"`
	// Once prints a single snapshot and exits.
	Once bool `yaml:"-"`
	// Info prints the static system description and exits.
	Info bool `yaml:"-"`
	// JSON switches -once and -info output to JSON.
	JSON bool `yaml:"json"`

	// NoGPU skips GPU backend detection.
	NoGPU bool `yaml:"no_gpu"`
	// NvidiaSMI is the nvidia-smi binary to run.
	NvidiaSMI string `yaml:"nvidia_smi"`
	// GPUTimeout bounds each nvidia-smi invocation.
	GPUTimeout time.Duration `yaml:"gpu_timeout"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Theme    string `yaml:"theme"`
	NoColor  bool   `yaml:"no_color"`

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string `yaml:"-"`
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		Interval:   monitor.DefaultInterval,
		Retention:  monitor.DefaultRetention,
		Lookback:   DefaultLookback,
		Points:     DefaultPoints,
		MaxPoints:  DefaultMaxPoints,
		NvidiaSMI:  sysmon.DefaultNvidiaSMI,
		GPUTimeout: sysmon.DefaultGPUTimeout,
		LogLevel:   DefaultLogLevel,
		Theme:      DefaultTheme,
	}
}

// Mode reports the run mode selected by the flags.
func (c AppConfig) Mode() Mode {
	switch {
	case c.Info:
		return ModeInfo
	case c.Once:
		return ModeOnce
	case c.Serve != "":
		return ModeServe
	default:
		return ModeTUI
	}
}

// LookbackSamples converts d into a number of samples at the configured
// interval, never less than one.
func (c AppConfig) LookbackSamples(d time.Duration) int {
	if c.Interval <= 0 {
		return 1
	}
	return max(int(d/c.Interval), 1)
}

// ParseConfig parses command-line arguments into an AppConfig.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The arguments without the program name.
//   - errorOutput: Where usage and parse errors are written.
//
// Returns:
//   - AppConfig: The merged and validated configuration.
//   - error: flag.ErrHelp for -h, a ConfigError for invalid input.
func ParseConfig(programName string, args []string, errorOutput io.Writer) (AppConfig, error) {
	// First pass only discovers -config so the file can sit beneath the flags.
	probe := Default()
	pre := newFlagSet(programName, &probe, io.Discard)
	_ = pre.Parse(args)

	cfg := Default()
	path := probe.ConfigFile
	if path == "" {
		path = os.Getenv(EnvName("config"))
	}
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return AppConfig{}, err
		}
		cfg.ConfigFile = path
	}

	fs := newFlagSet(programName, &cfg, errorOutput)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", fs.Arg(0))
	}
	applyEnvOverrides(fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

func newFlagSet(programName string, cfg *AppConfig, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags]\n\nA terminal resource monitor.\n\nFlags:\n", programName)
		fs.PrintDefaults()
		fmt.Fprintf(output, "\nEvery flag can also be set with %s<NAME> (e.g. %sINTERVAL=2s).\n", EnvPrefix, EnvPrefix)
	}

	fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Sampling interval.")
	fs.IntVar(&cfg.Retention, "retention", cfg.Retention, "Number of samples kept in history.")
	fs.DurationVar(&cfg.Lookback, "lookback", cfg.Lookback, "Initial chart time span.")
	fs.IntVar(&cfg.Points, "points", cfg.Points, "Maximum number of points per chart.")
	fs.IntVar(&cfg.MaxPoints, "max-points", cfg.MaxPoints, "Largest point budget accepted over HTTP.")
	fs.StringVar(&cfg.Serve, "serve", cfg.Serve, "Serve the HTTP API on this address (e.g. :9100).")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Run the interactive dashboard (default).")
	fs.BoolVar(&cfg.Once, "once", cfg.Once, "Print one snapshot and exit.")
	fs.BoolVar(&cfg.Info, "info", cfg.Info, "Print system information and exit.")
	fs.BoolVar(&cfg.JSON, "json", cfg.JSON, "JSON output for -once and -info.")
	fs.BoolVar(&cfg.NoGPU, "no-gpu", cfg.NoGPU, "Disable GPU detection.")
	fs.StringVar(&cfg.NvidiaSMI, "nvidia-smi", cfg.NvidiaSMI, "Path to the nvidia-smi binary.")
	fs.DurationVar(&cfg.GPUTimeout, "gpu-timeout", cfg.GPUTimeout, "Timeout for one GPU query.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write logs to this file instead of stderr.")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "Dashboard theme (dark, light, none).")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable colored output.")
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML configuration file.")
	return fs
}

// LoadFile merges the YAML file at path into cfg. Keys absent from the file
// leave cfg untouched.
func LoadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("read config %s: %v", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return apperrors.NewConfigError("parse config %s: %v", path, err)
	}
	return nil
}

// Validate checks the configuration for logical consistency.
func (c AppConfig) Validate() error {
	switch {
	case c.Interval < 10*time.Millisecond:
		return apperrors.ValidationError{Field: "interval", Message: "must be at least 10ms"}
	case c.Retention < 1:
		return apperrors.ValidationError{Field: "retention", Message: "must be greater than zero"}
	case c.Points < 1:
		return apperrors.ValidationError{Field: "points", Message: "must be greater than zero"}
	case c.MaxPoints < c.Points:
		return apperrors.ValidationError{Field: "max-points", Message: "must not be below points"}
	case c.Lookback < c.Interval:
		return apperrors.ValidationError{Field: "lookback", Message: "must cover at least one interval"}
	case c.GPUTimeout <= 0:
		return apperrors.ValidationError{Field: "gpu-timeout", Message: "must be positive"}
	}

	modes := 0
	for _, on := range []bool{c.TUI, c.Once, c.Info, c.Serve != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("-tui, -once, -info and -serve are mutually exclusive")
	}

	if c.Serve != "" {
		if _, _, err := net.SplitHostPort(c.Serve); err != nil {
			return apperrors.ValidationError{Field: "serve", Message: err.Error()}
		}
	}

	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("unknown theme %q", c.Theme)}
	}
	return nil
}
