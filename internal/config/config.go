package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	apperrors "github.com/Dicklesworthstone/sysmonlog/internal/errors"
)

// EnvPrefix is prepended to every environment override, e.g.
// SYSMONLOG_CPU_THRESHOLD=90.
const EnvPrefix = "SYSMONLOG"

// Flag names double as viper keys.
const (
	keyCPUThreshold = "cpu-threshold"
	keyRAMThreshold = "ram-threshold"
	keyCadence      = "cadence"
	keyInterval     = "interval"
	keyCPUWindow    = "cpu-window"
	keyDiskPath     = "disk-path"
	keyCSVPath      = "csv"
	keyJSONPath     = "json"
	keyTextfile     = "prom-textfile"
	keyPlot         = "plot"
	keyLogLevel     = "log-level"
)

// Thresholds are the alert limits, in percent. An alert fires only when a
// reading is strictly greater than its limit.
type Thresholds struct {
	CPU float64
	RAM float64
}

// Config carries runtime options for sysmonlog. It is read-only once the
// monitor has been constructed.
type Config struct {
	Thresholds Thresholds
	// Cadence is the number of samples between export and plot rounds.
	Cadence int
	// Interval is the pause between two ticks.
	Interval time.Duration
	// CPUWindow is the observation window of one CPU percent measurement.
	CPUWindow    time.Duration
	DiskPath     string
	CSVPath      string
	JSONPath     string
	TextfilePath string // empty disables the Prometheus textfile export
	Plot         bool
	LogLevel     string
}

func Default() Config {
	return Config{
		Thresholds:   Thresholds{CPU: 80, RAM: 70},
		Cadence:      5,
		Interval:     3 * time.Second,
		CPUWindow:    time.Second,
		DiskPath:     "/",
		CSVPath:      "system_logs.csv",
		JSONPath:     "system_logs.json",
		TextfilePath: "",
		Plot:         true,
		LogLevel:     "warn",
	}
}

// RegisterFlags declares the sysmonlog flags on fs with Default values.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.Float64(keyCPUThreshold, d.Thresholds.CPU, "CPU alert threshold in percent")
	fs.Float64(keyRAMThreshold, d.Thresholds.RAM, "RAM alert threshold in percent")
	fs.Int(keyCadence, d.Cadence, "export and plot every N samples")
	fs.Duration(keyInterval, d.Interval, "pause between samples")
	fs.Duration(keyCPUWindow, d.CPUWindow, "CPU measurement window")
	fs.String(keyDiskPath, d.DiskPath, "mount point used for disk usage")
	fs.String(keyCSVPath, d.CSVPath, "CSV export path")
	fs.String(keyJSONPath, d.JSONPath, "JSON export path")
	fs.String(keyTextfile, d.TextfilePath, "Prometheus textfile export path (disabled when empty)")
	fs.Bool(keyPlot, d.Plot, "show the CPU/RAM chart after each export")
	fs.String(keyLogLevel, d.LogLevel, "diagnostic log level: debug|info|warn|error")
}

// Load resolves the configuration from, in increasing priority, the flag
// defaults, SYSMONLOG_* environment variables and explicitly set flags.
// fs must have been prepared with RegisterFlags.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, apperrors.NewConfigError("binding flags: %v", err)
	}

	cfg := Config{
		Thresholds: Thresholds{
			CPU: v.GetFloat64(keyCPUThreshold),
			RAM: v.GetFloat64(keyRAMThreshold),
		},
		Cadence:      v.GetInt(keyCadence),
		Interval:     v.GetDuration(keyInterval),
		CPUWindow:    v.GetDuration(keyCPUWindow),
		DiskPath:     v.GetString(keyDiskPath),
		CSVPath:      v.GetString(keyCSVPath),
		JSONPath:     v.GetString(keyJSONPath),
		TextfilePath: v.GetString(keyTextfile),
		Plot:         v.GetBool(keyPlot),
		LogLevel:     v.GetString(keyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the monitor cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Thresholds.CPU < 0 || c.Thresholds.CPU > 100:
		return apperrors.NewConfigError("%s must be within [0,100], got %v", keyCPUThreshold, c.Thresholds.CPU)
	case c.Thresholds.RAM < 0 || c.Thresholds.RAM > 100:
		return apperrors.NewConfigError("%s must be within [0,100], got %v", keyRAMThreshold, c.Thresholds.RAM)
	case c.Cadence < 1:
		return apperrors.NewConfigError("%s must be at least 1, got %d", keyCadence, c.Cadence)
	case c.Interval <= 0:
		return apperrors.NewConfigError("%s must be positive, got %s", keyInterval, c.Interval)
	case c.CPUWindow <= 0:
		return apperrors.NewConfigError("%s must be positive, got %s", keyCPUWindow, c.CPUWindow)
	case c.DiskPath == "":
		return apperrors.NewConfigError("%s must not be empty", keyDiskPath)
	case c.CSVPath == "" || c.JSONPath == "":
		return apperrors.NewConfigError("export paths must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%s: %v", keyLogLevel, err)
	}
	return nil
}

// Level returns the parsed diagnostic log level, falling back to warn.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}
