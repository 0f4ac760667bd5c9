package config

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("resmon", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Interval != time.Second || cfg.Retention != 86400 || cfg.Points != DefaultPoints {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mode() != ModeTUI {
		t.Errorf("Mode() = %q, want %q", cfg.Mode(), ModeTUI)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-interval", "2s", "-retention", "100", "-points", "30", "-serve", "127.0.0.1:9100", "-no-gpu"}
	cfg, err := ParseConfig("resmon", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Interval != 2*time.Second || cfg.Retention != 100 || cfg.Points != 30 || !cfg.NoGPU {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Mode() != ModeServe {
		t.Errorf("Mode() = %q, want %q", cfg.Mode(), ModeServe)
	}
}

func TestParseConfig_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := ParseConfig("resmon", []string{"-h"}, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !bytes.Contains(out.Bytes(), []byte("RESMON_")) {
		t.Errorf("usage should mention the env prefix, got: %s", out.String())
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"positional argument", []string{"extra"}},
		{"zero points", []string{"-points", "0"}},
		{"tiny interval", []string{"-interval", "1ms"}},
		{"lookback below interval", []string{"-interval", "10s", "-lookback", "5s"}},
		{"conflicting modes", []string{"-once", "-info"}},
		{"tui with serve", []string{"-tui", "-serve", ":9100"}},
		{"bad address", []string{"-serve", "nowhere"}},
		{"unknown theme", []string{"-theme", "neon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("resmon", tt.args, &bytes.Buffer{})
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := apperrors.ExitCodeFor(err); code != apperrors.ExitErrorConfig {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", err, code, apperrors.ExitErrorConfig)
			}
		})
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RESMON_INTERVAL", "3s")
	t.Setenv("RESMON_POINTS", "90")
	t.Setenv("RESMON_NO_GPU", "yes")
	t.Setenv("RESMON_RETENTION", "not-a-number")

	cfg, err := ParseConfig("resmon", []string{"-points", "45"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %v, want env value 3s", cfg.Interval)
	}
	if cfg.Points != 45 {
		t.Errorf("Points = %d, want flag value 45 to beat the env", cfg.Points)
	}
	if !cfg.NoGPU {
		t.Error("NoGPU should be set from the env")
	}
	if cfg.Retention != 86400 {
		t.Errorf("Retention = %d, an unparseable env value must be ignored", cfg.Retention)
	}
}

func TestParseConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resmon.yaml")
	yaml := "interval: 500ms\nretention: 3600\npoints: 120\ntheme: light\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESMON_THEME", "none")

	cfg, err := ParseConfig("resmon", []string{"-config", path, "-points", "200"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Interval != 500*time.Millisecond || cfg.Retention != 3600 || cfg.LogLevel != "debug" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Points != 200 {
		t.Errorf("Points = %d, flag should beat the file", cfg.Points)
	}
	if cfg.Theme != "none" {
		t.Errorf("Theme = %q, env should beat the file", cfg.Theme)
	}
	if cfg.ConfigFile != path {
		t.Errorf("ConfigFile = %q", cfg.ConfigFile)
	}
}

func TestParseConfig_FileFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resmon.yaml")
	if err := os.WriteFile(path, []byte("retention: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("RESMON_CONFIG", path)

	cfg, err := ParseConfig("resmon", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Retention != 10 {
		t.Errorf("Retention = %d, want 10 from RESMON_CONFIG", cfg.Retention)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	cfg := Default()
	if err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Error("expected an error for a missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("interval: [not, a, duration]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	var cfgErr apperrors.ConfigError
	if err := LoadFile(bad, &cfg); !errors.As(err, &cfgErr) {
		t.Errorf("expected a ConfigError, got %v", err)
	}
}

func TestLookbackSamples(t *testing.T) {
	cfg := Default()
	tests := []struct {
		in   time.Duration
		want int
	}{
		{time.Minute, 60},
		{24 * time.Hour, 86400},
		{500 * time.Millisecond, 1},
	}
	for _, tt := range tests {
		if got := cfg.LookbackSamples(tt.in); got != tt.want {
			t.Errorf("LookbackSamples(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestEnvName(t *testing.T) {
	for flagName, want := range map[string]string{
		"interval":    "RESMON_INTERVAL",
		"no-gpu":      "RESMON_NO_GPU",
		"gpu-timeout": "RESMON_GPU_TIMEOUT",
		"config":      "RESMON_CONFIG",
	} {
		if got := EnvName(flagName); got != want {
			t.Errorf("EnvName(%q) = %q, want %q", flagName, got, want)
		}
	}
}

func TestParseConfig_EnvBooleans(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"YES", true},
		{"1", true},
		{"0", false},
		{"No", false},
		{"maybe", true},
	}
	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("RESMON_JSON", tc.value)
			cfg, err := ParseConfig("resmon", []string{"-json"}, &bytes.Buffer{})
			if err != nil {
				t.Fatal(err)
			}
			if !cfg.JSON {
				t.Fatal("an explicit -json must beat the env")
			}

			// Start from true so an unparseable value visibly keeps it.
			path := filepath.Join(t.TempDir(), "resmon.yaml")
			if err := os.WriteFile(path, []byte("json: true\n"), 0o600); err != nil {
				t.Fatal(err)
			}
			cfg, err = ParseConfig("resmon", []string{"-config", path}, &bytes.Buffer{})
			if err != nil {
				t.Fatal(err)
			}
			if cfg.JSON != tc.want {
				t.Errorf("RESMON_JSON=%q: JSON = %v, want %v", tc.value, cfg.JSON, tc.want)
			}
		})
	}
}
