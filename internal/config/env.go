package config

import (
	"flag"
	"os"
	"strings"
)

// EnvName is the variable that overrides flag name: EnvPrefix followed by
// the name upper-cased with dashes turned into underscores.
func EnvName(name string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

type boolFlag interface{ IsBoolFlag() bool }

// envValue adapts a variable's text to what the flag parses. Boolean flags
// additionally accept yes and no in any case.
func envValue(f *flag.Flag, raw string) string {
	if b, ok := f.Value.(boolFlag); ok && b.IsBoolFlag() {
		switch strings.ToLower(raw) {
		case "yes":
			return "true"
		case "no":
			return "false"
		}
	}
	return raw
}

// applyEnvOverrides sets every flag left off the command line from its
// RESMON_ variable, so the order is flags, then environment, then file, then
// defaults. Values the flag cannot parse, and empty ones, are ignored.
func applyEnvOverrides(fs *flag.FlagSet) {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	fs.VisitAll(func(f *flag.Flag) {
		if explicit[f.Name] {
			return
		}
		raw := os.Getenv(EnvName(f.Name))
		if raw == "" {
			return
		}
		_ = fs.Set(f.Name, envValue(f, raw))
	})
}
