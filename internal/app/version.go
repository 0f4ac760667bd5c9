package app

import (
	"fmt"
	"io"
	"runtime"
)

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/agbru/resmon/internal/app.Version=v1.2.3"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// HasVersionFlag reports whether args ask for the version. It is checked
// before flag parsing so that -version works alongside otherwise invalid
// flags.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-version", "--version", "-V":
			return true
		}
	}
	return false
}

// PrintVersion writes the build metadata to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "resmon %s\n", Version)
	fmt.Fprintf(out, "  commit:  %s\n", Commit)
	fmt.Fprintf(out, "  built:   %s\n", BuildDate)
	fmt.Fprintf(out, "  go:      %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
