package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/resmon/internal/cli"
	"github.com/agbru/resmon/internal/config"
	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/monitor"
	"github.com/agbru/resmon/internal/server"
	"github.com/agbru/resmon/internal/sysmon"
	"github.com/agbru/resmon/internal/tui"
	"github.com/agbru/resmon/internal/ui"
)

// Application represents the resmon application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	// Probe and GPU replace the host probe and GPU detection when set.
	Probe sysmon.Probe
	GPU   sysmon.GPUBackend
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithProbe sets the probe used instead of the host probe.
func WithProbe(p sysmon.Probe) AppOption {
	return func(a *Application) { a.Probe = p }
}

// WithGPUBackend sets the GPU backend used instead of nvidia-smi detection.
func WithGPUBackend(g sysmon.GPUBackend) AppOption {
	return func(a *Application) { a.GPU = g }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "resmon"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	ui.Select(a.Config.Theme, a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	mon := a.newMonitor(ctx, logger)

	switch a.Config.Mode() {
	case config.ModeInfo:
		err = cli.NewPresenter(a.Config.JSON).PresentInfo(out, mon.Info())
	case config.ModeOnce:
		err = a.runOnce(ctx, mon, out)
	case config.ModeServe:
		err = a.runServe(ctx, mon, logger)
	default:
		return tui.Run(ctx, mon, a.Config, Version)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("run failed", err, logging.String("mode", string(a.Config.Mode())))
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
	}
	return apperrors.ExitCodeFor(err)
}

// newLogger builds the zerolog-backed logger. The dashboard owns the
// terminal, so without -log-file it logs nowhere.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	noop := func() {}
	if a.Config.LogFile != "" {
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, noop, apperrors.NewConfigError("open log file: %v", err)
		}
		return logging.NewLoggerWithLevel(f, "resmon", a.Config.LogLevel), func() { _ = f.Close() }, nil
	}
	if a.Config.Mode() == config.ModeTUI {
		return logging.NewNopLogger(), noop, nil
	}
	return logging.NewLoggerWithLevel(a.ErrWriter, "resmon", a.Config.LogLevel), noop, nil
}

// newMonitor wires probe, GPU backend, system info, collector and history.
func (a *Application) newMonitor(ctx context.Context, logger logging.Logger) *monitor.Monitor {
	probe := a.Probe
	if probe == nil {
		probe = sysmon.NewHostProbe()
	}

	gpu := a.GPU
	if gpu == nil && !a.Config.NoGPU {
		detected, err := sysmon.DetectGPUBackend(ctx, a.Config.NvidiaSMI, a.Config.GPUTimeout)
		if err != nil {
			logger.Debug("GPU backend unavailable", logging.Err(err))
		} else {
			gpu = detected
			logger.Info("GPU backend detected", logging.Int("devices", len(detected.Devices())))
		}
	}

	info := sysmon.ReadSystemInfo(ctx, probe, gpu)
	opts := []monitor.CollectorOption{monitor.WithCollectorLogger(logger)}
	if gpu != nil {
		opts = append(opts, monitor.WithGPU(gpu))
	}
	if info.CPUCoreCount > 0 {
		opts = append(opts, monitor.WithCoreCount(int(info.CPUCoreCount)))
	}

	return monitor.New(monitor.NewCollector(probe, opts...), info, a.Config.Retention, monitor.WithLogger(logger))
}

func (a *Application) runOnce(ctx context.Context, mon *monitor.Monitor, out io.Writer) (err error) {
	defer recoverPoisoned(mon, &err)

	var progress io.Writer
	if !a.Config.JSON {
		progress = a.ErrWriter
	}
	snap, err := cli.SampleOnce(ctx, mon, a.Config.Interval, progress)
	if err != nil {
		return err
	}
	return cli.NewPresenter(a.Config.JSON).PresentSnapshot(out, snap, mon.Info())
}

// runServe runs the Sampler and the HTTP server until a signal arrives or
// either fails.
func (a *Application) runServe(ctx context.Context, mon *monitor.Monitor, logger logging.Logger) error {
	security := server.DefaultSecurityConfig()
	security.MaxPoints = a.Config.MaxPoints

	srv := server.New(a.Config.Serve, mon,
		server.WithLogger(logger),
		server.WithSecurityConfig(security),
		server.WithWindowDefaults(a.Config.LookbackSamples(a.Config.Lookback), a.Config.Points),
	)
	sampler := monitor.NewSampler(mon, a.Config.Interval, logger)
	sampler.Observe(srv.Observe)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer recoverPoisoned(mon, &err)
		return sampler.Run(gctx)
	})
	g.Go(func() error {
		return srv.Start(gctx)
	})
	return g.Wait()
}

// recoverPoisoned turns the panic re-raised by a poisoned Monitor into
// ErrStatePoisoned so the process exits with its dedicated code. Any other
// panic is re-raised.
func recoverPoisoned(mon *monitor.Monitor, err *error) {
	r := recover()
	if r == nil {
		return
	}
	if !mon.Poisoned() {
		panic(r)
	}
	*err = fmt.Errorf("%w: %v", apperrors.ErrStatePoisoned, r)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
