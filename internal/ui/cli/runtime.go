package cli

import (
	"context"
	coreapp "doctypes/internal/core/app"
	"doctypes/internal/core/config"
	"doctypes/internal/core/errors"
	"doctypes/internal/core/ports"
	"doctypes/internal/core/watcher"
	"doctypes/internal/data/history"
	"doctypes/internal/shared/observability"
	"doctypes/internal/shared/util"
	"doctypes/internal/ui/report/formats"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"strings"
	"syscall"
	"time"
)

func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "doctypes v%s\n", versionString)
		return 0
	}

	if err := validateOptions(opts); err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	cleanupLogs := configureLogging(stderr, opts.ui, opts.verbose)
	defer cleanupLogs()

	if opts.comment != "" {
		if err := runResolve(opts, opts.format, stdout); err != nil {
			fmt.Fprintln(stderr, err.Error())
			return 2
		}
		return 0
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	applyOptions(opts, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			slog.Warn("tracing shutdown failed", "error", err)
		}
	}()

	appOpts := []coreapp.Option{}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			if history.IsCorruptError(err) {
				slog.Error("history database is corrupt; remove it or set history.path", "path", cfg.History.Path, "error", err)
			} else {
				slog.Error("history setup failed", "error", err, "path", cfg.History.Path)
			}
			return 1
		}
		defer store.Close()
		slog.Debug("history enabled", "path", store.Path())
		appOpts = append(appOpts, coreapp.WithHistory(store))
	}

	app, err := coreapp.New(cfg, appOpts...)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	analysis := coreapp.NewAnalysisService(app)

	health := newHealthState()
	if cfg.Observability.MetricsAddr != "" {
		server := NewObservabilityServer(cfg.Observability.MetricsAddr, health)
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	result, err := analysis.RunScan(ctx, ports.ScanRequest{Paths: cfg.Paths})
	if err != nil {
		slog.Error("scan failed", "error", err)
		return 1
	}
	health.record(result)

	if !opts.ui {
		if err := writeReport(cfg, result, stdout); err != nil {
			slog.Error("failed to write report", "error", err)
			return 1
		}
	}

	if !opts.watch && !opts.ui {
		return 0
	}

	if opts.ui {
		if err := runUI(ctx, cfg, analysis, health, result); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return 0
	}

	w, err := startWatcher(cfg, func(paths []string) {
		slog.Info("changes detected", "files", len(paths))
		result, err := analysis.RunScan(ctx, ports.ScanRequest{Paths: cfg.Paths})
		if err != nil {
			slog.Error("rescan failed", "error", err)
			return
		}
		health.record(result)
		if err := writeReport(cfg, result, stdout); err != nil {
			slog.Error("failed to write report", "error", err)
		}
	})
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	defer w.Close()

	<-ctx.Done()
	return 0
}

func validateOptions(opts cliOptions) error {
	if opts.format != "" && !slices.Contains(config.Formats, opts.format) {
		return fmt.Errorf("unknown -format %q (want one of %s)", opts.format, strings.Join(config.Formats, ", "))
	}
	if opts.comment == "" && (opts.namespace != "" || len(opts.uses) > 0) {
		return fmt.Errorf("-namespace and -use require -comment")
	}
	if opts.comment != "" && (opts.watch || opts.ui) {
		return fmt.Errorf("-comment cannot be combined with -watch or -ui")
	}
	return nil
}

// applyOptions lets command-line flags override the loaded config.
func applyOptions(opts cliOptions, cfg *config.Config) {
	if len(opts.args) > 0 {
		cfg.Paths = opts.args
	}
	if opts.format != "" {
		cfg.Output.Format = opts.format
	}
	if opts.outPath != "" {
		cfg.Output.Path = opts.outPath
	}
	if opts.history {
		cfg.History.Enabled = true
	}
	if opts.metricsAddr != "" {
		cfg.Observability.MetricsAddr = opts.metricsAddr
	}
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err == nil {
		return cfg, nil
	}
	if path == defaultConfigPath && errors.IsCode(err, errors.CodeNotFound) {
		slog.Debug("no config file found, using defaults", "path", path)
		return config.DefaultConfig(), nil
	}
	return nil, err
}

func writeReport(cfg *config.Config, result ports.ScanResult, stdout io.Writer) error {
	root := ""
	if len(cfg.Paths) == 1 {
		if abs, err := filepath.Abs(cfg.Paths[0]); err == nil {
			root = abs
		}
	}

	out, err := formats.Generate(cfg.Output.Format, result, formats.Options{ProjectRoot: root})
	if err != nil {
		return err
	}

	if cfg.Output.Path == "" {
		_, err := io.WriteString(stdout, out)
		return err
	}
	if err := util.WriteFileWithDirs(cfg.Output.Path, []byte(out), 0o644); err != nil {
		return errors.AddContext(err, errors.CtxPath, cfg.Output.Path)
	}
	slog.Info("report written", "path", cfg.Output.Path, "format", cfg.Output.Format)
	return nil
}

func startWatcher(cfg *config.Config, onChange func([]string)) (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(cfg.Watch.Debounce, cfg.Scan.ExcludeDirs, cfg.Scan.ExcludeFiles, onChange)
	if err != nil {
		return nil, err
	}
	w.SetExtensions(cfg.Scan.Extensions)
	w.SetLimiter(util.NewLimiter(cfg.Watch.MaxRescansPerSecond, cfg.Watch.Burst))

	if err := w.Watch(util.UniqueScanRoots(cfg.Paths)); err != nil {
		_ = w.Close()
		return nil, err
	}
	slog.Info("watching for changes", "paths", cfg.Paths)
	return w, nil
}

func configureLogging(stderr io.Writer, uiMode, verbose bool) func() {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}

	output := stderr
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "doctypes", "doctypes.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "doctypes", "doctypes.log")
	}

	return "doctypes.log"
}
