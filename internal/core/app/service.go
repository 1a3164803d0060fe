package app

import (
	"context"
	"doctypes/internal/core/ports"
	"doctypes/internal/shared/observability"
	"doctypes/internal/shared/util"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type analysisService struct {
	app *App
}

// NewAnalysisService returns the driving port backed by a.
func NewAnalysisService(a *App) ports.AnalysisService {
	return &analysisService{app: a}
}

func (s *analysisService) RunScan(ctx context.Context, req ports.ScanRequest) (ports.ScanResult, error) {
	return s.app.Scan(ctx, req.Paths)
}

type fileOutcome struct {
	path       string
	signatures []ports.Signature
	err        error
}

// Scan parses every supported file below paths and resolves the return types
// of each function and method found. Per-file failures are collected in the
// result; only walk errors and cancellation abort the scan.
func (a *App) Scan(ctx context.Context, paths []string) (ports.ScanResult, error) {
	if len(paths) == 0 {
		paths = a.Config.Paths
	}
	paths = util.UniqueScanRoots(paths)

	ctx, span := observability.Tracer.Start(ctx, "app.Scan")
	defer span.End()

	result := ports.ScanResult{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	span.SetAttributes(attribute.String("run.id", result.RunID))

	files, err := a.ScanDirectories(paths)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "walk failed")
		return ports.ScanResult{}, fmt.Errorf("scan directories: %w", err)
	}
	result.FilesScanned = len(files)

	for outcome := range a.processFiles(ctx, files) {
		if outcome.err != nil {
			observability.FilesParsedTotal.WithLabelValues("failed").Inc()
			slog.Warn("failed to process file", "path", outcome.path, "error", outcome.err)
			result.Failures = append(result.Failures, ports.FileFailure{Path: outcome.path, Error: outcome.err.Error()})
			continue
		}
		observability.FilesParsedTotal.WithLabelValues("ok").Inc()
		result.Signatures = append(result.Signatures, outcome.signatures...)
	}

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return ports.ScanResult{}, err
	}

	sortSignatures(result.Signatures)
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})

	result.Duration = time.Since(result.StartedAt)
	observability.ScanDuration.Observe(result.Duration.Seconds())
	span.SetAttributes(
		attribute.Int("scan.files", result.FilesScanned),
		attribute.Int("scan.signatures", len(result.Signatures)),
		attribute.Int("scan.failures", len(result.Failures)),
	)

	slog.Info("scan complete",
		"run_id", result.RunID,
		"files", result.FilesScanned,
		"signatures", len(result.Signatures),
		"failures", len(result.Failures),
		"duration", result.Duration,
	)

	if a.history != nil {
		if err := a.saveHistory(result); err != nil {
			// History is best effort; the scan itself succeeded.
			slog.Warn("failed to persist scan history", "run_id", result.RunID, "error", err)
		}
	}

	return result, nil
}

func (a *App) processFiles(ctx context.Context, files []string) <-chan fileOutcome {
	workers := a.Config.Scan.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan string)
	out := make(chan fileOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				sigs, err := a.ProcessFile(path)
				select {
				case out <- fileOutcome{path: path, signatures: sigs, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

func sortSignatures(sigs []ports.Signature) {
	sort.SliceStable(sigs, func(i, j int) bool {
		if sigs[i].File != sigs[j].File {
			return sigs[i].File < sigs[j].File
		}
		if sigs[i].Line != sigs[j].Line {
			return sigs[i].Line < sigs[j].Line
		}
		return sigs[i].Column < sigs[j].Column
	})
}
