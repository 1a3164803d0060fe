package cli

import (
	"context"
	"doctypes/internal/core/config"
	"doctypes/internal/core/ports"
	"errors"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

// runUI shows the latest scan and rescans on file changes until the user
// quits or ctx is cancelled.
func runUI(ctx context.Context, cfg *config.Config, analysis ports.AnalysisService, health *healthState, initial ports.ScanResult) error {
	var p *tea.Program

	rescan := func() {
		result, err := analysis.RunScan(ctx, ports.ScanRequest{Paths: cfg.Paths})
		if err == nil {
			health.record(result)
		}
		p.Send(updateMsg{result: result, err: err})
	}

	p = tea.NewProgram(initialModel(initial, rescan), tea.WithAltScreen(), tea.WithContext(ctx))

	w, err := startWatcher(cfg, func(paths []string) {
		slog.Info("changes detected", "files", len(paths))
		rescan()
	})
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
