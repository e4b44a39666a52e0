// Package app wires a configuration into a runnable simulation.
package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/cellsim/config"
	"github.com/kilianp07/cellsim/core/cell"
	"github.com/kilianp07/cellsim/core/cycler"
	"github.com/kilianp07/cellsim/core/telemetry"
	"github.com/kilianp07/cellsim/infra/logger"
	infratelemetry "github.com/kilianp07/cellsim/infra/telemetry"
)

// Service owns the cells of one run and the recorders they report to.
type Service struct {
	IDs      []string
	Cells    []*cell.Cell
	Runner   *cycler.Runner
	profile  cycler.Profile
	recorder telemetry.Recorder
	log      logger.Logger
	promAddr string
}

// New builds every cell of cfg on a single shared diffusion model.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service", cfg.Logging.Verbosity)

	sel, err := cfg.Degradation.Selector()
	if err != nil {
		return nil, err
	}
	model, err := cfg.Model.Build(cfg.Cell)
	if err != nil {
		return nil, fmt.Errorf("diffusion model: %w", err)
	}

	ids := cfg.Simulation.CellIDs()
	cells := make([]*cell.Cell, len(ids))
	for i, id := range ids {
		c, err := cell.NewWithSelector(cfg.Cell, model, sel, cell.WithLogger(logger.New(id, cfg.Logging.Verbosity)))
		if err != nil {
			return nil, fmt.Errorf("cell %s: %w", id, err)
		}
		cells[i] = c
	}

	rec, err := telemetry.NewRecorder(cfg.Telemetry.Sinks)
	if err != nil {
		return nil, fmt.Errorf("telemetry: %w", err)
	}
	every := cfg.Simulation.RecordEvery
	if every == 0 {
		every = cfg.Telemetry.Every
	}
	runner := cycler.NewRunner(cfg.Simulation.Dt, rec, every, logg)
	logg.Infof("run %s: %d %s cells, degradation sei=%v cracking=%v lam=%v plating=%s",
		runner.RunID, len(cells), cfg.Cell.Name, sel.SEI, sel.Cracking, sel.LAM, sel.Plating)

	return &Service{
		IDs:      ids,
		Cells:    cells,
		Runner:   runner,
		profile:  cfg.Simulation.Cycler,
		recorder: rec,
		log:      logg,
		promAddr: cfg.Simulation.PrometheusAddr,
	}, nil
}

// Run simulates all cells until the profile completes or ctx is canceled.
func (s *Service) Run(ctx context.Context) ([]cycler.Result, error) {
	if s.promAddr != "" {
		promCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := infratelemetry.StartPromServer(promCtx, s.promAddr, prometheus.DefaultGatherer); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	return s.Runner.RunFleet(ctx, s.IDs, s.Cells, s.profile)
}

// Close releases the recorders.
func (s *Service) Close() error {
	return s.recorder.Close()
}
