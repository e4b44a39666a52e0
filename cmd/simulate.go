package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cellsim/app"
	"github.com/kilianp07/cellsim/config"
	"github.com/kilianp07/cellsim/infra/logger"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Cycle the configured cells and report their degradation",
	RunE:  runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main", cfg.Logging.Verbosity).Errorf("service close: %v", err)
		}
	}()

	results, err := svc.Run(ctx)
	out := cmd.OutOrStdout()
	for i, r := range results {
		if r.CellID == "" {
			continue
		}
		ini := svc.Cells[i].InitialState()
		fmt.Fprintf(out, "%s: %d steps, %.0f s, %.3f Ah throughput, V=%.4f V\n", r.CellID, r.Steps, r.SimTime, r.Charge, r.Voltage)
		fmt.Fprintf(out, "  SEI %.4e -> %.4e m, cracks %.4e -> %.4e m2, LLI %.4e Ah, R %.5f Ohm\n",
			ini.SEIThickness, r.Final.SEIThickness, ini.CrackArea, r.Final.CrackArea, r.Final.LostLithium, svc.Cells[i].Resistance())
	}
	return err
}
