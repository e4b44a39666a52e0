package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cellsim/config"
	"github.com/kilianp07/cellsim/core/cell"
	"github.com/kilianp07/cellsim/core/telemetry"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load the configuration and build the cell without simulating it",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sel, err := cfg.Degradation.Selector()
	if err != nil {
		return err
	}
	model, err := cfg.Model.Build(cfg.Cell)
	if err != nil {
		return fmt.Errorf("diffusion model: %w", err)
	}
	c, err := cell.NewWithSelector(cfg.Cell, model, sel)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	req := c.StressRequirements()
	fmt.Fprintf(out, "cell %s is valid\n", cfg.Cell.Name)
	fmt.Fprintf(out, "  OCV %.4f V, R %.5f Ohm, %d radial nodes\n", c.OCV(), c.Resistance(), model.Order())
	fmt.Fprintf(out, "  stress: dai=%t laresgoiti=%t\n", req.NeedsDai(), req.NeedsLaresgoiti())
	fmt.Fprintf(out, "  recorders available: %v\n", telemetry.RecorderTypes())
	return nil
}
