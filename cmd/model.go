package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/cellsim/config"
	"github.com/kilianp07/cellsim/core/diffusion"
)

var (
	modelOrder int
	modelOut   string
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Diffusion discretization commands",
}

var modelGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a finite volume discretization for the configured cell",
	RunE:  runModelGenerate,
}

func init() {
	modelGenerateCmd.Flags().IntVar(&modelOrder, "order", 0, "radial nodes per particle (defaults to the cell order)")
	modelGenerateCmd.Flags().StringVarP(&modelOut, "out", "o", "model.json", "output file")
	modelCmd.AddCommand(modelGenerateCmd)
	rootCmd.AddCommand(modelCmd)
}

func runModelGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	order := modelOrder
	if order == 0 {
		order = cfg.Cell.Order
	}
	m, err := diffusion.FiniteVolume(order, cfg.Cell.Rp, cfg.Cell.Rn)
	if err != nil {
		return err
	}
	if err := diffusion.Save(modelOut, m); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d node model for Rp=%g m, Rn=%g m to %s\n", order, cfg.Cell.Rp, cfg.Cell.Rn, modelOut)
	return nil
}
