package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "cellsim",
	Short:         "Lithium-ion cell degradation simulator",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json); the built-in preset is used when empty")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
