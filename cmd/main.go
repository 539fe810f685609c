package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "scheduler",
		Short:         "SMC event scheduler: academic calendar constraints, slot validation and weekly optimization",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to TOML config")

	root.AddCommand(
		newServeCmd(&configPath),
		newValidateCalendarCmd(&configPath),
		newBlackoutsCmd(&configPath),
	)
	return root
}
