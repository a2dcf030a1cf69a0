package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nexoventlabs/business-tracker/internal/config"
	"github.com/nexoventlabs/business-tracker/pkg/logger"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bizcheck",
		Short:         "Operator tools for the business-tracker MongoDB store",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(exportCmd())
	return rootCmd
}

// loadConfig reads configuration and applies the --log-level override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Log.Level
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		level = v
	}
	logger.Init(level)
	logger.SetFormat(cfg.Log.Format)
	return cfg, nil
}
