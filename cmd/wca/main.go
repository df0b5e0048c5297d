package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/config"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/logging"
	"github.com/spf13/cobra"
)

var version = "dev"

// cfg is loaded once by the root command before any subcommand runs.
var cfg *config.Config

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "wca",
		Short:         "WhatsApp chat analyzer - statistics, sentiment and relationship patterns from chat exports",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = c
			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			return logging.Init(logging.Options{Level: level, File: cfg.LogFile})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Close()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(participantsCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(historyCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(schemaCmd())
	rootCmd.AddCommand(doctorCmd())
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
