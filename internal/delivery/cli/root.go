// Package cli implements the recipebox command line.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFlag   string
	logLevelFlag string
	formatFlag   string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "recipebox",
		Short: "Browse recipes and cache their photos",
		Long: `recipebox fetches the published recipe list, filters and pages it,
and serves recipe photos through a bounded on-disk cache.

Run "recipebox serve" to start the HTTP API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: ./config.yaml, ./config/config.yaml, /etc/recipebox/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error, off")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "text", "Output format: text, json, yaml")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewListCmd())
	rootCmd.AddCommand(NewCuisinesCmd())
	rootCmd.AddCommand(NewImageCmd())
	rootCmd.AddCommand(NewCacheCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
