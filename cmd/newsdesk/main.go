// Package main is the entry point for the newsdesk article service. The
// default command loads configuration, opens the store, sets up routing
// and starts the HTTP server with graceful shutdown support.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "newsdesk",
	Short:         "News article CRUD service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runServe()
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending PostgreSQL migrations and exit",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert the sample articles into an empty store",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runSeed(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Print the API routes as Markdown",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runRoutes(cmd.OutOrStdout())
			},
		},
	)
}

func main() {
	// Structured logger, text output at debug level.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("newsdesk failed", "error", err)
		os.Exit(1)
	}
}
