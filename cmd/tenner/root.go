package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"svw.info/tenner/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tenner",
	Short: "Tenner is a constraint-based Tenner Grid solver",
	Long: `Tenner solves, validates, and generates Tenner Grid puzzles with a
finite-domain constraint solver (backtracking search with forward checking or
generalized arc consistency).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelStr, _ := cmd.Flags().GetString("log-level")
		level, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return fmt.Errorf("bad --log-level %q: %w", levelStr, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "debug|info|warn|error")
}
