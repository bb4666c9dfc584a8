package main

import (
	"fmt"
	"os"

	"datacleaner/internal"
	"datacleaner/internal/config"
	"datacleaner/internal/container"
	"datacleaner/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   "cli <input-path> <output-path>",
		Short: "Clean a CSV or Excel file",
		Long: `Load a CSV or Excel file, fill missing values (median for numeric
columns, mode otherwise), remove duplicate rows, standardize date columns and
save the result.

Example: cli raw.xlsx cleaned.csv --log-level DEBUG`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args[0], args[1], logLevel)
		},
	}

	cmd.Flags().StringVar(&logLevel, "log-level", "", "Logging level (DEBUG, INFO, WARNING, ERROR)")

	return cmd
}

func runClean(cmd *cobra.Command, input, output, levelFlag string) error {
	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg, err := config.LoadWithLogLevel(levelFlag)
	if err != nil {
		return err
	}
	level, err := internal.ParseLogLevel(cfg.Logging.Level)
	if err != nil {
		return err
	}

	c, err := container.NewWithLogFile(cfg, level)
	if err != nil {
		return err
	}
	defer c.Shutdown(cmd.Context())

	if _, err := c.Service.Run(cmd.Context(), input, output); err != nil {
		return fmt.Errorf("data cleaning failed [%s]: %w", errors.GetCode(err), err)
	}
	return nil
}
