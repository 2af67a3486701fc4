// =============================================================================
// Booking Invoicer - Init Command
// =============================================================================
//
// COMMAND USAGE:
//   invoicer init
//
// Creates the data directories and writes the default app.yaml, booking
// settings and payload template. Existing files are left untouched, so init
// is safe to run again.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create directories and default configuration files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := config.LoadAppConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load app config: %w", err)
	}

	dirs := append(cfg.Directories(), filepath.Dir(cfg.LogFile))
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	fmt.Fprintf(out, "Data directory ready: %s\n", cfg.DataDir)

	created, err := config.ProvisionDefaults(cfgFile, cfg)
	if err != nil {
		return fmt.Errorf("failed to provision defaults: %w", err)
	}

	if len(created) == 0 {
		fmt.Fprintln(out, "Configuration files already exist; nothing to create.")
		return nil
	}
	for _, path := range created {
		fmt.Fprintf(out, "Created %s\n", path)
	}
	fmt.Fprintln(out, "Edit the settings file before running 'invoicer process'.")
	return nil
}
