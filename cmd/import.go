// =============================================================================
// Booking Invoicer - Import Command
// =============================================================================
//
// COMMAND USAGE:
//   invoicer import <file>...
//
// Copies booking exports into the incoming directory under their base names.
// The originals are left in place.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Copy booking exports into the incoming directory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApplication()
		if err != nil {
			return err
		}
		defer app.Close()

		for _, path := range args {
			name, err := app.files.ImportFile(path)
			if err != nil {
				return err
			}
			app.logger.WithField("file", name).Info("Imported export")
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
