// =============================================================================
// Booking Invoicer - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   invoicer validate
//
// Loads the booking settings and payload template and reports every problem
// found. Exits with an error when any problem is an error; warnings alone
// pass.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/booking-invoicer/internal/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the booking settings and payload template",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApplication()
		if err != nil {
			return err
		}
		defer app.Close()

		settings, _, result, err := app.loadPipelineInputs()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Settings: %s\n", app.cfg.SettingsFile)
		fmt.Fprintf(out, "Template: %s\n", app.cfg.TemplateFile)
		fmt.Fprintf(out, "Endpoint: %s\n\n", settings.APIEndpoint)
		fmt.Fprint(out, validation.FormatErrors(result.Errors))
		if len(result.Errors) == 0 {
			fmt.Fprintln(out)
		}

		if !result.IsValid {
			return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
