package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// scanCmd lists the exports waiting in the incoming directory.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List booking exports waiting in the incoming directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := loadApplication()
		if err != nil {
			return err
		}
		defer app.Close()

		files, err := app.files.DiscoverInputFiles()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(files) == 0 {
			fmt.Fprintln(out, "No CSV files found in the incoming directory.")
			return nil
		}
		for _, name := range files {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
