package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/booking-invoicer/internal/report"
)

// reportCmd prints the per-booking results stored in an XLSX report.
var reportCmd = &cobra.Command{
	Use:   "report <report.xlsx>",
	Short: "Show the results stored in a batch report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := report.ReadResults(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		failed := 0
		for _, r := range results {
			if !r.Success {
				failed++
			}
			printResult(out, r)
		}
		fmt.Fprintf(out, "\n%d result(s), %d failed\n", len(results), failed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
