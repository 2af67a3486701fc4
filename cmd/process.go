// =============================================================================
// Booking Invoicer - Process Command
// =============================================================================
//
// This file defines the 'process' command, which converts booking exports into
// invoices and submits them.
//
// COMMAND USAGE:
//   invoicer process [file...] [flags]
//
// FLAGS:
//   --json       : Print the results as JSON instead of text
//   --no-report  : Do not write XLSX reports
//
// PROCESSING PIPELINE:
//   1. Load app config, booking settings and payload template
//   2. Refuse to start if settings or template have errors
//   3. Pick the named exports, or every export in incoming
//   4. For each export, one after another:
//      a. Run the batch (parse, transform, save, submit, move)
//      b. Write the XLSX report
//   5. Write the processing summary
//
// Failed bookings do not make the command fail; they are listed in the
// output, the reports and the summary.
//
// =============================================================================

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/booking-invoicer/internal/converter"
	"github.com/ginjaninja78/booking-invoicer/internal/report"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
	"github.com/ginjaninja78/booking-invoicer/internal/validation"
	"github.com/ginjaninja78/booking-invoicer/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// jsonOutput prints results as JSON.
var jsonOutput bool

// noReport disables XLSX reports for this run.
var noReport bool

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process [file...]",
	Short: "Convert booking exports into invoices and submit them",
	Long: `The process command runs every named export (or, without arguments, every
.csv file in the incoming directory) through the invoicing pipeline.

Rows are handled one at a time. Rows without a numeric booking number are
skipped. Every other row produces one result: either the invoice was accepted
by the API (HTTP 200) or the reason it was not.

After its rows are done, each export is moved to the processed directory, even
when some bookings failed. An export with the wrong number of columns, or that
cannot be parsed, is reported as a single failure and left in incoming.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().BoolVar(
		&jsonOutput,
		"json",
		false,
		"Print results as JSON",
	)

	processCmd.Flags().BoolVar(
		&noReport,
		"no-report",
		false,
		"Do not write XLSX result reports",
	)
}

// fileResults is the JSON output for one export.
type fileResults struct {
	File    string                `json:"file"`
	RunID   string                `json:"runId"`
	Results []types.ProcessResult `json:"results"`
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	// =========================================================================
	// STEP 1: LOAD CONFIGURATION
	// =========================================================================

	app, err := loadApplication()
	if err != nil {
		return err
	}
	defer app.Close()

	settings, template, check, err := app.loadPipelineInputs()
	if err != nil {
		return err
	}
	for _, problem := range check.Errors {
		if problem.Severity == validation.SeverityWarning {
			app.logger.Warn(problem.Error())
		}
	}
	if !check.IsValid {
		fmt.Fprint(cmd.ErrOrStderr(), validation.FormatErrors(check.Errors))
		return fmt.Errorf("settings or template are invalid; run 'invoicer validate' for details")
	}

	processor, err := app.newProcessor(ctx, settings, template)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 2: SELECT INPUT FILES
	// =========================================================================

	files := args
	if len(files) == 0 {
		files, err = app.files.DiscoverInputFiles()
		if err != nil {
			return err
		}
	}

	if len(files) == 0 {
		if jsonOutput {
			fmt.Fprintln(out, "[]")
		} else {
			fmt.Fprintln(out, "No CSV files found in the incoming directory.")
		}
		return nil
	}

	// =========================================================================
	// STEP 3: PROCESS FILES SEQUENTIALLY
	// =========================================================================

	writeReports := app.cfg.ReportEnabled() && !noReport
	summary := utils.ProcessingSummary{StartTime: time.Now()}
	var collected []fileResults

	for _, name := range files {
		result := processor.Run(ctx, name)

		fileSummary := utils.FileSummary{
			FileName:  result.FileName,
			RunID:     result.RunID,
			Admitted:  result.Stats.Admitted,
			Succeeded: result.Stats.Succeeded,
			Failed:    result.Stats.Failed,
			Skipped:   result.Stats.Skipped,
			FileError: result.FileError,
		}

		if writeReports {
			path, err := report.WriteXLSX(app.cfg.ReportsDir, result)
			if err != nil {
				app.logger.WithError(err).WithField("file", result.FileName).Warn("Failed to write report")
			} else {
				fileSummary.ReportPath = path
			}
		}

		summary.Files = append(summary.Files, fileSummary)
		collected = append(collected, fileResults{File: result.FileName, RunID: result.RunID, Results: result.Results})

		if !jsonOutput {
			printFileResult(out, result, fileSummary.ReportPath)
		}
	}

	summary.EndTime = time.Now()

	// =========================================================================
	// STEP 4: SUMMARY
	// =========================================================================

	if path, err := utils.WriteSummaryLog(summary, app.cfg.ReportsDir); err != nil {
		app.logger.WithError(err).Warn("Failed to write processing summary")
	} else {
		app.logger.WithField("path", path).Debug("Wrote processing summary")
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(collected)
	}

	admitted, succeeded, failed := summary.Totals()
	fmt.Fprintln(out, "\n=== Processing Complete ===")
	fmt.Fprintf(out, "Files:        %d\n", len(summary.Files))
	fmt.Fprintf(out, "Bookings:     %d\n", admitted)
	fmt.Fprintf(out, "Submitted:    %d\n", succeeded)
	fmt.Fprintf(out, "Failed:       %d\n", failed)
	fmt.Fprintf(out, "Time elapsed: %s\n", summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond))

	return nil
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printFileResult(out io.Writer, result converter.Result, reportPath string) {
	fmt.Fprintf(out, "%s (run %s)\n", result.FileName, result.RunID)
	for _, r := range result.Results {
		printResult(out, r)
	}
	if result.Stats.Skipped > 0 {
		fmt.Fprintf(out, "  - %d row(s) skipped without booking number\n", result.Stats.Skipped)
	}
	if reportPath != "" {
		fmt.Fprintf(out, "  Report: %s\n", reportPath)
	}
}

func printResult(out io.Writer, r types.ProcessResult) {
	mark := "✗"
	if r.Success {
		mark = "✓"
	}
	fmt.Fprintf(out, "  %s %s\n", mark, r.Message)
}
