// =============================================================================
// Booking Invoicer - Converter Module
// =============================================================================
//
// This module runs the batch for one booking export, from reading the file to
// moving it out of the incoming directory.
//
// BATCH PIPELINE:
//   1. Parse the export from the incoming directory
//   2. Check the header has 27 columns
//   3. Create the processed and payloads directories
//   4. For each data row, in file order:
//        a. Skip rows without a numeric booking number
//        b. Transform the row into a payload
//        c. Save and submit the payload
//   5. Move the export to the processed directory
//
// Steps 1 to 3 are the only ones that abort a batch; the result is then a
// single file-level failure and nothing is written or sent. After that, each
// admitted row yields exactly one result and a bad row never stops the rows
// after it.
//
// CONCURRENCY:
//   Rows are handled strictly one after another: the submission of one row
//   finishes before the next row is transformed. Two processors must not run
//   against the same file at the same time.
//
// =============================================================================

package converter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/booking-invoicer/internal/csvparser"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
	"github.com/ginjaninja78/booking-invoicer/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of processing a single export.
type Result struct {
	// FileName is the base name of the export.
	FileName string

	// RunID identifies this batch in logs and reports.
	RunID string

	// Results holds one entry per admitted row, or a single file-level
	// failure. A failed move to processed appends one more file-level failure.
	Results []types.ProcessResult

	// FileError is the message of the file-level failure that aborted the
	// batch. Empty when rows were processed.
	FileError string

	// Moved is true when the export was moved to the processed directory.
	Moved bool

	StartedAt  time.Time
	FinishedAt time.Time

	Stats ProcessingStats
}

// ProcessingStats contains statistics about the batch.
type ProcessingStats struct {
	// Admitted is the number of rows with a valid booking number.
	Admitted int

	// Skipped is the number of data rows without a valid booking number.
	Skipped int

	// Succeeded is the number of bookings accepted by the endpoint.
	Succeeded int

	// Failed is the number of failure results, file-level ones included.
	Failed int
}

// =============================================================================
// PROCESSOR STRUCTURE
// =============================================================================

// PayloadSink saves and submits one payload and reports the outcome.
type PayloadSink interface {
	Deliver(ctx context.Context, bookingNumber string, payload *types.Document) types.ProcessResult
}

// Processor runs booking export batches.
type Processor struct {
	files       *utils.FileManager
	transformer *Transformer
	sink        PayloadSink
	logger      *logrus.Logger
}

// New creates a new Processor.
//
// PARAMETERS:
//   - files: Locates incoming exports and relocates finished ones.
//   - transformer: Builds payloads from rows.
//   - sink: Saves and submits payloads.
//   - logger: Receives batch logs.
func New(files *utils.FileManager, transformer *Transformer, sink PayloadSink, logger *logrus.Logger) *Processor {
	return &Processor{
		files:       files,
		transformer: transformer,
		sink:        sink,
		logger:      logger,
	}
}

// ProcessFile runs the batch for an export in the incoming directory and
// returns its ordered results.
func (p *Processor) ProcessFile(ctx context.Context, fileName string) []types.ProcessResult {
	return p.Run(ctx, fileName).Results
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the batch pipeline for the export named fileName.
//
// RETURNS:
//   - A Result with the per-row outcomes and statistics. Run never fails as a
//     whole; every problem is reported as a failure result.
func (p *Processor) Run(ctx context.Context, fileName string) Result {
	fileName = filepath.Base(fileName)
	path := p.files.IncomingPath(fileName)
	result := Result{
		FileName:  fileName,
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
	}
	log := p.logger.WithFields(logrus.Fields{
		"run_id": result.RunID,
		"file":   result.FileName,
	})

	log.Info("Processing file")

	// =========================================================================
	// FILE-LEVEL CHECKS
	// =========================================================================

	data, err := csvparser.ParseFile(path)
	if err != nil {
		return p.abort(log, result, fmt.Sprintf("Error processing file %s: %v", fileName, err))
	}

	if len(data.Rows) == 0 {
		return p.abort(log, result, fmt.Sprintf("File %s is empty", fileName))
	}

	if err := csvparser.ValidateColumnCount(data, fileName, csvparser.ExpectedColumns); err != nil {
		return p.abort(log, result, err.Error())
	}

	if err := p.files.EnsureOutputDirectories(); err != nil {
		return p.abort(log, result, fmt.Sprintf("Error processing file %s: %v", fileName, err))
	}

	// =========================================================================
	// ROWS
	// =========================================================================
	// Row 0 is the header and is never treated as data.

	for i, raw := range data.DataRows() {
		if !Admissible(raw) {
			result.Stats.Skipped++
			log.WithField("row", i+2).Debug("Skipping row without booking number")
			continue
		}

		result.Stats.Admitted++
		outcome := p.processRow(ctx, log, raw)
		result.add(outcome)
	}

	// =========================================================================
	// RELOCATION
	// =========================================================================

	if target, err := p.files.MoveToProcessed(path); err != nil {
		log.WithError(err).Error("Failed to move file to processed")
		result.add(types.FileFailure(fmt.Sprintf("Failed to move file %s to processed: %v", fileName, err)))
	} else {
		result.Moved = true
		log.WithField("path", target).Debug("Moved file to processed")
	}

	log.WithFields(logrus.Fields{
		"admitted":  result.Stats.Admitted,
		"succeeded": result.Stats.Succeeded,
		"failed":    result.Stats.Failed,
		"skipped":   result.Stats.Skipped,
	}).Info("Finished file")

	result.FinishedAt = time.Now()
	return result
}

// processRow transforms and delivers one admitted row.
func (p *Processor) processRow(ctx context.Context, log *logrus.Entry, raw []string) types.ProcessResult {
	bookingNumber := raw[colBookNumber]
	rowLog := log.WithField("booking", bookingNumber)

	row, err := NewBookingRow(raw)
	if err != nil {
		rowLog.WithError(err).Warn("Invalid booking row")
		return types.Failed(bookingNumber, fmt.Sprintf("Error processing booking %s: %v", bookingNumber, err))
	}

	conv, err := p.transformer.Transform(row)
	if err != nil {
		rowLog.WithError(err).Warn("Invalid booking row")
		return types.Failed(bookingNumber, fmt.Sprintf("Error processing booking %s: %v", bookingNumber, err))
	}

	rowLog.WithFields(logrus.Fields{
		"city_tax_subjects": conv.CityTaxSubjects,
		"city_tax_total":    conv.CityTaxTotal.String(),
	}).Debug("Computed city tax")

	return p.sink.Deliver(ctx, bookingNumber, &conv.Payload)
}

func (p *Processor) abort(log *logrus.Entry, result Result, message string) Result {
	log.Error(message)
	result.FileError = message
	result.add(types.FileFailure(message))
	result.FinishedAt = time.Now()
	return result
}

func (r *Result) add(outcome types.ProcessResult) {
	r.Results = append(r.Results, outcome)
	if outcome.Success {
		r.Stats.Succeeded++
	} else {
		r.Stats.Failed++
	}
}
