// =============================================================================
// Booking Invoicer - Payload Sink
// =============================================================================
//
// The sink delivers one payload: it serializes the document, saves it under
// the booking number, then submits the same bytes to the invoicing endpoint.
// The save always happens first, so a payload file exists even for bookings
// whose submission fails.
//
// Only HTTP 200 counts as success. There are no retries.
//
// =============================================================================

package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ginjaninja78/booking-invoicer/internal/config"
	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// Sink persists and submits invoice payloads.
type Sink struct {
	store     PayloadStore
	submitter Submitter
	settings  *config.Settings
	logger    *logrus.Logger
}

// New creates a Sink.
//
// PARAMETERS:
//   - store: Where serialized payloads are saved.
//   - submitter: How payloads reach the endpoint.
//   - settings: Endpoint URL and the verbatim header values.
//   - logger: Receives per-booking delivery logs.
func New(store PayloadStore, submitter Submitter, settings *config.Settings, logger *logrus.Logger) *Sink {
	return &Sink{
		store:     store,
		submitter: submitter,
		settings:  settings,
		logger:    logger,
	}
}

// Deliver saves and submits one payload and reports the outcome. It never
// returns an error: every failure becomes an unsuccessful result.
func (s *Sink) Deliver(ctx context.Context, bookingNumber string, payload *types.Document) types.ProcessResult {
	log := s.logger.WithField("booking", bookingNumber)

	data, err := MarshalPayload(payload)
	if err != nil {
		return types.Failed(bookingNumber, fmt.Sprintf("Error processing booking %s: %v", bookingNumber, err))
	}

	location, err := s.store.Save(ctx, bookingNumber, data)
	if err != nil {
		return types.Failed(bookingNumber, fmt.Sprintf("Error processing booking %s: %v", bookingNumber, err))
	}
	log.WithField("path", location).Debug("Saved payload")

	resp, err := s.submitter.Submit(ctx, s.settings.APIEndpoint, s.headers(), data)
	if err != nil {
		log.WithError(err).Error("Submission failed")
		return types.Failed(bookingNumber, fmt.Sprintf("Failed to submit booking %s: %v", bookingNumber, err))
	}

	if resp.StatusCode != 200 {
		log.WithField("status", resp.StatusCode).Warn("Endpoint rejected payload")
		return types.Failed(bookingNumber, fmt.Sprintf("Failed to process booking %s. Status: %d. Response: %s",
			bookingNumber, resp.StatusCode, resp.Body))
	}

	log.Info("Booking submitted")
	return types.Succeeded(bookingNumber, fmt.Sprintf("Successfully processed booking %s", bookingNumber))
}

func (s *Sink) headers() map[string]string {
	return map[string]string{
		"Authorization": s.settings.AuthHeader,
		"Content-Type":  s.settings.ContentType,
	}
}

// MarshalPayload renders a payload as JSON indented by two spaces, with no
// trailing newline and without HTML escaping.
func MarshalPayload(payload *types.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
