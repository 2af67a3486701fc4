// =============================================================================
// Booking Invoicer - Main Entry Point
// =============================================================================
//
// USAGE:
//   invoicer init        - Create directories and default configuration
//   invoicer import      - Copy booking exports into the incoming directory
//   invoicer scan        - List exports waiting to be processed
//   invoicer process     - Convert and submit bookings
//   invoicer validate    - Check settings and payload template
//   invoicer report      - Show the results stored in an XLSX report
//   invoicer version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Core business logic (not for external import)
//   - pkg/           : Shared file utilities
//   - mocks/         : Test doubles for the pipeline interfaces
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/booking-invoicer/cmd"
)

func main() {
	cmd.Execute()
}
