package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ginjaninja78/booking-invoicer/internal/types"
)

// MockPayloadSink is a mock implementation of converter.PayloadSink.
type MockPayloadSink struct {
	mock.Mock
}

func (m *MockPayloadSink) Deliver(ctx context.Context, bookingNumber string, payload *types.Document) types.ProcessResult {
	args := m.Called(ctx, bookingNumber, payload)
	return args.Get(0).(types.ProcessResult)
}
