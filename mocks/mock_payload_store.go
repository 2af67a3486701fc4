package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPayloadStore is a mock implementation of sink.PayloadStore.
type MockPayloadStore struct {
	mock.Mock
}

func (m *MockPayloadStore) Save(ctx context.Context, bookingNumber string, data []byte) (string, error) {
	args := m.Called(ctx, bookingNumber, data)
	return args.String(0), args.Error(1)
}
