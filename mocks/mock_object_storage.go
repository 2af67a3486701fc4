package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ginjaninja78/booking-invoicer/internal/storage"
)

// MockObjectStorage is a mock implementation of storage.ObjectStorage.
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, input storage.UploadInput) (*storage.UploadOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadOutput), args.Error(1)
}
