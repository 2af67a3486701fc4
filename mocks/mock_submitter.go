package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/ginjaninja78/booking-invoicer/internal/sink"
)

// MockSubmitter is a mock implementation of sink.Submitter.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, url string, headers map[string]string, body []byte) (*sink.Response, error) {
	args := m.Called(ctx, url, headers, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sink.Response), args.Error(1)
}
