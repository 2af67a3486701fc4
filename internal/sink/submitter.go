package sink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is what the remote endpoint answered to a submission.
type Response struct {
	StatusCode int
	Body       string
}

// Submitter sends one serialized payload to the remote endpoint.
type Submitter interface {
	Submit(ctx context.Context, url string, headers map[string]string, body []byte) (*Response, error)
}

// HTTPSubmitter submits payloads with a single POST request. It never retries.
type HTTPSubmitter struct {
	client *http.Client
}

// NewHTTPSubmitter creates an HTTPSubmitter whose requests time out after
// timeout.
func NewHTTPSubmitter(timeout time.Duration) *HTTPSubmitter {
	return &HTTPSubmitter{client: &http.Client{Timeout: timeout}}
}

// Submit POSTs body to url. Header values are sent exactly as given.
//
// RETURNS:
//   - The status code and body text of any HTTP response, whatever the status.
//   - An error only when no response was received.
func (s *HTTPSubmitter) Submit(ctx context.Context, url string, headers map[string]string, body []byte) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(respBody)}, nil
}
