package llm

import (
	"context"
	"sync"
)

// MockClient is a deterministic generator for tests.
type MockClient struct {
	// Response is returned by Generate unless Error is set.
	Response string

	// Error, if set, is returned by Generate instead of a response.
	Error error

	mu       sync.Mutex
	requests []GenerateRequest
}

func NewMockClient(response string) *MockClient {
	return &MockClient{Response: response}
}

func NewMockClientWithError(err error) *MockClient {
	return &MockClient{Error: err}
}

func (m *MockClient) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Error != nil {
		return "", m.Error
	}
	return m.Response, nil
}

// Requests returns every request seen so far.
func (m *MockClient) Requests() []GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateRequest(nil), m.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (m *MockClient) LastRequest() GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return GenerateRequest{}
	}
	return m.requests[len(m.requests)-1]
}
