package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

const mockModelID = "mock"

// MockResponse scripts a single Generate call: a raw JSON payload on
// success, or an error to return instead.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays a fixed script of responses in order and records
// every request it sees. Once the script runs out, further calls fail,
// which keeps tests honest about how many calls they expect.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{Err: errors.New("mock script exhausted")}
	}
	next := m.script[0]
	m.script = m.script[1:]

	if next.Err != nil {
		return nil, next.Err
	}

	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      mockModelID,
		StopReason: StopReasonEnd,
	}, nil
}

func (m *MockProvider) ModelID() string { return mockModelID }

// CallCount reports how many times Generate was invoked.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
