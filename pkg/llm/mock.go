package llm

import "context"

// MockCompletionClient is a configurable mock for testing generation flows.
// Set the function fields to control behavior in tests.
type MockCompletionClient struct {
	// CompleteFunc is called when Complete is invoked.
	// If nil, returns empty text and nil error.
	CompleteFunc func(ctx context.Context, prompt, model string, temperature float64) (string, error)

	// ProviderName is returned by Provider. Defaults to "mock".
	ProviderName string

	// Call tracking for verification
	CompleteCalls int
	LastPrompt    string
	LastModel     string
}

// NewMockCompletionClient creates a new mock with sensible defaults.
func NewMockCompletionClient() *MockCompletionClient {
	return &MockCompletionClient{ProviderName: "mock"}
}

// Complete implements CompletionClient.
func (m *MockCompletionClient) Complete(ctx context.Context, prompt, model string, temperature float64) (string, error) {
	m.CompleteCalls++
	m.LastPrompt = prompt
	m.LastModel = model
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, model, temperature)
	}
	return "", nil
}

// Provider implements CompletionClient.
func (m *MockCompletionClient) Provider() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// Reset clears call tracking.
func (m *MockCompletionClient) Reset() {
	m.CompleteCalls = 0
	m.LastPrompt = ""
	m.LastModel = ""
}
