package mock

import (
	"context"
	"fmt"

	"github.com/phoenixvc/rooivalk-knowledge/ai"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, uses default canned behavior.
	CompleteFunc func(ctx context.Context, systemPrompt string, turns []ai.ConversationTurn, userPrompt string) (string, error)

	callCount int
}

// NewMockCompleter creates a mock completer with default canned behavior.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete returns a canned answer that echoes the prompt length, unless a
// custom CompleteFunc was injected.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt string, turns []ai.ConversationTurn, userPrompt string) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, turns, userPrompt)
	}

	return fmt.Sprintf("mock answer (%d turns, %d prompt chars) [1]", len(turns), len(userPrompt)), nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockCompleter) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}
