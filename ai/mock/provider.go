// Copyright 2025 Phoenix VC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mock

import (
	"github.com/phoenixvc/rooivalk-knowledge/ai"
)

// MockProvider implements ai.Provider for testing.
type MockProvider struct {
	embedder  ai.Embedder
	completer ai.Completer
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:  NewMockEmbedder(),
		completer: NewMockCompleter(),
	}
}

// NewMockProviderWithServices creates a provider with the given services.
// Pass nil to use a default mock for that service.
func NewMockProviderWithServices(embedder ai.Embedder, completer ai.Completer) ai.Provider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if completer == nil {
		completer = NewMockCompleter()
	}
	return &MockProvider{embedder: embedder, completer: completer}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Completer returns the mock completion service.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// Close is a no-op for the mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the underlying MockEmbedder for test assertions.
// Returns nil if a non-mock embedder was injected.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	if m, ok := p.embedder.(*MockEmbedder); ok {
		return m
	}
	return nil
}

// GetMockCompleter returns the underlying MockCompleter for test assertions.
// Returns nil if a non-mock completer was injected.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	if m, ok := p.completer.(*MockCompleter); ok {
		return m
	}
	return nil
}
