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


// Package ai provides abstractions for the external AI services the
// knowledge engine consumes.
//
// This package defines interfaces for text embedding and answer completion.
// It follows the dependency inversion principle, allowing the retrieval and
// synthesis logic to depend on abstractions rather than concrete providers.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Embedder: Converts text to fixed-dimension vectors
//   - Completer: Generates answer text from a prompt
//   - Provider: Aggregates AI services for convenient initialization
//
// Both services are consumed as black boxes: the engine assumes nothing about
// the models beyond the interface contracts, and provider failures (timeouts,
// throttling) surface as core.ProviderError values that the caller may retry
// with backoff.
//
// # Implementation Packages
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public production constructors (openai.NewProvider, openai.NewEmbedder)
// return INTERFACE types to enforce abstraction:
//
//	provider, err := openai.NewProvider(config) // returns ai.Provider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockCompleter)
// return CONCRETE types so tests can inject behavior and assert call counts.
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vector, err := provider.Embedder().EmbedText(ctx, "drone detection accuracy")
package ai
