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


package core

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Input errors are reported to the caller immediately
// and are never retried. Provider errors originate at an external service
// boundary and are retryable at the caller's discretion.
var (
	// ErrInvalidInput indicates an empty or malformed query or document.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a query with no content after trimming.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrEmptyDocumentID indicates a document with no identifier.
	ErrEmptyDocumentID = errors.New("document id cannot be empty")

	// ErrInvalidDocumentID indicates a document identifier containing
	// characters reserved by the storage key encoding.
	ErrInvalidDocumentID = errors.New("document id contains invalid characters")

	// ErrInvalidChunk indicates a DocumentChunk that violates its invariants.
	ErrInvalidChunk = errors.New("invalid document chunk")

	// ErrNotFound indicates an operation referencing an unknown document.
	ErrNotFound = errors.New("document not found")
)

// ProviderError wraps a failure from an external gateway (embedding or
// completion service). Provider errors, including timeouts and throttling,
// are surfaced to the immediate caller and may be retried with backoff at the
// caller's discretion; the core never retries them past the ingestion
// pipeline's own bounded backoff.
type ProviderError struct {
	Provider string // "openai", "mock", ...
	Op       string // "embed", "complete", ...
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err as a provider-boundary failure.
func NewProviderError(provider, op string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, Err: err}
}

// IsProviderError reports whether err originated at a provider boundary.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
