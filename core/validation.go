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
	"fmt"
	"strings"
)

// ValidateQuery validates raw query text.
//
// Validation rules:
//   - Query must contain non-whitespace content
//
// A query with no keyword-length tokens is still valid; the keyword scorer
// degrades to a zero score for it rather than failing.
func ValidateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyQuery)
	}
	return nil
}

// ValidateDocument validates a Document prior to ingestion.
//
// Validation rules:
//   - ID must not be empty
//   - ID must not contain NUL (reserved by the storage key encoding)
//
// NOT validated:
//   - Content (an empty body is legal; it produces zero chunks and is
//     reported to the caller rather than silently dropped)
//   - Title and Category (defaulted during ingestion)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidInput)
	}
	if doc.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrEmptyDocumentID)
	}
	if strings.ContainsRune(doc.ID, 0) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidDocumentID)
	}
	return nil
}

// ValidateChunk validates a DocumentChunk according to its invariants.
//
// Validation rules:
//   - DocID and ChunkID must not be empty
//   - 0 <= Ordinal < TotalChunks
//   - Text must not be empty
//
// NOT validated (populated by the pipeline):
//   - Vector (can be empty until the embedding step runs)
func ValidateChunk(chunk *DocumentChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}
	if chunk.DocID == "" || chunk.ChunkID == "" {
		return fmt.Errorf("%w: missing identity", ErrInvalidChunk)
	}
	if chunk.Ordinal < 0 || chunk.Ordinal >= chunk.TotalChunks {
		return fmt.Errorf("%w: ordinal %d out of range [0,%d)", ErrInvalidChunk, chunk.Ordinal, chunk.TotalChunks)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidChunk)
	}
	return nil
}
