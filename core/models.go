package core

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint is a content-derived hash used to detect unchanged documents.
type Fingerprint uint64

// FingerprintFromContent generates a deterministic fingerprint from text content
// using BLAKE2b hashing. Identical content always produces an identical
// fingerprint, which lets reindexing skip documents whose bodies have not changed.
func FingerprintFromContent(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// ChunkIDFor derives the stable chunk identifier from the owning document's ID
// and the chunk's ordinal position.
func ChunkIDFor(docID string, ordinal int) string {
	return fmt.Sprintf("%s#%d", docID, ordinal)
}

// Document is the unit of ingestion: a raw body plus caller-supplied metadata.
// The body may carry YAML frontmatter, which the ingestion layer parses against
// a strict schema; frontmatter fields override the caller-supplied ones.
type Document struct {
	ID       string
	Title    string
	Content  string
	Category string
	Tags     []string
}

// DocumentChunk is the atomic unit of retrieval: a bounded-length passage
// extracted from a document. Chunks are immutable once written; a reindex
// replaces the full chunk set for a document rather than mutating it.
type DocumentChunk struct {
	ChunkID      string
	DocID        string
	Title        string
	SectionLabel string // nearest heading, or "Content" when the document has none
	Text         string
	Ordinal      int // position within the document, 0-based
	TotalChunks  int // sibling count, invariant: 0 <= Ordinal < TotalChunks
	Category     string
	Vector       []float32 // embedding vector, populated by the ingestion pipeline
}

// IndexMetadata is the per-document summary record. One record exists per
// indexed document, including documents whose bodies produced zero chunks.
type IndexMetadata struct {
	DocID       string
	Title       string
	Category    string
	Tags        []string
	ChunkCount  int
	ContentHash Fingerprint
	IndexedAt   time.Time
}

// ResultSource identifies which retriever produced a search result.
type ResultSource int

const (
	// SourceVector marks results from cosine-similarity search. Scores are in [-1, 1].
	SourceVector ResultSource = iota + 1
	// SourceKeyword marks results from lexical term scoring. Scores are in [0, 1].
	SourceKeyword
)

// String returns the source name for logging and CLI output.
func (s ResultSource) String() string {
	switch s {
	case SourceVector:
		return "vector"
	case SourceKeyword:
		return "keyword"
	default:
		return "unknown"
	}
}

// SearchResult is a transient, per-query reference to a chunk with a
// producer-specific relevance score. It references a chunk by (DocID, ChunkID)
// but does not own it.
type SearchResult struct {
	DocID        string
	ChunkID      string
	Title        string
	SectionLabel string
	Text         string
	Score        float64
	Source       ResultSource
}

// ScoreBreakdown records the weighted components of a fused score. All three
// components are non-negative and their sum, clamped to 1, equals the
// combined score.
type ScoreBreakdown struct {
	VectorComponent  float64
	KeywordComponent float64
	ExactMatchBonus  float64
}

// HybridResult extends SearchResult with the fused score produced by
// reciprocal rank fusion. CombinedScore is always in [0, 1].
type HybridResult struct {
	SearchResult
	CombinedScore float64
	Breakdown     ScoreBreakdown
}

// ConfidenceLevel is a coarse indicator of retrieval quality for a query.
// It is advisory metadata attached to downstream answers, not a hard gate.
type ConfidenceLevel int

const (
	// ConfidenceLow indicates weak or empty retrieval results.
	ConfidenceLow ConfidenceLevel = iota + 1
	// ConfidenceMedium indicates moderately strong top results.
	ConfidenceMedium
	// ConfidenceHigh indicates strong agreement among top results.
	ConfidenceHigh
)

// String returns the label consumed by the answer-synthesis layer.
func (c ConfidenceLevel) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// IndexStats summarizes the indexed corpus.
type IndexStats struct {
	TotalDocuments int
	TotalChunks    int
	Categories     map[string]int
}

// IndexError records a single document's indexing failure within a batch.
type IndexError struct {
	DocID string
	Err   error
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("index %s: %v", e.DocID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IndexError) Unwrap() error {
	return e.Err
}

// IndexReport summarizes a batch indexing run. Per-document failures are
// reported here as data rather than aborting the batch.
type IndexReport struct {
	Indexed     int
	Failed      int
	TotalChunks int
	Errors      []*IndexError
}
