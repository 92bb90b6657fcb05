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

package ingestion

import (
	"strings"
	"unicode/utf8"

	"github.com/phoenixvc/rooivalk-knowledge/core"
)

// DefaultSectionLabel is assigned to text that has no preceding heading.
const DefaultSectionLabel = "Content"

// ChunkPolicy bounds the size and overlap of produced chunks.
type ChunkPolicy struct {
	// MaxChunkChars is the maximum chunk length in bytes. Every produced
	// chunk is at most this long.
	MaxChunkChars int

	// OverlapWords is the number of trailing words carried from a flushed
	// chunk into the next one, preserving continuity across the cut.
	OverlapWords int
}

// DefaultChunkPolicy returns the standard policy: 1500-char chunks with a
// 50-word overlap.
func DefaultChunkPolicy() ChunkPolicy {
	return ChunkPolicy{MaxChunkChars: 1500, OverlapWords: 50}
}

// Chunker splits document bodies into bounded-length passages. Headings
// (lines starting with '#') delimit logical sections; within a section,
// paragraphs are accumulated until the size limit forces a flush.
type Chunker struct {
	policy ChunkPolicy
}

// NewChunker creates a chunker. Zero or negative policy fields fall back to
// the defaults.
func NewChunker(policy ChunkPolicy) *Chunker {
	defaults := DefaultChunkPolicy()
	if policy.MaxChunkChars <= 0 {
		policy.MaxChunkChars = defaults.MaxChunkChars
	}
	if policy.OverlapWords < 0 {
		policy.OverlapWords = defaults.OverlapWords
	}
	return &Chunker{policy: policy}
}

// ChunkDocument splits a document body into ordered chunks. An empty body
// produces an empty slice; the caller decides how to report that. Vectors are
// left unset for the embedding stage to fill.
func (c *Chunker) ChunkDocument(doc *core.Document) []*core.DocumentChunk {
	var pieces []chunkPiece
	for _, s := range splitSections(doc.Content) {
		pieces = append(pieces, c.chunkSection(s.label, s.body)...)
	}

	chunks := make([]*core.DocumentChunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = &core.DocumentChunk{
			ChunkID:      core.ChunkIDFor(doc.ID, i),
			DocID:        doc.ID,
			Title:        doc.Title,
			SectionLabel: p.label,
			Text:         p.text,
			Ordinal:      i,
			TotalChunks:  len(pieces),
			Category:     doc.Category,
		}
	}
	return chunks
}

type chunkPiece struct {
	label string
	text  string
}

type section struct {
	label string
	body  string
}

// splitSections partitions a body into heading-delimited sections. Text
// before the first heading, or a body without headings, gets the default
// label. Empty sections are dropped.
func splitSections(body string) []section {
	var sections []section
	label := DefaultSectionLabel
	var lines []string

	flush := func() {
		text := strings.TrimSpace(strings.Join(lines, "\n"))
		if text != "" {
			sections = append(sections, section{label: label, body: text})
		}
		lines = lines[:0]
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			flush()
			label = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if label == "" {
				label = DefaultSectionLabel
			}
			continue
		}
		lines = append(lines, line)
	}
	flush()

	return sections
}

// chunkSection accumulates a section's paragraphs into chunks no longer than
// MaxChunkChars. When a flush happens mid-section, the next chunk is seeded
// with the trailing OverlapWords words of the previous one. Paragraphs larger
// than the limit are hard-split at word boundaries.
func (c *Chunker) chunkSection(label, body string) []chunkPiece {
	var pieces []chunkPiece
	emit := func(text string) {
		pieces = append(pieces, chunkPiece{label: label, text: text})
	}

	var buf string
	for _, para := range splitParagraphs(body) {
		if len(para) > c.policy.MaxChunkChars {
			if buf != "" {
				emit(buf)
				buf = ""
			}
			for _, part := range hardSplitWords(para, c.policy.MaxChunkChars) {
				emit(part)
			}
			continue
		}

		if buf == "" {
			buf = para
			continue
		}
		if len(buf)+2+len(para) <= c.policy.MaxChunkChars {
			buf += "\n\n" + para
			continue
		}

		emit(buf)
		seed := tailWords(buf, c.policy.OverlapWords)
		if seed != "" && len(seed)+2+len(para) <= c.policy.MaxChunkChars {
			buf = seed + "\n\n" + para
		} else {
			buf = para
		}
	}
	if buf != "" {
		emit(buf)
	}

	return pieces
}

// splitParagraphs splits text on blank lines, trimming each paragraph and
// dropping empty ones.
func splitParagraphs(text string) []string {
	var paragraphs []string
	var current []string

	flush := func() {
		para := strings.TrimSpace(strings.Join(current, "\n"))
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return paragraphs
}

// tailWords returns the last n whitespace-delimited words of text joined by
// single spaces, or the whole text if it has fewer words.
func tailWords(text string, n int) string {
	if n <= 0 {
		return ""
	}
	words := strings.Fields(text)
	if len(words) > n {
		words = words[len(words)-n:]
	}
	return strings.Join(words, " ")
}

// hardSplitWords breaks an oversized paragraph into pieces of at most max
// bytes, cutting at word boundaries. A single word longer than max is cut
// mid-word, backed off to a rune boundary so pieces stay valid UTF-8.
func hardSplitWords(text string, max int) []string {
	var parts []string
	var b strings.Builder

	for _, word := range strings.Fields(text) {
		for len(word) > max {
			if b.Len() > 0 {
				parts = append(parts, b.String())
				b.Reset()
			}
			cut := max
			for cut > 0 && !utf8.RuneStart(word[cut]) {
				cut--
			}
			if cut == 0 {
				// max is smaller than the first rune; emit it whole.
				_, cut = utf8.DecodeRuneInString(word)
			}
			parts = append(parts, word[:cut])
			word = word[cut:]
		}
		if word == "" {
			continue
		}
		switch {
		case b.Len() == 0:
			b.WriteString(word)
		case b.Len()+1+len(word) <= max:
			b.WriteByte(' ')
			b.WriteString(word)
		default:
			parts = append(parts, b.String())
			b.Reset()
			b.WriteString(word)
		}
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}

	return parts
}
