package ingestion

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// ErrUnterminatedFrontmatter is returned when a frontmatter block opens but
// never closes.
var ErrUnterminatedFrontmatter = errors.New("unterminated frontmatter block")

// Frontmatter is the document metadata schema accepted at the top of a
// document body. Unknown fields are rejected.
type Frontmatter struct {
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
}

// ParseFrontmatter extracts an optional YAML frontmatter block delimited by
// "---" lines at the very start of content. It returns the parsed metadata
// and the remaining body. Content without a leading delimiter is returned
// unchanged with zero metadata.
//
// On a malformed or unterminated block the full original content is returned
// as the body alongside the error, so the caller can fall back to
// caller-supplied metadata with a warning instead of dropping the document.
func ParseFrontmatter(content string) (Frontmatter, string, error) {
	var fm Frontmatter

	lines := strings.Split(content, "\n")
	if strings.TrimSpace(lines[0]) != frontmatterDelimiter {
		return fm, content, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontmatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return Frontmatter{}, content, ErrUnterminatedFrontmatter
	}

	block := strings.Join(lines[1:end], "\n")
	decoder := yaml.NewDecoder(strings.NewReader(block))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fm); err != nil && !errors.Is(err, io.EOF) {
		return Frontmatter{}, content, fmt.Errorf("parse frontmatter: %w", err)
	}

	body := strings.Join(lines[end+1:], "\n")
	return fm, body, nil
}
