package answer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/phoenixvc/rooivalk-knowledge/core"
	"github.com/pkoukk/tiktoken-go"
)

const systemPrompt = `You are a knowledge-base assistant. Answer the question using only the numbered source blocks provided. Cite the sources you rely on by their number, like [1] or [2]. If the sources do not contain the answer, say so plainly instead of guessing. Keep answers concise.`

// noAnswerText is returned when retrieval produces nothing to ground an
// answer on.
const noAnswerText = "I could not find anything in the knowledge base relevant to that question."

const tokenizerEncoding = "cl100k_base"

var (
	tokenizerOnce sync.Once
	tokenizer     *tiktoken.Tiktoken
)

// countTokens estimates the token count of text. It uses the cl100k_base
// tokenizer, falling back to a chars/4 heuristic if the tokenizer's BPE data
// cannot be loaded.
func countTokens(text string) int {
	tokenizerOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tokenizerEncoding)
		if err == nil {
			tokenizer = enc
		}
	})
	if tokenizer == nil {
		return (len(text) + 3) / 4
	}
	return len(tokenizer.Encode(text, nil, nil))
}

// renderSourceBlock formats one retrieved chunk as a numbered source block
// for the completion prompt.
func renderSourceBlock(n int, result *core.HybridResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d] %s", n, result.Title)
	if result.SectionLabel != "" {
		fmt.Fprintf(&b, " — %s", result.SectionLabel)
	}
	b.WriteString("\n")
	b.WriteString(result.Text)
	return b.String()
}

// buildUserPrompt assembles the question and as many source blocks as fit
// within tokenBudget, in rank order. It returns the prompt and the results
// that made it in.
func buildUserPrompt(question string, results []*core.HybridResult, tokenBudget int) (string, []*core.HybridResult) {
	var b strings.Builder
	b.WriteString("Sources:\n\n")

	used := countTokens(b.String()) + countTokens("\nQuestion: "+question)
	var included []*core.HybridResult

	for _, result := range results {
		block := renderSourceBlock(len(included)+1, result)
		cost := countTokens(block) + 1
		if tokenBudget > 0 && used+cost > tokenBudget {
			// Highest-ranked chunks come first; once the budget is spent,
			// everything below is dropped.
			break
		}
		b.WriteString(block)
		b.WriteString("\n\n")
		used += cost
		included = append(included, result)
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String(), included
}
