package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns a core.ProviderError if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a
	// batch. The returned slice contains embeddings in the same order as the
	// input texts, one per input. Callers are responsible for keeping batch
	// sizes within the provider's documented limit.
	// Returns a core.ProviderError if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// TurnRole identifies the author of a conversation turn.
type TurnRole int

const (
	// TurnRoleUser represents the human asking questions.
	TurnRoleUser TurnRole = iota + 1
	// TurnRoleAssistant represents a prior model response.
	TurnRoleAssistant
)

// ConversationTurn is a single prior exchange passed to the completion
// service for multi-turn context.
type ConversationTurn struct {
	Role    TurnRole
	Content string
}

// Completer generates text completions from a prompt.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends a system prompt, prior conversation turns, and the user
	// prompt to the completion service and returns the generated text.
	// Returns a core.ProviderError if the completion fails; the caller
	// supplies any timeout via ctx.
	Complete(ctx context.Context, systemPrompt string, turns []ConversationTurn, userPrompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Completer instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Completer returns the text completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
