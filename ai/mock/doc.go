// Package mock provides test doubles for the ai package interfaces.
//
// The mocks default to deterministic behavior: the embedder hashes input text
// into a stable unit vector, and the completer returns a canned answer. Tests
// that need specific behavior inject it through the exported function fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{1, 0, 0}, nil
//	}
package mock
