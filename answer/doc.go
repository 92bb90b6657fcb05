// Package answer synthesizes cited answers from retrieved chunks.
//
// The Orchestrator runs a hybrid search for the question, renders the top
// results as numbered source blocks within a token budget, and instructs the
// completion service to answer citing sources by number. The retrieval
// confidence label rides along on the Answer so callers can decide how much
// to trust it.
package answer
