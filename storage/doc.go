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


// Package storage provides the storage abstraction layer for the knowledge engine.
//
// This package defines repository interfaces that decouple storage
// implementation from retrieval logic, so that different backends (BadgerDB,
// in-memory, or an approximate-nearest-neighbor index for larger corpora) can
// be used interchangeably behind the same contracts.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the storage interfaces
// rather than concrete types:
//
//	chunks, err := badger.NewChunkRepository(backend) // returns storage.ChunkRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute in-memory implementations without modification.
//
// # Architecture
//
//   - ChunkRepository: the vector index, chunk storage keyed by
//     (document, ordinal) plus full-scan cosine similarity retrieval
//   - MetadataRepository: per-document summary records and corpus statistics
//
// Both are backed by the same key-value store; the per-document upsert
// replaces the chunk set and the metadata record in one transaction.
//
// # Thread Safety
//
// All repository implementations must be thread-safe. Searches read a
// consistent snapshot; concurrent upserts for the same document may be
// observed entirely-before or entirely-after, never partially.
//
// # Similarity Scan
//
// FindSimilar scans all candidate chunks per query. This is a documented
// design constraint for a small-corpus regime (low thousands of chunks);
// larger deployments should swap in an ANN-backed ChunkRepository behind the
// same contract.
package storage
