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

// Package search implements hybrid retrieval over the indexed corpus.
//
// A query fans out into two concurrent legs: cosine-similarity search over
// stored embedding vectors, and lexical scoring of chunk titles and bodies.
// The two rankings are merged by reciprocal rank fusion, an exact-match bonus
// rewards verbatim query hits, and the fused list is filtered, deduplicated
// to one chunk per document, and cut to the requested size.
//
// Fusion weights adapt to the query's shape (see AdaptiveWeights) unless the
// caller pins them. Every component past the repository reads is a pure
// function of its inputs; the only shared state is the stored corpus.
package search
