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

// Package ingestion turns raw documents into indexed, embedded chunks.
//
// The Pipeline drives the full path: optional YAML frontmatter is parsed
// against a strict schema, the body is split by the Chunker into
// bounded-length passages with word-level overlap across cuts, each batch of
// passages is embedded concurrently on a worker pool with retry/backoff, and
// the resulting chunk set atomically replaces whatever was stored for the
// document before.
//
// Documents are independent: in a batch run a failing document is reported in
// the IndexReport and the remaining documents still index. Re-indexing an
// unchanged document is detected by content fingerprint and skipped.
package ingestion
