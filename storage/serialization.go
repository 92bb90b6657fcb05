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


package storage

import (
	"github.com/phoenixvc/rooivalk-knowledge/core"
)

// MarshalChunk serializes a DocumentChunk to bytes.
func MarshalChunk(chunk *core.DocumentChunk) []byte {
	buf := make([]byte, core.DocumentChunkMUS.Size(*chunk))
	core.DocumentChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a DocumentChunk from bytes.
func UnmarshalChunk(data []byte) (*core.DocumentChunk, error) {
	chunk, _, err := core.DocumentChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalMetadata serializes an IndexMetadata record to bytes.
func MarshalMetadata(meta *core.IndexMetadata) []byte {
	buf := make([]byte, core.IndexMetadataMUS.Size(*meta))
	core.IndexMetadataMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalMetadata deserializes an IndexMetadata record from bytes.
func UnmarshalMetadata(data []byte) (*core.IndexMetadata, error) {
	meta, _, err := core.IndexMetadataMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}
