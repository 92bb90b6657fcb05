package badger

import "encoding/binary"

// Key prefixes for different record types
const (
	chunkPrefix = "chk"
	metaPrefix  = "docmeta"
)

// Document IDs may contain ':' so keys use a NUL separator after the ID;
// ingestion validation rejects IDs containing NUL.

// makeChunkKey generates a composite key for a chunk.
// Format: prefix:docID\x00ordinal. The ordinal is written BigEndian so
// lexicographic iteration yields chunks in document order.
func makeChunkKey(docID string, ordinal int) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+len(docID)+1+4)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], docID)
	buf[offset] = 0
	offset++
	binary.BigEndian.PutUint32(buf[offset:], uint32(ordinal))
	return buf
}

// makeChunkDocPrefix generates the key prefix covering all chunks of one document.
func makeChunkDocPrefix(docID string) []byte {
	prefix := chunkPrefix + ":"
	buf := make([]byte, len(prefix)+len(docID)+1)
	offset := copy(buf, prefix)
	offset += copy(buf[offset:], docID)
	buf[offset] = 0
	return buf
}

// makeChunkScanPrefix generates the key prefix covering all chunks.
func makeChunkScanPrefix() []byte {
	return []byte(chunkPrefix + ":")
}

// makeMetaKey generates a key for a document's metadata record.
func makeMetaKey(docID string) []byte {
	return []byte(metaPrefix + ":" + docID)
}

// makeMetaScanPrefix generates the key prefix covering all metadata records.
func makeMetaScanPrefix() []byte {
	return []byte(metaPrefix + ":")
}
