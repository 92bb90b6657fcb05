package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the stored record types. The schema is
// small and fixed, so the serializers are maintained by hand instead of
// generated. Field order is part of the stored format; append new fields at
// the end and never reorder.

var (
	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
	tagsMUS   = ord.NewSliceSer[string](ord.String)
)

// FingerprintMUS serializes a Fingerprint.
var FingerprintMUS = fingerprintMUS{}

type fingerprintMUS struct{}

var _ mus.Serializer[Fingerprint] = FingerprintMUS

func (fingerprintMUS) Marshal(f Fingerprint, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(f), bs)
}

func (fingerprintMUS) Unmarshal(bs []byte) (f Fingerprint, n int, err error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return Fingerprint(v), n, err
}

func (fingerprintMUS) Size(f Fingerprint) int {
	return varint.Uint64.Size(uint64(f))
}

func (fingerprintMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

// DocumentChunkMUS serializes a DocumentChunk.
var DocumentChunkMUS = documentChunkMUS{}

type documentChunkMUS struct{}

var _ mus.Serializer[DocumentChunk] = DocumentChunkMUS

func (documentChunkMUS) Marshal(c DocumentChunk, bs []byte) (n int) {
	n = ord.String.Marshal(c.ChunkID, bs)
	n += ord.String.Marshal(c.DocID, bs[n:])
	n += ord.String.Marshal(c.Title, bs[n:])
	n += ord.String.Marshal(c.SectionLabel, bs[n:])
	n += ord.String.Marshal(c.Text, bs[n:])
	n += varint.Int.Marshal(c.Ordinal, bs[n:])
	n += varint.Int.Marshal(c.TotalChunks, bs[n:])
	n += ord.String.Marshal(c.Category, bs[n:])
	n += vectorMUS.Marshal(c.Vector, bs[n:])
	return n
}

func (documentChunkMUS) Unmarshal(bs []byte) (c DocumentChunk, n int, err error) {
	var n1 int
	if c.ChunkID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	c.DocID, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.SectionLabel, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Ordinal, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.TotalChunks, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	c.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (documentChunkMUS) Size(c DocumentChunk) (size int) {
	size = ord.String.Size(c.ChunkID)
	size += ord.String.Size(c.DocID)
	size += ord.String.Size(c.Title)
	size += ord.String.Size(c.SectionLabel)
	size += ord.String.Size(c.Text)
	size += varint.Int.Size(c.Ordinal)
	size += varint.Int.Size(c.TotalChunks)
	size += ord.String.Size(c.Category)
	size += vectorMUS.Size(c.Vector)
	return size
}

func (documentChunkMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	// ChunkID, DocID, Title, SectionLabel, Text
	for i := 0; i < 5; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = vectorMUS.Skip(bs[n:])
	n += n1
	return
}

// IndexMetadataMUS serializes an IndexMetadata record.
var IndexMetadataMUS = indexMetadataMUS{}

type indexMetadataMUS struct{}

var _ mus.Serializer[IndexMetadata] = IndexMetadataMUS

func (indexMetadataMUS) Marshal(m IndexMetadata, bs []byte) (n int) {
	n = ord.String.Marshal(m.DocID, bs)
	n += ord.String.Marshal(m.Title, bs[n:])
	n += ord.String.Marshal(m.Category, bs[n:])
	n += tagsMUS.Marshal(m.Tags, bs[n:])
	n += varint.Int.Marshal(m.ChunkCount, bs[n:])
	n += FingerprintMUS.Marshal(m.ContentHash, bs[n:])
	n += varint.Int64.Marshal(m.IndexedAt.UnixMicro(), bs[n:])
	return n
}

func (indexMetadataMUS) Unmarshal(bs []byte) (m IndexMetadata, n int, err error) {
	var n1 int
	if m.DocID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	m.Title, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.Tags, n1, err = tagsMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.ContentHash, n1, err = FingerprintMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	m.IndexedAt = time.UnixMicro(micros).UTC()
	return
}

func (indexMetadataMUS) Size(m IndexMetadata) (size int) {
	size = ord.String.Size(m.DocID)
	size += ord.String.Size(m.Title)
	size += ord.String.Size(m.Category)
	size += tagsMUS.Size(m.Tags)
	size += varint.Int.Size(m.ChunkCount)
	size += FingerprintMUS.Size(m.ContentHash)
	size += varint.Int64.Size(m.IndexedAt.UnixMicro())
	return size
}

func (indexMetadataMUS) Skip(bs []byte) (n int, err error) {
	var n1 int
	for i := 0; i < 3; i++ {
		n1, err = ord.String.Skip(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	n1, err = tagsMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = FingerprintMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int64.Skip(bs[n:])
	n += n1
	return
}
