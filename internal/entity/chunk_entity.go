package entity

import (
	"time"

	"github.com/google/uuid"
)

// DocumentChunk is a bounded fragment of a source document, the unit of
// retrieval and embedding. Every chunk carries the partition it belongs to;
// ingestion sets it on 100% of chunks, there is no default.
type DocumentChunk struct {
	Id           uuid.UUID
	Partition    string
	IndexVersion uuid.UUID
	ChunkIndex   int
	Source       string
	Content      string
	Metadata     map[string]interface{}
	Embedding    []float32
	CreatedAt    time.Time
}

// PartitionIndex is the registry entry for one partition's searchable index.
// ActiveVersion points at the generation of chunks currently served; swapping
// it is what makes re-ingestion atomic for readers.
type PartitionIndex struct {
	Name          string
	ActiveVersion uuid.UUID
	ChunkCount    int
	IngestedAt    time.Time
}
