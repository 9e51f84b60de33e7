package dto

import "time"

type IngestRequest struct {
	// Partition is optional; empty means every declared partition.
	Partition string `json:"partition,omitempty"`
}

type PartitionIndexDTO struct {
	Name       string    `json:"name"`
	ChunkCount int       `json:"chunk_count"`
	IngestedAt time.Time `json:"ingested_at"`
}
