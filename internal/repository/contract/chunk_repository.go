package contract

import (
	"context"

	"rbac-chatbot-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunk pairs a retrieved chunk with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

type ChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error

	// DeleteSupersededVersions removes every chunk of partition whose
	// generation is not keep. Run inside the activation transaction so
	// readers never observe a half-replaced index.
	DeleteSupersededVersions(ctx context.Context, partition string, keep uuid.UUID) error

	CountByVersion(ctx context.Context, partition string, version uuid.UUID) (int64, error)

	// SearchSimilar returns the top-limit chunks of exactly (partition,
	// version) ordered by similarity to the query embedding. The partition
	// and version predicates are part of the SQL, so a chunk tagged for a
	// different partition can never appear in the result.
	SearchSimilar(ctx context.Context, partition string, version uuid.UUID, embedding []float32, limit int, threshold float64) ([]*ScoredChunk, error)
}
