package rag

import (
	"context"
	"fmt"
	"log"

	"rbac-chatbot-be/internal/repository/contract"
	"rbac-chatbot-be/pkg/embedding"

	"github.com/google/uuid"
)

// Config encapsulates retrieval parameters
type Config struct {
	TopK           int
	ScoreThreshold float64
}

// DefaultConfig returns default retrieval configuration
func DefaultConfig() Config {
	return Config{
		TopK:           4,
		ScoreThreshold: 0.0,
	}
}

// Result is one retrieved chunk with provenance for citations.
type Result struct {
	Source  string
	Content string
	Score   float64
}

// Retriever embeds the question and runs the partition-scoped vector search.
// It never widens the scope it is given: the partition and index version land
// in the SQL predicate, so a chunk from another partition cannot surface no
// matter how relevant it is.
type Retriever struct {
	embeddingProvider embedding.EmbeddingProvider
	config            Config
	logger            *log.Logger
}

func NewRetriever(embeddingProvider embedding.EmbeddingProvider, config Config, logger *log.Logger) *Retriever {
	return &Retriever{
		embeddingProvider: embeddingProvider,
		config:            config,
		logger:            logger,
	}
}

func (r *Retriever) Execute(
	ctx context.Context,
	chunks contract.ChunkRepository,
	partition string,
	version uuid.UUID,
	query string,
) ([]Result, error) {

	embeddingRes, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := chunks.SearchSimilar(
		ctx,
		partition,
		version,
		embeddingRes.Embedding.Values,
		r.config.TopK,
		r.config.ScoreThreshold,
	)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	r.logger.Printf("[DEBUG] partition=%s retrieved=%d", partition, len(scored))

	results := make([]Result, 0, len(scored))
	for _, s := range scored {
		results = append(results, Result{
			Source:  s.Chunk.Source,
			Content: s.Chunk.Content,
			Score:   s.Similarity,
		})
	}
	return results, nil
}
