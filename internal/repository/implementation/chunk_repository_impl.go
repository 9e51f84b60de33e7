package implementation

import (
	"context"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/mapper"
	"rbac-chatbot-be/internal/model"
	"rbac-chatbot-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type ChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewChunkRepository(db *gorm.DB) contract.ChunkRepository {
	return &ChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *ChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = r.mapper.ToModel(c)
	}

	if err := r.db.WithContext(ctx).CreateInBatches(models, 100).Error; err != nil {
		return err
	}

	// Update generated IDs back to entities
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *ChunkRepositoryImpl) DeleteSupersededVersions(ctx context.Context, partition string, keep uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("partition = ? AND index_version <> ?", partition, keep).
		Delete(&model.DocumentChunk{}).Error
}

func (r *ChunkRepositoryImpl) CountByVersion(ctx context.Context, partition string, version uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.DocumentChunk{}).
		Where("partition = ? AND index_version = ?", partition, version).
		Count(&count).Error
	return count, err
}

func (r *ChunkRepositoryImpl) SearchSimilar(ctx context.Context, partition string, version uuid.UUID, embedding []float32, limit int, threshold float64) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 4
	}

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) = cosine_similarity.
	type result struct {
		model.DocumentChunk
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("partition = ? AND index_version = ?", partition, version).
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&res.DocumentChunk),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
