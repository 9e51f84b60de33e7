package mapper

import (
	"encoding/json"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type ChunkMapper struct{}

func NewChunkMapper() *ChunkMapper {
	return &ChunkMapper{}
}

func (m *ChunkMapper) ToModel(e *entity.DocumentChunk) *model.DocumentChunk {
	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}
	return &model.DocumentChunk{
		Id:           e.Id,
		Partition:    e.Partition,
		IndexVersion: e.IndexVersion,
		ChunkIndex:   e.ChunkIndex,
		Source:       e.Source,
		Content:      e.Content,
		Metadata:     metadata,
		Embedding:    pgvector.NewVector(e.Embedding),
		CreatedAt:    e.CreatedAt,
	}
}

func (m *ChunkMapper) ToEntity(mo *model.DocumentChunk) *entity.DocumentChunk {
	var metadata map[string]interface{}
	if len(mo.Metadata) > 0 {
		// Best effort; a chunk with unreadable metadata is still retrievable.
		_ = json.Unmarshal(mo.Metadata, &metadata)
	}
	return &entity.DocumentChunk{
		Id:           mo.Id,
		Partition:    mo.Partition,
		IndexVersion: mo.IndexVersion,
		ChunkIndex:   mo.ChunkIndex,
		Source:       mo.Source,
		Content:      mo.Content,
		Metadata:     metadata,
		Embedding:    mo.Embedding.Slice(),
		CreatedAt:    mo.CreatedAt,
	}
}

func (m *ChunkMapper) ToIndexEntity(mo *model.PartitionIndex) *entity.PartitionIndex {
	return &entity.PartitionIndex{
		Name:          mo.Name,
		ActiveVersion: mo.ActiveVersion,
		ChunkCount:    mo.ChunkCount,
		IngestedAt:    mo.IngestedAt,
	}
}

func (m *ChunkMapper) ToIndexModel(e *entity.PartitionIndex) *model.PartitionIndex {
	return &model.PartitionIndex{
		Name:          e.Name,
		ActiveVersion: e.ActiveVersion,
		ChunkCount:    e.ChunkCount,
		IngestedAt:    e.IngestedAt,
	}
}
