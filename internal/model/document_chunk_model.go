package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type DocumentChunk struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Partition    string          `gorm:"type:varchar(64);not null;index:idx_chunks_partition_version"`
	IndexVersion uuid.UUID       `gorm:"type:uuid;not null;index:idx_chunks_partition_version"`
	ChunkIndex   int             `gorm:"default:0"` // 0-based position within the source document
	Source       string          `gorm:"type:text"`
	Content      string          `gorm:"type:text"`
	Metadata     datatypes.JSON  `gorm:"type:jsonb"`
	Embedding    pgvector.Vector `gorm:"type:vector(768)"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
}

func (DocumentChunk) TableName() string {
	return "document_chunks"
}
