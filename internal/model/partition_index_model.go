package model

import (
	"time"

	"github.com/google/uuid"
)

// PartitionIndex is the registry row naming which chunk generation a
// partition currently serves. Ingestion is the sole writer.
type PartitionIndex struct {
	Name          string    `gorm:"type:varchar(64);primaryKey"`
	ActiveVersion uuid.UUID `gorm:"type:uuid;not null"`
	ChunkCount    int       `gorm:"default:0"`
	IngestedAt    time.Time
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (PartitionIndex) TableName() string {
	return "partition_indexes"
}
