package contract

import (
	"context"

	"rbac-chatbot-be/internal/entity"
)

type PartitionIndexRepository interface {
	// FindByName returns (nil, nil) when the partition has no index yet;
	// callers translate that into PartitionNotFound.
	FindByName(ctx context.Context, name string) (*entity.PartitionIndex, error)
	FindAll(ctx context.Context) ([]*entity.PartitionIndex, error)
	Upsert(ctx context.Context, index *entity.PartitionIndex) error
}
