package implementation

import (
	"context"
	"errors"

	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/mapper"
	"rbac-chatbot-be/internal/model"
	"rbac-chatbot-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PartitionIndexRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ChunkMapper
}

func NewPartitionIndexRepository(db *gorm.DB) contract.PartitionIndexRepository {
	return &PartitionIndexRepositoryImpl{
		db:     db,
		mapper: mapper.NewChunkMapper(),
	}
}

func (r *PartitionIndexRepositoryImpl) FindByName(ctx context.Context, name string) (*entity.PartitionIndex, error) {
	var m model.PartitionIndex
	if err := r.db.WithContext(ctx).First(&m, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToIndexEntity(&m), nil
}

func (r *PartitionIndexRepositoryImpl) FindAll(ctx context.Context) ([]*entity.PartitionIndex, error) {
	var models []*model.PartitionIndex
	if err := r.db.WithContext(ctx).Order("name").Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.PartitionIndex, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToIndexEntity(m)
	}
	return entities, nil
}

func (r *PartitionIndexRepositoryImpl) Upsert(ctx context.Context, index *entity.PartitionIndex) error {
	m := r.mapper.ToIndexModel(index)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"active_version", "chunk_count", "ingested_at", "updated_at"}),
		}).
		Create(m).Error
}
