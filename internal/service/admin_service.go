// FILE: internal/service/admin_service.go
package service

import (
	"context"
	"encoding/json"

	"rbac-chatbot-be/internal/dto"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/internal/repository/unitofwork"
)

type IAdminService interface {
	QueueIngest(ctx context.Context, req *dto.IngestRequest) error
	ListIndexes(ctx context.Context) ([]*dto.PartitionIndexDTO, error)
}

type adminService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService, sysLogger logger.ILogger) IAdminService {
	return &adminService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     sysLogger,
	}
}

// QueueIngest hands the request to the ingestion consumer. Publishing instead
// of running inline keeps re-ingestion of one partition serialized behind a
// single worker.
func (s *adminService) QueueIngest(ctx context.Context, req *dto.IngestRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		return err
	}
	s.logger.Info("admin", "ingestion queued", map[string]interface{}{
		"partition": req.Partition,
	})
	return nil
}

func (s *adminService) ListIndexes(ctx context.Context) ([]*dto.PartitionIndexDTO, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	indexes, err := uow.PartitionIndexRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PartitionIndexDTO, 0, len(indexes))
	for _, index := range indexes {
		out = append(out, &dto.PartitionIndexDTO{
			Name:       index.Name,
			ChunkCount: index.ChunkCount,
			IngestedAt: index.IngestedAt,
		})
	}
	return out, nil
}
