// FILE: internal/service/ingestion_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"rbac-chatbot-be/internal/config"
	"rbac-chatbot-be/internal/entity"
	"rbac-chatbot-be/internal/pkg/logger"
	"rbac-chatbot-be/internal/repository/unitofwork"
	"rbac-chatbot-be/pkg/authz"
	"rbac-chatbot-be/pkg/embedding"
	"rbac-chatbot-be/pkg/loader"
	"rbac-chatbot-be/pkg/utils"

	"github.com/google/uuid"
)

// ErrSourceDirMissing marks a partition whose source directory does not
// exist. Callers skip it with a warning; it must never abort ingestion of
// other partitions.
var ErrSourceDirMissing = errors.New("source directory missing")

type IngestReport struct {
	Partition  string
	Documents  int
	ChunkCount int
	Skipped    bool
}

type IIngestionService interface {
	IngestPartition(ctx context.Context, partition string) (*IngestReport, error)
	IngestAll(ctx context.Context) ([]*IngestReport, error)
}

type ingestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	policy            *authz.Policy
	cfg               config.IngestionConfig
	logger            logger.ILogger
}

func NewIngestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	policy *authz.Policy,
	cfg config.IngestionConfig,
	sysLogger logger.ILogger,
) IIngestionService {
	return &ingestionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		policy:            policy,
		cfg:               cfg,
		logger:            sysLogger,
	}
}

// IngestPartition rebuilds one partition's index from <data_dir>/<partition>.
//
// Chunks are written under a fresh generation id first; only when every chunk
// is stored does a single transaction point the registry at the new
// generation and drop the superseded one. A reader always sees either the
// old index or the new one, never a half-written mix.
func (s *ingestionService) IngestPartition(ctx context.Context, partition string) (*IngestReport, error) {
	partition = authz.NormalizePartition(partition)
	dir := filepath.Join(s.cfg.DataDir, partition)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		s.logger.Warn("ingestion", "skipping missing source directory", map[string]interface{}{
			"partition": partition,
			"dir":       dir,
		})
		return &IngestReport{Partition: partition, Skipped: true}, ErrSourceDirMissing
	}

	docs, err := loader.LoadDirectory(dir)
	if err != nil {
		return nil, err
	}

	version := uuid.New()
	now := time.Now()

	var chunks []*entity.DocumentChunk
	for _, doc := range docs {
		pieces := utils.SplitText(doc.Content, s.cfg.ChunkSize, s.cfg.ChunkOverlap)
		for i, piece := range pieces {
			embeddingRes, err := s.embeddingProvider.Generate(piece, "RETRIEVAL_DOCUMENT")
			if err != nil {
				return nil, err
			}
			chunks = append(chunks, &entity.DocumentChunk{
				Id:           uuid.New(),
				Partition:    partition,
				IndexVersion: version,
				ChunkIndex:   i,
				Source:       doc.Source,
				Content:      piece,
				Metadata: map[string]interface{}{
					"source":    doc.Source,
					"partition": partition,
				},
				Embedding: embeddingRes.Embedding.Values,
				CreatedAt: now,
			})
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Staging write. Not visible to readers: the registry still points at
	// the previous generation.
	if err := uow.ChunkRepository().CreateBulk(ctx, chunks); err != nil {
		return nil, err
	}

	// The registry must never point at a partial generation: re-count the
	// staged rows and refuse to activate on any shortfall.
	staged, err := uow.ChunkRepository().CountByVersion(ctx, partition, version)
	if err != nil {
		return nil, err
	}
	if staged != int64(len(chunks)) {
		return nil, fmt.Errorf("staged %d of %d chunks for partition %s, refusing to activate", staged, len(chunks), partition)
	}

	// Activation swap.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PartitionIndexRepository().Upsert(ctx, &entity.PartitionIndex{
		Name:          partition,
		ActiveVersion: version,
		ChunkCount:    len(chunks),
		IngestedAt:    now,
	}); err != nil {
		return nil, err
	}
	if err := uow.ChunkRepository().DeleteSupersededVersions(ctx, partition, version); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "partition indexed", map[string]interface{}{
		"partition": partition,
		"documents": len(docs),
		"chunks":    len(chunks),
	})

	return &IngestReport{
		Partition:  partition,
		Documents:  len(docs),
		ChunkCount: len(chunks),
	}, nil
}

// IngestAll walks every partition the policy grants to anyone, one at a time.
// Partitions are independent: a missing directory is reported and skipped.
func (s *ingestionService) IngestAll(ctx context.Context) ([]*IngestReport, error) {
	var reports []*IngestReport
	for _, partition := range s.policy.Partitions() {
		report, err := s.IngestPartition(ctx, partition)
		if errors.Is(err, ErrSourceDirMissing) {
			reports = append(reports, report)
			continue
		}
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}
