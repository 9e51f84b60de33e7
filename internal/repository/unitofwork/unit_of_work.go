package unitofwork

import (
	"context"

	"rbac-chatbot-be/internal/repository/contract"
)

// UnitOfWork scopes repository access and optional transaction boundaries.
// The ingestion swap runs inside Begin/Commit; query-time reads never need a
// transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChunkRepository() contract.ChunkRepository
	PartitionIndexRepository() contract.PartitionIndexRepository
}
