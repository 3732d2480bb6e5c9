package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes one order operation to a single transaction. Repositories
// taken after Begin share that transaction; the caller owns Commit and Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when no transaction is open.
	Commit(ctx context.Context) error

	// Rollback fails when no transaction is open, so it is safe to defer
	// after a successful Commit and ignore the error.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	// AttachmentRepository reads and replaces the services attached to orders.
	AttachmentRepository() AttachmentRepository

	// CatalogueRepository resolves tariff prices for attachment.
	CatalogueRepository() CatalogueRepository

	AuditRepository() AuditRepository
}
