// Package postgres provides GORM-based implementation of the Unit of Work pattern.
// A unit of work binds every repository of one business operation to a single
// transaction, so an order, its attachments and its audit entries are written
// together or not at all.
//
// Usage Patterns:
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.AuditRepository().Append(ctx, entry); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides isolated transactions
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Rollback after Commit is a harmless no-op error and may be deferred
package postgres

import (
	"context"

	"visadesk/internal/adapters/out/postgres/attachmentrepo"
	"visadesk/internal/adapters/out/postgres/auditrepo"
	"visadesk/internal/adapters/out/postgres/cataloguerepo"
	"visadesk/internal/adapters/out/postgres/orderrepo"
	"visadesk/internal/core/ports"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Factory ensures each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// The provided database connection will be used for all created unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db, logger)
func NewGormUnitOfWorkFactory(db *gorm.DB, logger *zap.Logger) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, logger: logger}
}

// Create produces a new UnitOfWork instance ready for business transaction management.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:     f.db,
		logger: f.logger,
	}
}

// GormUnitOfWork coordinates database transactions for one business operation.
// Repositories obtained after Begin run inside the transaction; repositories
// obtained without Begin use the main connection and commit immediately.
type GormUnitOfWork struct {
	db     *gorm.DB
	tx     *gorm.DB
	logger *zap.Logger
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return storeerr.Translate(uow.logger, "begin transaction", tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// After commit, the transaction is closed and cannot be reused.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists.
// A failed commit is reported as errs.OperationFailedError.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return storeerr.Translate(uow.logger, "commit transaction", err)
}

// Rollback discards all changes made within the current transaction.
//
// Returns gorm.ErrInvalidTransaction if no active transaction exists, which
// is the case after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository provides access to order persistence operations within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow.logger)
}

// AttachmentRepository provides access to the order_services table within the unit of work.
func (uow *GormUnitOfWork) AttachmentRepository() ports.AttachmentRepository {
	return attachmentrepo.NewGormAttachmentRepository(uow.conn(), uow.logger)
}

// CatalogueRepository provides read access to tariff prices within the unit of work.
func (uow *GormUnitOfWork) CatalogueRepository() ports.CatalogueRepository {
	return cataloguerepo.NewGormCatalogueRepository(uow.conn(), uow.logger)
}

// AuditRepository provides access to the audit log within the unit of work.
func (uow *GormUnitOfWork) AuditRepository() ports.AuditRepository {
	return auditrepo.NewGormAuditRepository(uow.conn(), uow.logger)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
