package auditrepo

import (
	"context"

	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB, logger *zap.Logger) *GormAuditRepository {
	return &GormAuditRepository{
		db:     db,
		logger: logger.With(zap.String("component", "audit_repository")),
	}
}

// Append stores the entry and records its id on it.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if entry == nil {
		return errs.NewValueIsRequiredError("entry")
	}

	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&dto).Error; err != nil {
		return storeerr.Translate(r.logger, "append audit entry", err)
	}

	entry.MarkStored(kernel.ID(dto.ID), dto.CreatedAt)
	return nil
}
