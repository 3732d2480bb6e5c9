package attachmentrepo

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAttachmentRepository implements AttachmentRepository using GORM.
type GormAttachmentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormAttachmentRepository creates a new GORM attachment repository.
func NewGormAttachmentRepository(db *gorm.DB, logger *zap.Logger) *GormAttachmentRepository {
	return &GormAttachmentRepository{
		db:     db,
		logger: logger.With(zap.String("component", "attachment_repository")),
	}
}

// ReplaceAll swaps the order's attachments for the given ones. Delete and
// insert run in one transaction, or in a savepoint when the repository is
// already bound to one, so a failed insert leaves the previous set intact.
func (r *GormAttachmentRepository) ReplaceAll(
	ctx context.Context,
	orderID kernel.ID,
	attachments []attachment.Attachment,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()
	dtos := make([]OrderServiceDTO, 0, len(attachments))
	for _, a := range attachments {
		dtos = append(dtos, fromDomain(a, now))
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID.Int64()).Delete(&OrderServiceDTO{}).Error; err != nil {
			return err
		}
		if len(dtos) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&dtos).Error
	})
	if err != nil {
		return storeerr.Translate(r.logger, "replace order services", err)
	}

	r.logger.Debug("order services replaced",
		zap.Int64("order_id", orderID.Int64()),
		zap.Int("count", len(dtos)))
	return nil
}
