package orderrepo

import (
	"context"
	"errors"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, logger *zap.Logger) *GormOrderRepository {
	return &GormOrderRepository{
		db:     db,
		logger: logger.With(zap.String("component", "order_repository")),
	}
}

// Add inserts the order and its applicant, then assigns the generated id and number.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return storeerr.Translate(r.logger, "create order", err)
	}

	if a := aggregate.Applicant(); a != nil {
		applicant := applicantFromDomain(dto.ID, *a, dto.CreatedAt)
		if err := db.Create(&applicant).Error; err != nil {
			return storeerr.Translate(r.logger, "create applicant", err)
		}
	}

	return aggregate.AssignIdentity(kernel.ID(dto.ID), dto.CreatedAt)
}

// Update writes the order's mutable columns and upserts its applicant.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select(updatableColumns()).
		Updates(&dto)
	if result.Error != nil {
		return storeerr.Translate(r.logger, "update order", result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", dto.ID)
	}

	if a := aggregate.Applicant(); a != nil {
		applicant := applicantFromDomain(dto.ID, *a, dto.UpdatedAt)
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"first_name", "last_name", "email", "gender", "updated_at"}),
		}).Create(&applicant).Error
		if err != nil {
			return storeerr.Translate(r.logger, "upsert applicant", err)
		}
	}

	return nil
}

// Get retrieves an order with its applicant.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Applicant").
		First(&dto, "id = ?", id.Int64()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.Int64())
		}
		return nil, storeerr.Translate(r.logger, "get order", err)
	}

	return toDomain(dto)
}

// Exists reports whether an order row exists.
func (r *GormOrderRepository) Exists(ctx context.Context, id kernel.ID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", id.Int64()).
		Count(&count).Error
	if err != nil {
		return false, storeerr.Translate(r.logger, "check order", err)
	}
	return count > 0, nil
}
