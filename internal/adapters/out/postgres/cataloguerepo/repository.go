package cataloguerepo

import (
	"context"

	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GormCatalogueRepository implements CatalogueRepository using GORM.
type GormCatalogueRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormCatalogueRepository creates a new GORM catalogue repository.
func NewGormCatalogueRepository(db *gorm.DB, logger *zap.Logger) *GormCatalogueRepository {
	return &GormCatalogueRepository{
		db:     db,
		logger: logger.With(zap.String("component", "catalogue_repository")),
	}
}

// FindTariffServices loads the requested tariff services with a single IN query.
// Ids with no row are simply absent from the result.
func (r *GormCatalogueRepository) FindTariffServices(
	ctx context.Context,
	ids []kernel.ID,
) (map[kernel.ID]catalogue.TariffService, error) {
	result := make(map[kernel.ID]catalogue.TariffService, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}

	var dtos []TariffServiceDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, storeerr.Translate(r.logger, "find tariff services", err)
	}

	for _, dto := range dtos {
		ts, err := dto.ToDomain()
		if err != nil {
			return nil, err
		}
		result[ts.ID()] = ts
	}

	return result, nil
}
