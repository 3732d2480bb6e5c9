package ports

import (
	"context"

	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
)

// CatalogueRepository is a read-only view of the tariff price lists.
type CatalogueRepository interface {
	// FindTariffServices loads the requested price rows in one query.
	// Unknown ids are absent from the result; it is not an error.
	FindTariffServices(ctx context.Context, ids []kernel.ID) (map[kernel.ID]catalogue.TariffService, error)
}
