package postgres

import (
	"context"
	"fmt"

	"visadesk/internal/adapters/out/postgres/attachmentrepo"
	"visadesk/internal/adapters/out/postgres/auditrepo"
	"visadesk/internal/adapters/out/postgres/cataloguerepo"
	"visadesk/internal/adapters/out/postgres/orderrepo"
	"visadesk/internal/adapters/out/postgres/reference"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes, in dependency order.
func Models() []any {
	return []any{
		&reference.CountryDTO{},
		&reference.UrgencyDTO{},
		&reference.VisaDurationDTO{},
		&reference.VisaTypeDTO{},
		&reference.UserDTO{},
		&reference.TariffDTO{},
		&reference.ClientDTO{},
		&cataloguerepo.ServiceDTO{},
		&cataloguerepo.TariffServiceDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ApplicantDTO{},
		&attachmentrepo.OrderServiceDTO{},
		&auditrepo.LogEntryDTO{},
	}
}

// Migrate creates or updates the schema, foreign keys included.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
