// Package cataloguerepo maps the service catalogue and the per-tariff price
// lists. The core only reads them; the BeforeSave hook keeps the derived
// price columns consistent for whoever maintains the catalogue.
package cataloguerepo

import (
	"time"

	"visadesk/internal/adapters/out/postgres/reference"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceDTO is a catalogue item. A NULL dimension column tags the service
// as applicable to every value of that dimension.
type ServiceDTO struct {
	ID      int64  `gorm:"primaryKey"`
	Name    string `gorm:"size:255;not null"`
	FeeType string `gorm:"size:16;not null;default:general"`

	CountryID      *int64                     `gorm:"index"`
	Country        *reference.CountryDTO      `gorm:"foreignKey:CountryID;constraint:OnDelete:SET NULL"`
	UrgencyID      *int64                     `gorm:"index"`
	Urgency        *reference.UrgencyDTO      `gorm:"foreignKey:UrgencyID;constraint:OnDelete:SET NULL"`
	VisaDurationID *int64                     `gorm:"index"`
	VisaDuration   *reference.VisaDurationDTO `gorm:"foreignKey:VisaDurationID;constraint:OnDelete:SET NULL"`
	VisaTypeID     *int64                     `gorm:"index"`
	VisaType       *reference.VisaTypeDTO     `gorm:"foreignKey:VisaTypeID;constraint:OnDelete:SET NULL"`

	CreatedAt  time.Time
	UpdatedAt  time.Time
	ArchivedAt *time.Time
}

func (ServiceDTO) TableName() string {
	return "services"
}

// Dimensions returns the service's tags in domain form.
func (d ServiceDTO) Dimensions() catalogue.Dimensions {
	return catalogue.Dimensions{
		Country:      kernel.OptionalID(d.CountryID),
		Urgency:      kernel.OptionalID(d.UrgencyID),
		VisaDuration: kernel.OptionalID(d.VisaDurationID),
		VisaType:     kernel.OptionalID(d.VisaTypeID),
	}
}

// ToDomain converts the row into a catalogue.Service.
func (d ServiceDTO) ToDomain() (catalogue.Service, error) {
	return catalogue.NewService(kernel.ID(d.ID), d.Name, catalogue.FeeType(d.FeeType), d.Dimensions())
}

// TariffServiceDTO is the price of a service under a tariff. A service is
// priced at most once per tariff.
type TariffServiceDTO struct {
	ID        int64                `gorm:"primaryKey"`
	ServiceID int64                `gorm:"not null;uniqueIndex:idx_tariff_services_service_tariff"`
	Service   *ServiceDTO          `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE"`
	TariffID  int64                `gorm:"not null;uniqueIndex:idx_tariff_services_service_tariff;index"`
	Tariff    *reference.TariffDTO `gorm:"foreignKey:TariffID;constraint:OnDelete:CASCADE"`

	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Tax       decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	TaxAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TariffServiceDTO) TableName() string {
	return "tariff_services"
}

// BeforeSave derives tax_amount and total from price and tax on every write.
func (d *TariffServiceDTO) BeforeSave(_ *gorm.DB) error {
	snapshot, err := pricing.NewSnapshot(d.Price, d.Tax)
	if err != nil {
		return err
	}

	d.Price = snapshot.Price()
	d.TaxAmount = snapshot.TaxAmount()
	d.Total = snapshot.Total()
	return nil
}

// ToDomain converts the row into a catalogue.TariffService. The stored
// derived columns are ignored and recomputed.
func (d TariffServiceDTO) ToDomain() (catalogue.TariffService, error) {
	return catalogue.NewTariffService(
		kernel.ID(d.ID),
		kernel.ID(d.ServiceID),
		kernel.ID(d.TariffID),
		d.Price,
		d.Tax,
	)
}
