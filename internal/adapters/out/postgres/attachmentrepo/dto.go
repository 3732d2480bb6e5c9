// Package attachmentrepo stores the services attached to orders together
// with the price figures frozen at attachment time.
package attachmentrepo

import (
	"time"

	"visadesk/internal/adapters/out/postgres/cataloguerepo"
	"visadesk/internal/adapters/out/postgres/orderrepo"
	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// OrderServiceDTO is one attached service. The money columns are a copy of
// the tariff price at attachment time and have no link to tariff_services.
type OrderServiceDTO struct {
	ID        int64                     `gorm:"primaryKey"`
	OrderID   int64                     `gorm:"not null;index"`
	Order     *orderrepo.OrderDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ServiceID int64                     `gorm:"not null;index"`
	Service   *cataloguerepo.ServiceDTO `gorm:"foreignKey:ServiceID;constraint:OnDelete:RESTRICT"`

	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Tax       decimal.Decimal `gorm:"type:numeric(10,4);not null"`
	TaxAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Total     decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	CreatedAt time.Time
}

func (OrderServiceDTO) TableName() string {
	return "order_services"
}

func fromDomain(a attachment.Attachment, now time.Time) OrderServiceDTO {
	p := a.Pricing()
	return OrderServiceDTO{
		OrderID:   a.OrderID().Int64(),
		ServiceID: a.ServiceID().Int64(),
		Price:     p.Price(),
		Tax:       p.Tax(),
		TaxAmount: p.TaxAmount(),
		Total:     p.Total(),
		CreatedAt: now,
	}
}

// ToDomain restores the attachment with its stored figures as they are.
func (d OrderServiceDTO) ToDomain() (attachment.Attachment, error) {
	return attachment.Restore(
		kernel.ID(d.ID),
		kernel.ID(d.OrderID),
		kernel.ID(d.ServiceID),
		pricing.RestoreSnapshot(d.Price, d.Tax, d.TaxAmount, d.Total),
	)
}
