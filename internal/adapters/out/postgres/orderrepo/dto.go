// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"visadesk/internal/adapters/out/postgres/reference"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Reference fields exist so that migrations create the foreign keys; they are
// never loaded or saved by the repository.
type OrderDTO struct {
	ID     int64   `gorm:"primaryKey;autoIncrement"`
	Number *string `gorm:"size:32;uniqueIndex"`
	Status string  `gorm:"size:20;not null;default:draft;index"`

	ClientID    int64              `gorm:"not null;index"`
	Client      *reference.ClientDTO `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	CreatedByID int64              `gorm:"not null;index"`
	CreatedBy   *reference.UserDTO `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`

	CountryID      *int64                     `gorm:"index"`
	Country        *reference.CountryDTO      `gorm:"foreignKey:CountryID;constraint:OnDelete:RESTRICT"`
	UrgencyID      *int64                     `gorm:"index"`
	Urgency        *reference.UrgencyDTO      `gorm:"foreignKey:UrgencyID;constraint:OnDelete:RESTRICT"`
	VisaDurationID *int64                     `gorm:"index"`
	VisaDuration   *reference.VisaDurationDTO `gorm:"foreignKey:VisaDurationID;constraint:OnDelete:RESTRICT"`
	VisaTypeID     *int64                     `gorm:"index"`
	VisaType       *reference.VisaTypeDTO     `gorm:"foreignKey:VisaTypeID;constraint:OnDelete:RESTRICT"`

	Applicant *ApplicantDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AfterCreate numbers the order once its id is known. The number is written
// in the same transaction as the insert and never touched again.
func (d *OrderDTO) AfterCreate(tx *gorm.DB) error {
	if d.Number != nil {
		return nil
	}

	number := order.FormatNumber(d.CreatedAt.Year(), kernel.ID(d.ID))
	if err := tx.Model(d).UpdateColumn("number", number).Error; err != nil {
		return err
	}

	d.Number = &number
	return nil
}

// ApplicantDTO is the 1:1 applicant row keyed by its order.
type ApplicantDTO struct {
	OrderID   int64  `gorm:"primaryKey;autoIncrement:false"`
	FirstName string `gorm:"size:128;not null"`
	LastName  string `gorm:"size:128;not null"`
	Email     string `gorm:"size:255;not null"`
	Gender    string `gorm:"size:8;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for applicants.
func (ApplicantDTO) TableName() string {
	return "applicants"
}

// updatableColumns lists what Update writes; id, number and created_at are immutable.
func updatableColumns() []string {
	return []string{
		"status",
		"client_id",
		"created_by_id",
		"country_id",
		"urgency_id",
		"visa_duration_id",
		"visa_type_id",
		"updated_at",
		"completed_at",
		"archived_at",
	}
}

// fromDomain converts an order aggregate to its row. The applicant is mapped separately.
func fromDomain(o *order.Order) OrderDTO {
	dims := o.Dimensions()
	dto := OrderDTO{
		ID:             o.ID().Int64(),
		Status:         o.Status().String(),
		ClientID:       o.ClientID().Int64(),
		CreatedByID:    o.CreatedByID().Int64(),
		CountryID:      kernel.RawOptionalID(dims.Country),
		UrgencyID:      kernel.RawOptionalID(dims.Urgency),
		VisaDurationID: kernel.RawOptionalID(dims.VisaDuration),
		VisaTypeID:     kernel.RawOptionalID(dims.VisaType),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		CompletedAt:    o.CompletedAt(),
		ArchivedAt:     o.ArchivedAt(),
	}
	if number := o.Number(); number != "" {
		dto.Number = &number
	}
	return dto
}

func applicantFromDomain(orderID int64, a order.Applicant, now time.Time) ApplicantDTO {
	return ApplicantDTO{
		OrderID:   orderID,
		FirstName: a.FirstName(),
		LastName:  a.LastName(),
		Email:     a.Email(),
		Gender:    string(a.Gender()),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// toDomain rebuilds the aggregate, applicant included, using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var applicant *order.Applicant
	if dto.Applicant != nil {
		a, err := order.NewApplicant(
			dto.Applicant.FirstName,
			dto.Applicant.LastName,
			dto.Applicant.Email,
			order.Gender(dto.Applicant.Gender),
		)
		if err != nil {
			return nil, err
		}
		applicant = &a
	}

	var number string
	if dto.Number != nil {
		number = *dto.Number
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:          kernel.ID(dto.ID),
		Number:      number,
		Status:      order.Status(dto.Status),
		ClientID:    kernel.ID(dto.ClientID),
		CreatedByID: kernel.ID(dto.CreatedByID),
		Dimensions: catalogue.Dimensions{
			Country:      kernel.OptionalID(dto.CountryID),
			Urgency:      kernel.OptionalID(dto.UrgencyID),
			VisaDuration: kernel.OptionalID(dto.VisaDurationID),
			VisaType:     kernel.OptionalID(dto.VisaTypeID),
		},
		Applicant:   applicant,
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
		CompletedAt: dto.CompletedAt,
		ArchivedAt:  dto.ArchivedAt,
	})
}
