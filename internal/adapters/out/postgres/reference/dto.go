// Package reference maps the lookup tables the order-processing core reads
// but does not manage: countries, urgencies, visa durations, visa types,
// users, tariffs and clients. The mappings exist so the schema can be
// migrated and joined; no writes go through them outside of tests.
package reference

type CountryDTO struct {
	ID     int64  `gorm:"primaryKey"`
	Name   string `gorm:"size:128;not null"`
	Alpha2 string `gorm:"size:2"`
}

func (CountryDTO) TableName() string {
	return "countries"
}

type UrgencyDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null"`
}

func (UrgencyDTO) TableName() string {
	return "urgencies"
}

// VisaDurationDTO describes how long a visa is valid and how many entries it allows.
type VisaDurationDTO struct {
	ID    int64  `gorm:"primaryKey"`
	Name  string `gorm:"size:64;not null"`
	Term  string `gorm:"size:32"`
	Entry string `gorm:"size:32"`
}

func (VisaDurationDTO) TableName() string {
	return "visa_durations"
}

type VisaTypeDTO struct {
	ID   int64  `gorm:"primaryKey"`
	Name string `gorm:"size:64;not null"`
}

func (VisaTypeDTO) TableName() string {
	return "visa_types"
}

// UserDTO is a staff member acting on orders.
type UserDTO struct {
	ID        int64  `gorm:"primaryKey"`
	Email     string `gorm:"size:255;not null;uniqueIndex"`
	FirstName string `gorm:"size:128"`
	LastName  string `gorm:"size:128"`
}

func (UserDTO) TableName() string {
	return "users"
}

// TariffDTO is a named pricing plan.
type TariffDTO struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	IsDefault bool   `gorm:"not null;default:false"`
}

func (TariffDTO) TableName() string {
	return "tariffs"
}

// ClientDTO is the customer an order is filed for. TariffID is nullable:
// a client without a tariff cannot have services priced.
type ClientDTO struct {
	ID       int64      `gorm:"primaryKey"`
	Name     string     `gorm:"size:255;not null"`
	Type     string     `gorm:"size:16;not null;default:individual"`
	Email    string     `gorm:"size:255"`
	TariffID *int64     `gorm:"index"`
	Tariff   *TariffDTO `gorm:"foreignKey:TariffID;constraint:OnDelete:SET NULL"`
}

func (ClientDTO) TableName() string {
	return "clients"
}
