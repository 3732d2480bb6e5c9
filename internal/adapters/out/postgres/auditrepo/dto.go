// Package auditrepo appends audit entries to the log_entries table.
package auditrepo

import (
	"time"

	"visadesk/internal/adapters/out/postgres/reference"
	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/kernel"
)

// LogEntryDTO is one audit record. UserID is NULL for actions taken by the system.
type LogEntryDTO struct {
	ID        int64              `gorm:"primaryKey"`
	UserID    *int64             `gorm:"index"`
	User      *reference.UserDTO `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL"`
	Action    string             `gorm:"size:16;not null"`
	ModelType string             `gorm:"size:64;not null"`
	TargetID  *int64
	CreatedAt time.Time `gorm:"index"`
}

func (LogEntryDTO) TableName() string {
	return "log_entries"
}

func fromDomain(e *audit.Entry) LogEntryDTO {
	return LogEntryDTO{
		UserID:    kernel.RawOptionalID(e.ActorID()),
		Action:    string(e.Action()),
		ModelType: e.ModelType(),
		TargetID:  kernel.RawOptionalID(e.TargetID()),
		CreatedAt: e.CreatedAt(),
	}
}
