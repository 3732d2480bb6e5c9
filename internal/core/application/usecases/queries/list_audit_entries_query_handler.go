package queries

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ListAuditEntriesQueryHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewListAuditEntriesQueryHandler(db *gorm.DB, logger *zap.Logger) ListAuditEntriesQueryHandler {
	return ListAuditEntriesQueryHandler{db: db, logger: logger}
}

type auditEntryRow struct {
	ID        int64
	UserID    int64
	Action    string
	ModelType string
	TargetID  *int64
	CreatedAt time.Time
}

// Handle returns an empty list, not an error, for a user without entries.
func (h ListAuditEntriesQueryHandler) Handle(
	ctx context.Context,
	query ListAuditEntriesQuery,
) (ListAuditEntriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListAuditEntriesQueryResponse{}, err
	}

	var rows []auditEntryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT id, user_id, action, model_type, target_id, created_at
		FROM log_entries
		WHERE user_id = ?
		ORDER BY id DESC
	`, query.UserID().Int64()).Scan(&rows).Error
	if err != nil {
		return ListAuditEntriesQueryResponse{}, storeerr.Translate(h.logger, "list audit entries", err)
	}

	entries := make([]AuditEntryResponse, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, AuditEntryResponse{
			ID:        kernel.ID(r.ID),
			UserID:    kernel.ID(r.UserID),
			Action:    audit.Action(r.Action),
			ModelType: r.ModelType,
			TargetID:  kernel.OptionalID(r.TargetID),
			CreatedAt: r.CreatedAt,
		})
	}

	return ListAuditEntriesQueryResponse{Entries: entries}, nil
}
