package queries

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ListOrdersQueryHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewListOrdersQueryHandler(db *gorm.DB, logger *zap.Logger) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, logger: logger}
}

type orderSummaryRow struct {
	ID             int64
	Number         *string
	Status         string
	ClientID       int64
	CreatedByID    int64
	CountryID      *int64
	UrgencyID      *int64
	VisaDurationID *int64
	VisaTypeID     *int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CompletedAt    *time.Time
	ArchivedAt     *time.Time
}

// Handle returns the requested page together with the paging totals.
// An out-of-range page yields an empty item list, not an error.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	scope := h.filtered(h.db.WithContext(ctx).Table("orders"), query.Filter())

	var total int64
	if err := scope.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return ListOrdersQueryResponse{}, storeerr.Translate(h.logger, "count orders", err)
	}

	var rows []orderSummaryRow
	err := scope.Session(&gorm.Session{}).
		Select(`id, number, status, client_id, created_by_id,
			country_id, urgency_id, visa_duration_id, visa_type_id,
			created_at, updated_at, completed_at, archived_at`).
		Order("id DESC").
		Limit(query.Size()).
		Offset((query.Page() - 1) * query.Size()).
		Scan(&rows).Error
	if err != nil {
		return ListOrdersQueryResponse{}, storeerr.Translate(h.logger, "list orders", err)
	}

	items := make([]OrderSummary, 0, len(rows))
	for _, r := range rows {
		items = append(items, OrderSummary{
			ID:             kernel.ID(r.ID),
			Number:         deref(r.Number),
			Status:         order.Status(r.Status),
			ClientID:       kernel.ID(r.ClientID),
			CreatedByID:    kernel.ID(r.CreatedByID),
			CountryID:      kernel.OptionalID(r.CountryID),
			UrgencyID:      kernel.OptionalID(r.UrgencyID),
			VisaDurationID: kernel.OptionalID(r.VisaDurationID),
			VisaTypeID:     kernel.OptionalID(r.VisaTypeID),
			CreatedAt:      r.CreatedAt,
			UpdatedAt:      r.UpdatedAt,
			CompletedAt:    r.CompletedAt,
			ArchivedAt:     r.ArchivedAt,
		})
	}

	totalPages := int((total + int64(query.Size()) - 1) / int64(query.Size()))

	return ListOrdersQueryResponse{
		Items:      items,
		Page:       query.Page(),
		Size:       query.Size(),
		Total:      total,
		TotalPages: totalPages,
		HasNext:    query.Page() < totalPages,
		HasPrev:    query.Page() > 1,
	}, nil
}

func (h ListOrdersQueryHandler) filtered(tx *gorm.DB, filter OrderFilter) *gorm.DB {
	if filter.Status != nil {
		tx = tx.Where("status = ?", string(*filter.Status))
	}

	for column, value := range map[string]*kernel.ID{
		"country_id":       filter.CountryID,
		"client_id":        filter.ClientID,
		"created_by_id":    filter.CreatedByID,
		"urgency_id":       filter.UrgencyID,
		"visa_duration_id": filter.VisaDurationID,
		"visa_type_id":     filter.VisaTypeID,
	} {
		if value != nil {
			tx = tx.Where(column+" = ?", value.Int64())
		}
	}

	if !filter.IncludeArchived {
		tx = tx.Where("archived_at IS NULL")
	}
	return tx
}
