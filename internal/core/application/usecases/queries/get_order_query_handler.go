package queries

import (
	"context"
	"time"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"
	"visadesk/internal/pkg/storeerr"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order joined with its reference rows.
type GetOrderQueryHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGetOrderQueryHandler creates a handler for single order lookups.
func NewGetOrderQueryHandler(db *gorm.DB, logger *zap.Logger) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, logger: logger}
}

type orderRow struct {
	ID          int64
	Number      *string
	Status      string
	ClientID    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
	ArchivedAt  *time.Time

	CountryID         *int64
	CountryName       *string
	UrgencyID         *int64
	UrgencyName       *string
	VisaDurationID    *int64
	VisaDurationName  *string
	VisaDurationTerm  *string
	VisaDurationEntry *string
	VisaTypeID        *int64
	VisaTypeName      *string

	CreatedByID        *int64
	CreatedByEmail     *string
	CreatedByFirstName *string
	CreatedByLastName  *string

	ApplicantFirstName *string
	ApplicantLastName  *string
	ApplicantEmail     *string
	ApplicantGender    *string
}

type clientRow struct {
	ID       int64
	Name     string
	Type     string
	Email    string
	TariffID *int64
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var row orderRow
	result := db.Raw(`
		SELECT
			o.id, o.number, o.status, o.client_id,
			o.created_at, o.updated_at, o.completed_at, o.archived_at,
			c.id AS country_id, c.name AS country_name,
			u.id AS urgency_id, u.name AS urgency_name,
			vd.id AS visa_duration_id, vd.name AS visa_duration_name,
			vd.term AS visa_duration_term, vd.entry AS visa_duration_entry,
			vt.id AS visa_type_id, vt.name AS visa_type_name,
			cb.id AS created_by_id, cb.email AS created_by_email,
			cb.first_name AS created_by_first_name, cb.last_name AS created_by_last_name,
			a.first_name AS applicant_first_name, a.last_name AS applicant_last_name,
			a.email AS applicant_email, a.gender AS applicant_gender
		FROM orders o
		LEFT JOIN countries c ON c.id = o.country_id
		LEFT JOIN urgencies u ON u.id = o.urgency_id
		LEFT JOIN visa_durations vd ON vd.id = o.visa_duration_id
		LEFT JOIN visa_types vt ON vt.id = o.visa_type_id
		LEFT JOIN users cb ON cb.id = o.created_by_id
		LEFT JOIN applicants a ON a.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Int64()).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, storeerr.Translate(h.logger, "get order", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().Int64())
	}

	resp := row.toResponse()

	if query.PopulateClient() {
		var client clientRow
		result = db.Raw(`
			SELECT id, name, type, email, tariff_id
			FROM clients
			WHERE id = ?
		`, row.ClientID).Scan(&client)
		if result.Error != nil {
			return GetOrderQueryResponse{}, storeerr.Translate(h.logger, "get order client", result.Error)
		}
		if result.RowsAffected > 0 {
			resp.Client = &ClientResponse{
				ID:       kernel.ID(client.ID),
				Name:     client.Name,
				Type:     client.Type,
				Email:    client.Email,
				TariffID: kernel.OptionalID(client.TariffID),
			}
		}
	}

	return resp, nil
}

func (r orderRow) toResponse() GetOrderQueryResponse {
	resp := GetOrderQueryResponse{
		ID:          kernel.ID(r.ID),
		Number:      deref(r.Number),
		Status:      order.Status(r.Status),
		ClientID:    kernel.ID(r.ClientID),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CompletedAt: r.CompletedAt,
		ArchivedAt:  r.ArchivedAt,
		Country:     namedReference(r.CountryID, r.CountryName),
		Urgency:     namedReference(r.UrgencyID, r.UrgencyName),
		VisaType:    namedReference(r.VisaTypeID, r.VisaTypeName),
	}

	if r.VisaDurationID != nil {
		resp.VisaDuration = &VisaDurationResponse{
			ID:    kernel.ID(*r.VisaDurationID),
			Name:  deref(r.VisaDurationName),
			Term:  deref(r.VisaDurationTerm),
			Entry: deref(r.VisaDurationEntry),
		}
	}

	if r.CreatedByID != nil {
		resp.CreatedBy = &UserResponse{
			ID:        kernel.ID(*r.CreatedByID),
			Email:     deref(r.CreatedByEmail),
			FirstName: deref(r.CreatedByFirstName),
			LastName:  deref(r.CreatedByLastName),
		}
	}

	if r.ApplicantFirstName != nil {
		resp.Applicant = &ApplicantResponse{
			FirstName: *r.ApplicantFirstName,
			LastName:  deref(r.ApplicantLastName),
			Email:     deref(r.ApplicantEmail),
			Gender:    order.Gender(deref(r.ApplicantGender)),
		}
	}

	return resp
}

func namedReference(id *int64, name *string) *NamedReference {
	if id == nil {
		return nil
	}
	return &NamedReference{ID: kernel.ID(*id), Name: deref(name)}
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
