package http

import (
	"time"

	"visadesk/internal/core/application/usecases/commands"
	"visadesk/internal/core/application/usecases/queries"
	"visadesk/internal/core/domain/model/kernel"
)

type applicantRequest struct {
	FirstName string `json:"first_name" validate:"required,max=128"`
	LastName  string `json:"last_name"  validate:"required,max=128"`
	Email     string `json:"email"      validate:"required,email,max=255"`
	Gender    string `json:"gender"     validate:"required,oneof=male female"`
}

func (r *applicantRequest) toData() *commands.ApplicantData {
	if r == nil {
		return nil
	}
	return &commands.ApplicantData{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Gender:    r.Gender,
	}
}

type createOrderRequest struct {
	Status         *string           `json:"status"           validate:"omitempty,oneof=draft new in_progress completed canceled"`
	CountryID      int64             `json:"country_id"       validate:"required,gt=0"`
	ClientID       int64             `json:"client_id"        validate:"required,gt=0"`
	UrgencyID      int64             `json:"urgency_id"       validate:"required,gt=0"`
	VisaDurationID int64             `json:"visa_duration_id" validate:"required,gt=0"`
	VisaTypeID     int64             `json:"visa_type_id"     validate:"required,gt=0"`
	Applicant      *applicantRequest `json:"applicant"        validate:"omitempty"`
}

func (r createOrderRequest) toData() commands.CreateOrderData {
	return commands.CreateOrderData{
		Status:         r.Status,
		CountryID:      r.CountryID,
		ClientID:       r.ClientID,
		UrgencyID:      r.UrgencyID,
		VisaDurationID: r.VisaDurationID,
		VisaTypeID:     r.VisaTypeID,
		Applicant:      r.Applicant.toData(),
	}
}

type updateOrderRequest struct {
	Status         *string           `json:"status"           validate:"omitempty,oneof=draft new in_progress completed canceled"`
	CountryID      *int64            `json:"country_id"       validate:"omitempty,gt=0"`
	ClientID       *int64            `json:"client_id"        validate:"omitempty,gt=0"`
	CreatedByID    *int64            `json:"created_by_id"    validate:"omitempty,gt=0"`
	UrgencyID      *int64            `json:"urgency_id"       validate:"omitempty,gt=0"`
	VisaDurationID *int64            `json:"visa_duration_id" validate:"omitempty,gt=0"`
	VisaTypeID     *int64            `json:"visa_type_id"     validate:"omitempty,gt=0"`
	Applicant      *applicantRequest `json:"applicant"        validate:"omitempty"`
}

func (r updateOrderRequest) toData() commands.UpdateOrderData {
	return commands.UpdateOrderData{
		Status:         r.Status,
		CountryID:      r.CountryID,
		ClientID:       r.ClientID,
		CreatedByID:    r.CreatedByID,
		UrgencyID:      r.UrgencyID,
		VisaDurationID: r.VisaDurationID,
		VisaTypeID:     r.VisaTypeID,
		Applicant:      r.Applicant.toData(),
	}
}

// updateOrderServicesRequest distinguishes an absent or null list (leave the
// attachments alone) from an empty one (detach everything).
type updateOrderServicesRequest struct {
	TariffServiceIDs *[]int64 `json:"tariff_service_ids"`
}

type referenceResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type visaDurationResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Term  string `json:"term,omitempty"`
	Entry string `json:"entry,omitempty"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type clientResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Email    string `json:"email"`
	TariffID *int64 `json:"tariff_id"`
}

type applicantResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
}

type orderResponse struct {
	ID           int64                 `json:"id"`
	Number       string                `json:"number"`
	Status       string                `json:"status"`
	Country      *referenceResponse    `json:"country"`
	Urgency      *referenceResponse    `json:"urgency"`
	VisaDuration *visaDurationResponse `json:"visa_duration"`
	VisaType     *referenceResponse    `json:"visa_type"`
	CreatedBy    *userResponse         `json:"created_by"`
	ClientID     int64                 `json:"client_id"`
	Client       *clientResponse       `json:"client,omitempty"`
	Applicant    *applicantResponse    `json:"applicant"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
	CompletedAt  *time.Time            `json:"completed_at"`
	ArchivedAt   *time.Time            `json:"archived_at"`
}

func newOrderResponse(o queries.GetOrderQueryResponse) orderResponse {
	resp := orderResponse{
		ID:          o.ID.Int64(),
		Number:      o.Number,
		Status:      o.Status.String(),
		Country:     newReferenceResponse(o.Country),
		Urgency:     newReferenceResponse(o.Urgency),
		VisaType:    newReferenceResponse(o.VisaType),
		ClientID:    o.ClientID.Int64(),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		CompletedAt: o.CompletedAt,
		ArchivedAt:  o.ArchivedAt,
	}

	if o.VisaDuration != nil {
		resp.VisaDuration = &visaDurationResponse{
			ID:    o.VisaDuration.ID.Int64(),
			Name:  o.VisaDuration.Name,
			Term:  o.VisaDuration.Term,
			Entry: o.VisaDuration.Entry,
		}
	}
	if o.CreatedBy != nil {
		resp.CreatedBy = &userResponse{
			ID:        o.CreatedBy.ID.Int64(),
			Email:     o.CreatedBy.Email,
			FirstName: o.CreatedBy.FirstName,
			LastName:  o.CreatedBy.LastName,
		}
	}
	if o.Client != nil {
		resp.Client = &clientResponse{
			ID:       o.Client.ID.Int64(),
			Name:     o.Client.Name,
			Type:     o.Client.Type,
			Email:    o.Client.Email,
			TariffID: kernel.RawOptionalID(o.Client.TariffID),
		}
	}
	if o.Applicant != nil {
		resp.Applicant = &applicantResponse{
			FirstName: o.Applicant.FirstName,
			LastName:  o.Applicant.LastName,
			Email:     o.Applicant.Email,
			Gender:    string(o.Applicant.Gender),
		}
	}
	return resp
}

func newReferenceResponse(ref *queries.NamedReference) *referenceResponse {
	if ref == nil {
		return nil
	}
	return &referenceResponse{ID: ref.ID.Int64(), Name: ref.Name}
}

type orderSummaryResponse struct {
	ID             int64      `json:"id"`
	Number         string     `json:"number"`
	Status         string     `json:"status"`
	ClientID       int64      `json:"client_id"`
	CreatedByID    int64      `json:"created_by_id"`
	CountryID      *int64     `json:"country_id"`
	UrgencyID      *int64     `json:"urgency_id"`
	VisaDurationID *int64     `json:"visa_duration_id"`
	VisaTypeID     *int64     `json:"visa_type_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	ArchivedAt     *time.Time `json:"archived_at"`
}

type orderListResponse struct {
	Items      []orderSummaryResponse `json:"items"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"total_pages"`
	HasNext    bool                   `json:"has_next"`
	HasPrev    bool                   `json:"has_prev"`
}

func newOrderListResponse(r queries.ListOrdersQueryResponse) orderListResponse {
	items := make([]orderSummaryResponse, 0, len(r.Items))
	for _, o := range r.Items {
		items = append(items, orderSummaryResponse{
			ID:             o.ID.Int64(),
			Number:         o.Number,
			Status:         o.Status.String(),
			ClientID:       o.ClientID.Int64(),
			CreatedByID:    o.CreatedByID.Int64(),
			CountryID:      kernel.RawOptionalID(o.CountryID),
			UrgencyID:      kernel.RawOptionalID(o.UrgencyID),
			VisaDurationID: kernel.RawOptionalID(o.VisaDurationID),
			VisaTypeID:     kernel.RawOptionalID(o.VisaTypeID),
			CreatedAt:      o.CreatedAt,
			UpdatedAt:      o.UpdatedAt,
			CompletedAt:    o.CompletedAt,
			ArchivedAt:     o.ArchivedAt,
		})
	}

	return orderListResponse{
		Items:      items,
		Page:       r.Page,
		Size:       r.Size,
		Total:      r.Total,
		TotalPages: r.TotalPages,
		HasNext:    r.HasNext,
		HasPrev:    r.HasPrev,
	}
}

// moneyResponse renders amounts with their column scale.
type moneyResponse struct {
	Price     string `json:"price"`
	Tax       string `json:"tax"`
	TaxAmount string `json:"tax_amount"`
	Total     string `json:"total"`
}

func newMoneyResponse(m queries.Money) moneyResponse {
	return moneyResponse{
		Price:     m.Price.StringFixed(2),
		Tax:       m.Tax.StringFixed(4),
		TaxAmount: m.TaxAmount.StringFixed(2),
		Total:     m.Total.StringFixed(2),
	}
}

type attachedServiceResponse struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"service_id"`
	Name      string `json:"name"`
	FeeType   string `json:"fee_type"`
	moneyResponse
}

type availableServiceResponse struct {
	TariffServiceID int64  `json:"tariff_service_id"`
	ServiceID       int64  `json:"service_id"`
	Name            string `json:"name"`
	FeeType         string `json:"fee_type"`
	moneyResponse
}

type orderServicesResponse struct {
	Attached  []attachedServiceResponse  `json:"attached"`
	Available []availableServiceResponse `json:"available"`
}

func newOrderServicesResponse(r queries.GetOrderServicesQueryResponse) orderServicesResponse {
	resp := orderServicesResponse{
		Attached:  make([]attachedServiceResponse, 0, len(r.Attached)),
		Available: make([]availableServiceResponse, 0, len(r.Available)),
	}
	for _, a := range r.Attached {
		resp.Attached = append(resp.Attached, attachedServiceResponse{
			ID:            a.ID.Int64(),
			ServiceID:     a.ServiceID.Int64(),
			Name:          a.Name,
			FeeType:       string(a.FeeType),
			moneyResponse: newMoneyResponse(a.Money),
		})
	}
	for _, s := range r.Available {
		resp.Available = append(resp.Available, availableServiceResponse{
			TariffServiceID: s.TariffServiceID.Int64(),
			ServiceID:       s.ServiceID.Int64(),
			Name:            s.Name,
			FeeType:         string(s.FeeType),
			moneyResponse:   newMoneyResponse(s.Money),
		})
	}
	return resp
}

type auditEntryResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	ModelType string    `json:"model_type"`
	TargetID  *int64    `json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

func newAuditEntriesResponse(r queries.ListAuditEntriesQueryResponse) []auditEntryResponse {
	entries := make([]auditEntryResponse, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, auditEntryResponse{
			ID:        e.ID.Int64(),
			UserID:    e.UserID.Int64(),
			Action:    string(e.Action),
			ModelType: e.ModelType,
			TargetID:  kernel.RawOptionalID(e.TargetID),
			CreatedAt: e.CreatedAt,
		})
	}
	return entries
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the body of every failed request.
type Error struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Details []fieldErrorResponse `json:"details,omitempty"`
}
