package queries

import (
	"context"
	"fmt"

	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/pricing"
	"visadesk/internal/core/domain/services"
	"visadesk/internal/pkg/errs"
	"visadesk/internal/pkg/storeerr"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetOrderServicesQueryHandler resolves service eligibility for an order.
//
// The dimension predicate runs in SQL so candidates come back in one round
// trip; the resulting rows are then partitioned by services.EligibilityResolver,
// which applies the same matching rules in the domain.
type GetOrderServicesQueryHandler struct {
	db       *gorm.DB
	logger   *zap.Logger
	resolver services.EligibilityResolver
}

func NewGetOrderServicesQueryHandler(db *gorm.DB, logger *zap.Logger) GetOrderServicesQueryHandler {
	return GetOrderServicesQueryHandler{
		db:       db,
		logger:   logger,
		resolver: services.NewEligibilityResolver(),
	}
}

type orderTariffRow struct {
	ClientID       int64
	CountryID      *int64
	UrgencyID      *int64
	VisaDurationID *int64
	VisaTypeID     *int64
	TariffID       *int64
}

func (r orderTariffRow) dimensions() catalogue.Dimensions {
	return catalogue.Dimensions{
		Country:      kernel.OptionalID(r.CountryID),
		Urgency:      kernel.OptionalID(r.UrgencyID),
		VisaDuration: kernel.OptionalID(r.VisaDurationID),
		VisaType:     kernel.OptionalID(r.VisaTypeID),
	}
}

type serviceColumns struct {
	ServiceID             int64
	Name                  string
	FeeType               string
	ServiceCountryID      *int64
	ServiceUrgencyID      *int64
	ServiceVisaDurationID *int64
	ServiceVisaTypeID     *int64
}

func (c serviceColumns) toDomain() (catalogue.Service, error) {
	return catalogue.NewService(kernel.ID(c.ServiceID), c.Name, catalogue.FeeType(c.FeeType), catalogue.Dimensions{
		Country:      kernel.OptionalID(c.ServiceCountryID),
		Urgency:      kernel.OptionalID(c.ServiceUrgencyID),
		VisaDuration: kernel.OptionalID(c.ServiceVisaDurationID),
		VisaType:     kernel.OptionalID(c.ServiceVisaTypeID),
	})
}

type attachedRow struct {
	ID        int64
	OrderID   int64
	Service   serviceColumns `gorm:"embedded"`
	Price     decimal.Decimal
	Tax       decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
}

type candidateRow struct {
	TariffServiceID int64
	TariffID        int64
	Service         serviceColumns `gorm:"embedded"`
	Price           decimal.Decimal
	Tax             decimal.Decimal
}

const serviceSelect = `
	s.id AS service_id, s.name, s.fee_type,
	s.country_id AS service_country_id,
	s.urgency_id AS service_urgency_id,
	s.visa_duration_id AS service_visa_duration_id,
	s.visa_type_id AS service_visa_type_id`

// Handle returns both lists ordered by service name.
//
// Returns:
//   - errs.ObjectNotFoundError when the order does not exist
//   - errs.PreconditionFailedError when the order's client has no tariff
func (h GetOrderServicesQueryHandler) Handle(
	ctx context.Context,
	query GetOrderServicesQuery,
) (GetOrderServicesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderServicesQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Int64()

	var head orderTariffRow
	result := db.Raw(`
		SELECT o.client_id, o.country_id, o.urgency_id, o.visa_duration_id, o.visa_type_id, c.tariff_id
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE o.id = ?
	`, orderID).Scan(&head)
	if result.Error != nil {
		return GetOrderServicesQueryResponse{}, storeerr.Translate(h.logger, "get order tariff", result.Error)
	}
	if result.RowsAffected == 0 {
		return GetOrderServicesQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)
	}
	if head.TariffID == nil {
		return GetOrderServicesQueryResponse{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("client %d of order %d has no tariff", head.ClientID, orderID),
		)
	}
	tariffID := kernel.ID(*head.TariffID)

	var attachedRows []attachedRow
	err := db.Raw(`
		SELECT os.id, os.order_id, `+serviceSelect+`,
			os.price, os.tax, os.tax_amount, os.total
		FROM order_services os
		JOIN services s ON s.id = os.service_id
		WHERE os.order_id = ?
		ORDER BY s.name, os.id
	`, orderID).Scan(&attachedRows).Error
	if err != nil {
		return GetOrderServicesQueryResponse{}, storeerr.Translate(h.logger, "list attached services", err)
	}

	where, args := dimensionPredicate(head.dimensions())
	var candidateRows []candidateRow
	err = db.Raw(`
		SELECT ts.id AS tariff_service_id, ts.tariff_id, `+serviceSelect+`, ts.price, ts.tax
		FROM services s
		JOIN tariff_services ts ON ts.service_id = s.id
		WHERE ts.tariff_id = ?
			AND s.id NOT IN (SELECT service_id FROM order_services WHERE order_id = ?)
			AND `+where+`
		ORDER BY s.name, s.id
	`, append([]any{tariffID.Int64(), orderID}, args...)...).Scan(&candidateRows).Error
	if err != nil {
		return GetOrderServicesQueryResponse{}, storeerr.Translate(h.logger, "list available services", err)
	}

	attached, err := toAttachedServices(attachedRows)
	if err != nil {
		return GetOrderServicesQueryResponse{}, err
	}
	candidates, err := toAvailableServices(candidateRows)
	if err != nil {
		return GetOrderServicesQueryResponse{}, err
	}

	eligibility := h.resolver.Partition(tariffID, head.dimensions(), attached, candidates)
	return newGetOrderServicesResponse(eligibility), nil
}

// dimensionPredicate renders the wildcard rule for every dimension: an
// untagged order only admits untagged services, a tagged one admits untagged
// services and services with the same tag.
func dimensionPredicate(order catalogue.Dimensions) (string, []any) {
	columns := map[catalogue.Dimension]string{
		catalogue.Country:      "s.country_id",
		catalogue.Urgency:      "s.urgency_id",
		catalogue.VisaDuration: "s.visa_duration_id",
		catalogue.VisaType:     "s.visa_type_id",
	}

	where := ""
	args := make([]any, 0, len(columns))
	for i, dimension := range catalogue.AllDimensions() {
		if i > 0 {
			where += " AND "
		}
		column := columns[dimension]
		value := order.Value(dimension)
		if value == nil {
			where += column + " IS NULL"
			continue
		}
		where += "(" + column + " IS NULL OR " + column + " = ?)"
		args = append(args, value.Int64())
	}
	return where, args
}

func toAttachedServices(rows []attachedRow) ([]services.AttachedService, error) {
	result := make([]services.AttachedService, 0, len(rows))
	for _, r := range rows {
		service, err := r.Service.toDomain()
		if err != nil {
			return nil, err
		}
		a, err := attachment.Restore(kernel.ID(r.ID), kernel.ID(r.OrderID), kernel.ID(r.Service.ServiceID),
			pricing.RestoreSnapshot(r.Price, r.Tax, r.TaxAmount, r.Total))
		if err != nil {
			return nil, err
		}
		result = append(result, services.AttachedService{Attachment: a, Service: service})
	}
	return result, nil
}

func toAvailableServices(rows []candidateRow) ([]services.AvailableService, error) {
	result := make([]services.AvailableService, 0, len(rows))
	for _, r := range rows {
		service, err := r.Service.toDomain()
		if err != nil {
			return nil, err
		}
		ts, err := catalogue.NewTariffService(kernel.ID(r.TariffServiceID), kernel.ID(r.Service.ServiceID),
			kernel.ID(r.TariffID), r.Price, r.Tax)
		if err != nil {
			return nil, err
		}
		result = append(result, services.AvailableService{Service: service, TariffService: ts})
	}
	return result, nil
}

func newGetOrderServicesResponse(e services.Eligibility) GetOrderServicesQueryResponse {
	resp := GetOrderServicesQueryResponse{
		Attached:  make([]AttachedServiceResponse, 0, len(e.Attached)),
		Available: make([]AvailableServiceResponse, 0, len(e.Available)),
	}

	for _, a := range e.Attached {
		resp.Attached = append(resp.Attached, AttachedServiceResponse{
			ID:        a.Attachment.ID(),
			ServiceID: a.Service.ID(),
			Name:      a.Service.Name(),
			FeeType:   a.Service.FeeType(),
			Money:     moneyOf(a.Attachment.Pricing()),
		})
	}

	for _, s := range e.Available {
		resp.Available = append(resp.Available, AvailableServiceResponse{
			TariffServiceID: s.TariffService.ID(),
			ServiceID:       s.Service.ID(),
			Name:            s.Service.Name(),
			FeeType:         s.Service.FeeType(),
			Money:           moneyOf(s.TariffService.Pricing()),
		})
	}

	return resp
}

func moneyOf(s pricing.Snapshot) Money {
	return Money{
		Price:     s.Price(),
		Tax:       s.Tax(),
		TaxAmount: s.TaxAmount(),
		Total:     s.Total(),
	}
}
