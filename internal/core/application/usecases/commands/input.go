package commands

import (
	"fmt"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"
)

// ApplicantData is the raw applicant payload accepted by order commands.
type ApplicantData struct {
	FirstName string
	LastName  string
	Email     string
	Gender    string
}

func (d ApplicantData) toDomain() (order.Applicant, error) {
	return order.NewApplicant(d.FirstName, d.LastName, d.Email, order.Gender(d.Gender))
}

func parseApplicant(data *ApplicantData) (*order.Applicant, error) {
	if data == nil {
		return nil, nil
	}
	a, err := data.toDomain()
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func parseStatus(raw *string) (*order.Status, error) {
	if raw == nil {
		return nil, nil
	}
	s, err := order.ParseStatus(*raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func requiredID(param string, raw int64) (kernel.ID, error) {
	if raw == 0 {
		return 0, errs.NewValueIsRequiredError(param)
	}
	id, err := kernel.NewID(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", param, err)
	}
	return id, nil
}

func optionalID(param string, raw *int64) (*kernel.ID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := requiredID(param, *raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
