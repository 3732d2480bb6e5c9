package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"
)

// FeeType tells whether a service fee is collected by a consulate or by the agency.
type FeeType string

const (
	FeeTypeConsular FeeType = "consular"
	FeeTypeGeneral  FeeType = "general"
)

// Validate checks the fee type against the known values.
func (f FeeType) Validate() error {
	switch f {
	case FeeTypeConsular, FeeTypeGeneral:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fee_type", fmt.Errorf("%q is not a valid fee type", string(f)))
	}
}

// Service is a catalogue item. It is independent of any tariff; its price
// under a tariff lives in TariffService.
type Service struct {
	id         kernel.ID
	name       string
	feeType    FeeType
	dimensions Dimensions
}

// NewService builds a Service loaded from the catalogue.
func NewService(id kernel.ID, name string, feeType FeeType, dimensions Dimensions) (Service, error) {
	var nameErr error
	if strings.TrimSpace(name) == "" {
		nameErr = errs.NewValueIsRequiredError("name")
	}

	if err := errors.Join(id.Validate(), nameErr, feeType.Validate()); err != nil {
		return Service{}, err
	}

	return Service{
		id:         id,
		name:       name,
		feeType:    feeType,
		dimensions: dimensions,
	}, nil
}

func (s Service) ID() kernel.ID {
	return s.id
}

func (s Service) Name() string {
	return s.name
}

func (s Service) FeeType() FeeType {
	return s.feeType
}

// Dimensions returns the dimension tags; a nil tag is a wildcard.
func (s Service) Dimensions() Dimensions {
	return s.dimensions
}

// IsEligibleFor applies the dimension rule to an order's dimensions.
func (s Service) IsEligibleFor(order Dimensions) bool {
	return s.dimensions.Admits(order)
}
