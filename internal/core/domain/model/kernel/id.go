package kernel

import (
	"fmt"
	"strconv"

	"visadesk/internal/pkg/errs"
)

// ID is the surrogate key of a persisted entity. Keys are assigned by the
// store, so the zero value means "not persisted yet" and is never valid as a
// reference.
type ID int64

// NewID converts a raw key into an ID, rejecting non-positive values.
//
// Example:
//
//	countryID, err := kernel.NewID(req.CountryID)
//	if err != nil {
//	    return err
//	}
func NewID(value int64) (ID, error) {
	id := ID(value)
	if err := id.Validate(); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseID parses a decimal key, as found in URL paths and headers.
func ParseID(raw string) (ID, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(value)
}

// Validate reports whether the ID references a persisted entity.
func (id ID) Validate() error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not greater than 0", id))
	}
	return nil
}

// Int64 returns the raw key.
func (id ID) Int64() int64 {
	return int64(id)
}

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// OptionalID converts a nullable raw key. Nil stays nil.
func OptionalID(value *int64) *ID {
	if value == nil {
		return nil
	}
	id := ID(*value)
	return &id
}

// RawOptionalID is the inverse of OptionalID.
func RawOptionalID(id *ID) *int64 {
	if id == nil {
		return nil
	}
	value := int64(*id)
	return &value
}
