package catalogue

import "visadesk/internal/core/domain/model/kernel"

// Dimension is one of the axes that tag both services and orders.
type Dimension int

const (
	Country Dimension = iota + 1
	Urgency
	VisaDuration
	VisaType
)

// AllDimensions lists every dimension in a stable order.
func AllDimensions() []Dimension {
	return []Dimension{Country, Urgency, VisaDuration, VisaType}
}

func (d Dimension) String() string {
	switch d {
	case Country:
		return "country"
	case Urgency:
		return "urgency"
	case VisaDuration:
		return "visa_duration"
	case VisaType:
		return "visa_type"
	default:
		return "unknown"
	}
}

// Match is the outcome of comparing one service dimension with one order dimension.
type Match int

const (
	// Mismatch excludes the service.
	Mismatch Match = iota
	// Wildcard means the service is untagged on this dimension.
	Wildcard
	// Exact means both sides carry the same value.
	Exact
)

func (m Match) String() string {
	switch m {
	case Wildcard:
		return "wildcard"
	case Exact:
		return "exact"
	default:
		return "mismatch"
	}
}

// MatchDimension compares a service's tag with an order's value on one dimension.
//
//	service NULL               -> Wildcard (whatever the order holds, NULL included)
//	service set, order NULL    -> Mismatch
//	service set, order equal   -> Exact
//	service set, order differs -> Mismatch
func MatchDimension(serviceValue, orderValue *kernel.ID) Match {
	if serviceValue == nil {
		return Wildcard
	}
	if orderValue == nil || *serviceValue != *orderValue {
		return Mismatch
	}
	return Exact
}

// Dimensions carries the nullable value of every dimension.
type Dimensions struct {
	Country      *kernel.ID
	Urgency      *kernel.ID
	VisaDuration *kernel.ID
	VisaType     *kernel.ID
}

// Value returns the value held for d.
func (d Dimensions) Value(dimension Dimension) *kernel.ID {
	switch dimension {
	case Country:
		return d.Country
	case Urgency:
		return d.Urgency
	case VisaDuration:
		return d.VisaDuration
	case VisaType:
		return d.VisaType
	default:
		return nil
	}
}

// Admits reports whether a service tagged with d may serve an order tagged
// with order. Every dimension must be a Wildcard or an Exact match.
func (d Dimensions) Admits(order Dimensions) bool {
	for _, dimension := range AllDimensions() {
		if MatchDimension(d.Value(dimension), order.Value(dimension)) == Mismatch {
			return false
		}
	}
	return true
}
