package services

import (
	"cmp"
	"slices"

	"visadesk/internal/core/domain/model/attachment"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
)

// AttachedService is an attachment together with the catalogue service it refers to.
type AttachedService struct {
	Attachment attachment.Attachment
	Service    catalogue.Service
}

// AvailableService is a catalogue service with its price under the client's tariff.
// TariffService.ID is the handle used to attach it.
type AvailableService struct {
	Service       catalogue.Service
	TariffService catalogue.TariffService
}

// Eligibility is the partition of an order's catalogue.
type Eligibility struct {
	Attached  []AttachedService
	Available []AvailableService
}

// EligibilityResolver decides which catalogue services an order may use.
//
// Business rules:
//   - a service is available only if it is priced under the client's tariff
//   - every dimension of the service must be a wildcard or an exact match
//     for the order (see catalogue.MatchDimension)
//   - a service already attached is never available
//   - both lists are ordered by service name
//
// Example usage:
//
//	resolver := services.NewEligibilityResolver()
//	result := resolver.Partition(tariffID, o.Dimensions(), attached, candidates)
//	for _, s := range result.Available {
//	    fmt.Println(s.Service.Name(), s.TariffService.Pricing().Total())
//	}
type EligibilityResolver struct{}

// NewEligibilityResolver creates a new EligibilityResolver instance.
func NewEligibilityResolver() EligibilityResolver {
	return EligibilityResolver{}
}

// Partition splits candidates into what the order may still attach.
//
// Candidates are usually pre-filtered by the store; Partition applies the
// rules again so the result does not depend on how the query was written.
//
// Parameters:
//   - tariffID: the tariff of the order's client
//   - order: the order's dimension values (nil entries are untagged)
//   - attached: the order's current attachments
//   - candidates: priced services to consider
//
// Returns:
//   - Eligibility with disjoint Attached and Available lists
func (r EligibilityResolver) Partition(
	tariffID kernel.ID,
	order catalogue.Dimensions,
	attached []AttachedService,
	candidates []AvailableService,
) Eligibility {
	taken := make(map[kernel.ID]struct{}, len(attached))
	for _, a := range attached {
		taken[a.Service.ID()] = struct{}{}
	}

	available := make([]AvailableService, 0, len(candidates))
	for _, c := range candidates {
		if c.TariffService.TariffID() != tariffID || c.TariffService.ServiceID() != c.Service.ID() {
			continue
		}
		if _, ok := taken[c.Service.ID()]; ok {
			continue
		}
		if !c.Service.IsEligibleFor(order) {
			continue
		}
		// (service, tariff) is unique, so one entry per service is enough
		taken[c.Service.ID()] = struct{}{}
		available = append(available, c)
	}

	sortedAttached := slices.Clone(attached)
	slices.SortStableFunc(sortedAttached, func(a, b AttachedService) int {
		return cmp.Or(cmp.Compare(a.Service.Name(), b.Service.Name()), cmp.Compare(a.Attachment.ID(), b.Attachment.ID()))
	})
	slices.SortStableFunc(available, func(a, b AvailableService) int {
		return cmp.Or(cmp.Compare(a.Service.Name(), b.Service.Name()), cmp.Compare(a.Service.ID(), b.Service.ID()))
	})

	if sortedAttached == nil {
		sortedAttached = []AttachedService{}
	}

	return Eligibility{
		Attached:  sortedAttached,
		Available: available,
	}
}
