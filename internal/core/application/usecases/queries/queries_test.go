package queries_test

import (
	"testing"

	"visadesk/internal/adapters/out/postgres/pgtest"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// world is a seeded database with one of every reference row.
type world struct {
	db      *gorm.DB
	fixture *pgtest.Fixture

	country      kernel.ID
	otherCountry kernel.ID
	urgency      kernel.ID
	visaDuration kernel.ID
	visaType     kernel.ID
	manager      kernel.ID
	tariff       kernel.ID
	client       kernel.ID
}

func newWorld(t *testing.T) *world {
	t.Helper()

	db := pgtest.OpenSQLite(t)
	fixture := pgtest.NewFixture(t, db)
	tariff := fixture.Tariff("Base")

	return &world{
		db:           db,
		fixture:      fixture,
		country:      fixture.Country("France"),
		otherCountry: fixture.Country("Japan"),
		urgency:      fixture.Urgency("Standard"),
		visaDuration: fixture.VisaDuration("30 days"),
		visaType:     fixture.VisaType("Tourist"),
		manager:      fixture.User("manager@example.com"),
		tariff:       tariff,
		client:       fixture.Client("Acme Travel", &tariff),
	}
}

func (w *world) details() order.Details {
	return order.Details{
		CountryID:      w.country,
		ClientID:       w.client,
		CreatedByID:    w.manager,
		UrgencyID:      w.urgency,
		VisaDurationID: w.visaDuration,
		VisaTypeID:     w.visaType,
	}
}

func (w *world) order(t *testing.T) *order.Order {
	t.Helper()
	return w.fixture.Order(w.details(), nil)
}

func ptr[T any](v T) *T {
	return &v
}

func untagged() catalogue.Dimensions {
	return catalogue.Dimensions{}
}
