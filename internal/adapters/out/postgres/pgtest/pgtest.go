// Package pgtest opens migrated databases for adapter and query tests and
// seeds the reference rows those tests need.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"visadesk/internal/adapters/out/postgres"
	"visadesk/internal/adapters/out/postgres/cataloguerepo"
	"visadesk/internal/adapters/out/postgres/orderrepo"
	"visadesk/internal/adapters/out/postgres/reference"
	"visadesk/internal/core/domain/model/catalogue"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// OpenSQLite returns a private in-memory database with foreign keys enforced
// and the full schema migrated. The pool holds a single connection, so a test
// must not read through the plain handle while a transaction is open.
func OpenSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(t.Context(), db))
	return db
}

// StartPostgres runs a disposable PostgreSQL container and returns a migrated
// connection to it. The caller terminates the container.
func StartPostgres(ctx context.Context) (*tcpostgres.PostgresContainer, *gorm.DB, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Discard,
	})
	if err != nil {
		return container, nil, err
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		return container, nil, err
	}
	return container, db, nil
}

// TruncateAll empties every table of a PostgreSQL database and resets its sequences.
func TruncateAll(db *gorm.DB) error {
	return db.Exec(`TRUNCATE TABLE
		log_entries, order_services, applicants, orders, tariff_services, services,
		clients, tariffs, users, visa_types, visa_durations, urgencies, countries
		RESTART IDENTITY CASCADE`).Error
}

// Fixture inserts reference and catalogue rows.
type Fixture struct {
	t  testing.TB
	db *gorm.DB
}

// NewFixture binds a fixture to a test and a database.
func NewFixture(t testing.TB, db *gorm.DB) *Fixture {
	return &Fixture{t: t, db: db}
}

func (f *Fixture) Country(name string) kernel.ID {
	dto := reference.CountryDTO{Name: name}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

func (f *Fixture) Urgency(name string) kernel.ID {
	dto := reference.UrgencyDTO{Name: name}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

func (f *Fixture) VisaDuration(name string) kernel.ID {
	dto := reference.VisaDurationDTO{Name: name}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

func (f *Fixture) VisaType(name string) kernel.ID {
	dto := reference.VisaTypeDTO{Name: name}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

func (f *Fixture) User(email string) kernel.ID {
	dto := reference.UserDTO{Email: email, FirstName: "Test", LastName: "User"}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

func (f *Fixture) Tariff(name string) kernel.ID {
	dto := reference.TariffDTO{Name: name}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

// Client creates a client; a nil tariff leaves the client unpriced.
func (f *Fixture) Client(name string, tariffID *kernel.ID) kernel.ID {
	dto := reference.ClientDTO{Name: name, Email: "client@example.com", TariffID: kernel.RawOptionalID(tariffID)}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

// Service creates a catalogue service; nil dimensions are wildcards.
func (f *Fixture) Service(name string, dims catalogue.Dimensions) kernel.ID {
	dto := cataloguerepo.ServiceDTO{
		Name:           name,
		FeeType:        string(catalogue.FeeTypeGeneral),
		CountryID:      kernel.RawOptionalID(dims.Country),
		UrgencyID:      kernel.RawOptionalID(dims.Urgency),
		VisaDurationID: kernel.RawOptionalID(dims.VisaDuration),
		VisaTypeID:     kernel.RawOptionalID(dims.VisaType),
	}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

// Price prices a service under a tariff and returns the tariff service id.
func (f *Fixture) Price(serviceID, tariffID kernel.ID, price, tax string) kernel.ID {
	dto := cataloguerepo.TariffServiceDTO{
		ServiceID: serviceID.Int64(),
		TariffID:  tariffID.Int64(),
		Price:     decimal.RequireFromString(price),
		Tax:       decimal.RequireFromString(tax),
	}
	f.create(&dto)
	return kernel.ID(dto.ID)
}

// Reprice changes an existing catalogue price.
func (f *Fixture) Reprice(tariffServiceID kernel.ID, price, tax string) {
	f.t.Helper()

	var dto cataloguerepo.TariffServiceDTO
	require.NoError(f.t, f.db.First(&dto, tariffServiceID.Int64()).Error)
	dto.Price = decimal.RequireFromString(price)
	dto.Tax = decimal.RequireFromString(tax)
	require.NoError(f.t, f.db.Save(&dto).Error)
}

// Order stores an order through the order repository.
func (f *Fixture) Order(details order.Details, applicant *order.Applicant) *order.Order {
	f.t.Helper()

	o, err := order.NewOrder(details, nil, applicant, time.Now().UTC())
	require.NoError(f.t, err)
	require.NoError(f.t, orderrepo.NewGormOrderRepository(f.db, zap.NewNop()).Add(f.t.Context(), o))
	return o
}

func (f *Fixture) create(value any) {
	f.t.Helper()
	require.NoError(f.t, f.db.Omit(clause.Associations).Create(value).Error)
}
