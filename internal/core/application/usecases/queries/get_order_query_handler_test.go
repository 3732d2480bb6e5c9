package queries_test

import (
	"testing"

	"visadesk/internal/core/application/usecases/queries"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/core/domain/model/order"
	"visadesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGetOrderQueryHandler(t *testing.T) {
	w := newWorld(t)
	applicant, err := order.NewApplicant("Jane", "Doe", "jane@example.com", order.Female)
	require.NoError(t, err)
	stored := w.fixture.Order(w.details(), &applicant)

	handler := queries.NewGetOrderQueryHandler(w.db, zap.NewNop())

	t.Run("hydrates references", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(stored.ID(), false)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		assert.Equal(t, stored.ID(), resp.ID)
		assert.Equal(t, stored.Number(), resp.Number)
		assert.Equal(t, order.Draft, resp.Status)
		require.NotNil(t, resp.Country)
		assert.Equal(t, "France", resp.Country.Name)
		require.NotNil(t, resp.Urgency)
		assert.Equal(t, "Standard", resp.Urgency.Name)
		require.NotNil(t, resp.VisaDuration)
		assert.Equal(t, "30 days", resp.VisaDuration.Name)
		require.NotNil(t, resp.VisaType)
		assert.Equal(t, "Tourist", resp.VisaType.Name)
		require.NotNil(t, resp.CreatedBy)
		assert.Equal(t, "manager@example.com", resp.CreatedBy.Email)
		assert.Equal(t, w.client, resp.ClientID)
		assert.Nil(t, resp.Client)
		assert.Nil(t, resp.CompletedAt)
		assert.Nil(t, resp.ArchivedAt)

		require.NotNil(t, resp.Applicant)
		assert.Equal(t, "Jane", resp.Applicant.FirstName)
		assert.Equal(t, order.Female, resp.Applicant.Gender)
	})

	t.Run("populates client on request", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(stored.ID(), true)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)

		require.NotNil(t, resp.Client)
		assert.Equal(t, "Acme Travel", resp.Client.Name)
		require.NotNil(t, resp.Client.TariffID)
		assert.Equal(t, w.tariff, *resp.Client.TariffID)
	})

	t.Run("order without applicant", func(t *testing.T) {
		bare := w.order(t)
		query, err := queries.NewGetOrderQuery(bare.ID(), false)
		require.NoError(t, err)

		resp, err := handler.Handle(t.Context(), query)
		require.NoError(t, err)
		assert.Nil(t, resp.Applicant)
	})

	t.Run("not found", func(t *testing.T) {
		query, err := queries.NewGetOrderQuery(kernel.ID(9999), false)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), query)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("not constructed", func(t *testing.T) {
		_, err := handler.Handle(t.Context(), queries.GetOrderQuery{})
		require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	})
}
