package auditrepo_test

import (
	"testing"
	"time"

	"visadesk/internal/adapters/out/postgres/auditrepo"
	"visadesk/internal/adapters/out/postgres/pgtest"
	"visadesk/internal/core/domain/model/audit"
	"visadesk/internal/core/domain/model/kernel"
	"visadesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppend(t *testing.T) {
	db := pgtest.OpenSQLite(t)
	userID := pgtest.NewFixture(t, db).User("manager@example.com")
	repo := auditrepo.NewGormAuditRepository(db, zap.NewNop())

	t.Run("user action", func(t *testing.T) {
		entry, err := audit.NewOrderEntry(userID, audit.ActionCreate, kernel.ID(42), time.Now().UTC())
		require.NoError(t, err)

		require.NoError(t, repo.Append(t.Context(), entry))
		assert.Positive(t, entry.ID().Int64())

		var stored auditrepo.LogEntryDTO
		require.NoError(t, db.First(&stored, entry.ID().Int64()).Error)
		require.NotNil(t, stored.UserID)
		assert.Equal(t, userID.Int64(), *stored.UserID)
		assert.Equal(t, "create", stored.Action)
		assert.Equal(t, audit.ModelTypeOrder, stored.ModelType)
		require.NotNil(t, stored.TargetID)
		assert.Equal(t, int64(42), *stored.TargetID)
	})

	t.Run("system action", func(t *testing.T) {
		entry, err := audit.NewEntry(nil, audit.ActionUpdate, audit.ModelTypeOrder, nil, time.Now().UTC())
		require.NoError(t, err)

		require.NoError(t, repo.Append(t.Context(), entry))

		var stored auditrepo.LogEntryDTO
		require.NoError(t, db.First(&stored, entry.ID().Int64()).Error)
		assert.Nil(t, stored.UserID)
		assert.Nil(t, stored.TargetID)
	})

	t.Run("unknown user", func(t *testing.T) {
		entry, err := audit.NewOrderEntry(kernel.ID(999), audit.ActionUpdate, kernel.ID(42), time.Now().UTC())
		require.NoError(t, err)

		err = repo.Append(t.Context(), entry)
		require.ErrorIs(t, err, errs.ErrConstraintViolation)
	})

	t.Run("nil entry", func(t *testing.T) {
		require.ErrorIs(t, repo.Append(t.Context(), nil), errs.ErrValueIsRequired)
	})
}
