package postgresql_test

import (
	"context"
	"testing"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicyRepository_Upsert_SameOrgOverwrites(t *testing.T) {
	db := setupTestDB(t)
	defer truncateTables(t, db)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewPolicyRepository(db)

	first, err := repo.Upsert(ctx, leave.LeavePolicy{
		OrgID:               "org-1",
		AnnualAllowance:     25,
		LeaveYearStartMonth: 1,
		LeaveYearStartDay:   1,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, leave.LeavePolicy{
		OrgID:               "org-1",
		AnnualAllowance:     30,
		CarryoverDays:       5,
		LeaveYearStartMonth: 4,
		LeaveYearStartDay:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	stored, err := repo.GetByOrgID(ctx, "org-1")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.AnnualAllowance)
	assert.Equal(t, 5, stored.CarryoverDays)
	assert.Equal(t, 4, stored.LeaveYearStartMonth)
}

func TestPolicyRepository_GetByOrgID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	defer truncateTables(t, db)
	truncateTables(t, db)

	repo := postgresql.NewPolicyRepository(db)

	_, err := repo.GetByOrgID(context.Background(), "org-unknown")

	assert.ErrorIs(t, err, leave.ErrPolicyNotFound)
}

func TestOverrideRepository_GetByUserAndYear_YearScopedWins(t *testing.T) {
	db := setupTestDB(t)
	defer truncateTables(t, db)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewOverrideRepository(db)

	_, err := repo.Upsert(ctx, leave.AllowanceOverride{
		UserID: "user-1", OrgID: "org-1", AllowanceDays: 20,
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, leave.AllowanceOverride{
		UserID: "user-1", OrgID: "org-1", Year: intPtr(2025), AllowanceDays: 30,
	})
	require.NoError(t, err)

	// NULLS LAST puts the year-scoped row first for its own year.
	override, err := repo.GetByUserAndYear(ctx, "user-1", 2025)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.Equal(t, 30, override.AllowanceDays)

	// Other years fall back to the unscoped row.
	override, err = repo.GetByUserAndYear(ctx, "user-1", 2026)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.Equal(t, 20, override.AllowanceDays)
	assert.Nil(t, override.Year)
}

func TestOverrideRepository_GetByUserAndYear_NoneIsNil(t *testing.T) {
	db := setupTestDB(t)
	defer truncateTables(t, db)
	truncateTables(t, db)

	repo := postgresql.NewOverrideRepository(db)

	override, err := repo.GetByUserAndYear(context.Background(), "user-unknown", 2025)

	require.NoError(t, err)
	assert.Nil(t, override)
}

func TestOverrideRepository_Upsert_ReplacesWithinScope(t *testing.T) {
	db := setupTestDB(t)
	defer truncateTables(t, db)
	truncateTables(t, db)

	ctx := context.Background()
	repo := postgresql.NewOverrideRepository(db)

	_, err := repo.Upsert(ctx, leave.AllowanceOverride{
		UserID: "user-1", OrgID: "org-1", Year: intPtr(2025), AllowanceDays: 30,
	})
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, leave.AllowanceOverride{
		UserID: "user-1", OrgID: "org-1", Year: intPtr(2025), AllowanceDays: 35,
	})
	require.NoError(t, err)

	override, err := repo.GetByUserAndYear(ctx, "user-1", 2025)
	require.NoError(t, err)
	require.NotNil(t, override)
	assert.Equal(t, 35, override.AllowanceDays)
}
