package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) leave.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

func (r *policyRepositoryImpl) GetByOrgID(ctx context.Context, orgID string) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, org_id, annual_allowance, carryover_days,
			   leave_year_start_month, leave_year_start_day,
			   created_at, updated_at
		FROM leave_policies
		WHERE org_id = $1
	`

	var policy leave.LeavePolicy
	err := q.QueryRow(ctx, query, orgID).Scan(
		&policy.ID, &policy.OrgID, &policy.AnnualAllowance, &policy.CarryoverDays,
		&policy.LeaveYearStartMonth, &policy.LeaveYearStartDay,
		&policy.CreatedAt, &policy.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeavePolicy{}, leave.ErrPolicyNotFound
		}
		return leave.LeavePolicy{}, err
	}

	return policy, nil
}

func (r *policyRepositoryImpl) Upsert(ctx context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeavePolicy{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO leave_policies (
			id, org_id, annual_allowance, carryover_days,
			leave_year_start_month, leave_year_start_day,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (org_id) DO UPDATE SET
			annual_allowance = EXCLUDED.annual_allowance,
			carryover_days = EXCLUDED.carryover_days,
			leave_year_start_month = EXCLUDED.leave_year_start_month,
			leave_year_start_day = EXCLUDED.leave_year_start_day,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(), policy.OrgID, policy.AnnualAllowance, policy.CarryoverDays,
		policy.LeaveYearStartMonth, policy.LeaveYearStartDay,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
	if err != nil {
		return leave.LeavePolicy{}, err
	}

	return policy, nil
}

type overrideRepositoryImpl struct {
	db *database.DB
}

func NewOverrideRepository(db *database.DB) leave.OverrideRepository {
	return &overrideRepositoryImpl{db: db}
}

// GetByUserAndYear implements leave.OverrideRepository. Year-scoped rows sort
// before the unscoped fallback, so the first row wins.
func (r *overrideRepositoryImpl) GetByUserAndYear(ctx context.Context, userID string, year int) (*leave.AllowanceOverride, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, org_id, year, allowance_days, created_at, updated_at
		FROM leave_allowance_overrides
		WHERE user_id = $1 AND (year = $2 OR year IS NULL)
		ORDER BY year NULLS LAST
		LIMIT 1
	`

	var override leave.AllowanceOverride
	err := q.QueryRow(ctx, query, userID, year).Scan(
		&override.ID, &override.UserID, &override.OrgID, &override.Year,
		&override.AllowanceDays, &override.CreatedAt, &override.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &override, nil
}

func (r *overrideRepositoryImpl) Upsert(ctx context.Context, override leave.AllowanceOverride) (leave.AllowanceOverride, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.AllowanceOverride{}, fmt.Errorf("failed to generate id: %w", err)
	}

	// Partial unique indexes cover (user_id, year) and the year-IS-NULL row,
	// which plain ON CONFLICT cannot target together; delete-then-insert
	// inside the caller's transaction keeps one row per scope.
	deleteQuery := `
		DELETE FROM leave_allowance_overrides
		WHERE user_id = $1 AND year IS NOT DISTINCT FROM $2
	`
	if _, err := q.Exec(ctx, deleteQuery, override.UserID, override.Year); err != nil {
		return leave.AllowanceOverride{}, err
	}

	insertQuery := `
		INSERT INTO leave_allowance_overrides (
			id, user_id, org_id, year, allowance_days, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, insertQuery,
		id.String(), override.UserID, override.OrgID, override.Year, override.AllowanceDays,
	).Scan(&override.ID, &override.CreatedAt, &override.UpdatedAt)
	if err != nil {
		return leave.AllowanceOverride{}, err
	}

	return override, nil
}
