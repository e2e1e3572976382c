package leave

import (
	"context"
	"testing"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePolicyRepo struct {
	policies map[string]leave.LeavePolicy
}

func (r *fakePolicyRepo) GetByOrgID(_ context.Context, orgID string) (leave.LeavePolicy, error) {
	policy, ok := r.policies[orgID]
	if !ok {
		return leave.LeavePolicy{}, leave.ErrPolicyNotFound
	}
	return policy, nil
}

func (r *fakePolicyRepo) Upsert(_ context.Context, policy leave.LeavePolicy) (leave.LeavePolicy, error) {
	r.policies[policy.OrgID] = policy
	return policy, nil
}

type fakeOverrideRepo struct {
	overrides []leave.AllowanceOverride
}

func (r *fakeOverrideRepo) GetByUserAndYear(_ context.Context, userID string, year int) (*leave.AllowanceOverride, error) {
	var unscoped *leave.AllowanceOverride
	for i := range r.overrides {
		o := r.overrides[i]
		if o.UserID != userID {
			continue
		}
		if o.Year != nil && *o.Year == year {
			return &o, nil
		}
		if o.Year == nil {
			unscoped = &o
		}
	}
	return unscoped, nil
}

func (r *fakeOverrideRepo) Upsert(_ context.Context, override leave.AllowanceOverride) (leave.AllowanceOverride, error) {
	r.overrides = append(r.overrides, override)
	return override, nil
}

func newBalanceFixture(policy leave.LeavePolicy) (*BalanceService, *fakeLeaveRequestRepo, *fakeOverrideRepo) {
	policyRepo := &fakePolicyRepo{policies: map[string]leave.LeavePolicy{policy.OrgID: policy}}
	overrideRepo := &fakeOverrideRepo{}
	leaveRepo := newFakeLeaveRequestRepo()
	return NewBalanceService(policyRepo, overrideRepo, leaveRepo), leaveRepo, overrideRepo
}

func TestBalanceService_Remaining(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	policy := leave.LeavePolicy{
		OrgID:               "org-1",
		AnnualAllowance:     25,
		LeaveYearStartMonth: 1,
		LeaveYearStartDay:   1,
	}

	t.Run("subtracts used PTO days", func(t *testing.T) {
		svc, leaveRepo, _ := newBalanceFixture(policy)
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2025-03-03")
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2025-03-04")
		seedLeaveDay(t, leaveRepo, "user-1", "SICK", "2025-03-05")

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 25, balance.AnnualAllowance)
		assert.Equal(t, 2, balance.Used)
		assert.Equal(t, 23, balance.Remaining)
	})

	t.Run("ignores days outside the leave year", func(t *testing.T) {
		svc, leaveRepo, _ := newBalanceFixture(policy)
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2024-12-30")
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2025-03-03")

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 1, balance.Used)
	})

	t.Run("ignores other users", func(t *testing.T) {
		svc, leaveRepo, _ := newBalanceFixture(policy)
		seedLeaveDay(t, leaveRepo, "user-2", "PTO", "2025-03-03")

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 0, balance.Used)
	})

	t.Run("clamps remaining at zero", func(t *testing.T) {
		small := policy
		small.AnnualAllowance = 1
		svc, leaveRepo, _ := newBalanceFixture(small)
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2025-03-03")
		seedLeaveDay(t, leaveRepo, "user-1", "PTO", "2025-03-04")

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 2, balance.Used)
		assert.Equal(t, 0, balance.Remaining)
	})

	t.Run("adds carryover to the allowance", func(t *testing.T) {
		carry := policy
		carry.CarryoverDays = 5
		svc, _, _ := newBalanceFixture(carry)

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 30, balance.AnnualAllowance)
		assert.Equal(t, 30, balance.Remaining)
	})

	t.Run("override replaces the org default", func(t *testing.T) {
		svc, _, overrideRepo := newBalanceFixture(policy)
		year := 2025
		overrideRepo.overrides = append(overrideRepo.overrides, leave.AllowanceOverride{
			UserID:        "user-1",
			Year:          &year,
			AllowanceDays: 30,
		})

		balance, err := svc.Remaining(ctx, "user-1", "org-1", today)

		require.NoError(t, err)
		assert.Equal(t, 30, balance.AnnualAllowance)
	})

	t.Run("missing policy surfaces the error", func(t *testing.T) {
		svc, _, _ := newBalanceFixture(policy)

		_, err := svc.Remaining(ctx, "user-1", "org-unknown", today)

		assert.ErrorIs(t, err, leave.ErrPolicyNotFound)
	})
}

func TestLeaveYearWindow(t *testing.T) {
	tests := []struct {
		name       string
		startMonth int
		startDay   int
		today      time.Time
		wantFrom   time.Time
		wantTo     time.Time
	}{
		{
			name:       "calendar year",
			startMonth: 1, startDay: 1,
			today:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "april start after boundary",
			startMonth: 4, startDay: 1,
			today:    time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "april start before boundary wraps back",
			startMonth: 4, startDay: 1,
			today:    time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:       "today on the boundary starts a new year",
			startMonth: 4, startDay: 1,
			today:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantFrom: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := LeaveYearWindow(tt.startMonth, tt.startDay, tt.today)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
