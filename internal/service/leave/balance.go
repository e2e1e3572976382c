package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
)

type BalanceService struct {
	leave.PolicyRepository
	leave.OverrideRepository
	leave.LeaveRequestRepository
}

func NewBalanceService(policyRepository leave.PolicyRepository, overrideRepository leave.OverrideRepository, leaveRequestRepository leave.LeaveRequestRepository) *BalanceService {
	return &BalanceService{
		PolicyRepository:       policyRepository,
		OverrideRepository:     overrideRepository,
		LeaveRequestRepository: leaveRequestRepository,
	}
}

// Remaining implements leave.BalanceCalculator. The allowance is the per-user
// override when one matches the current leave year, else the org default,
// plus the org carryover. Used days are PTO rows inside the leave-year window
// containing today.
func (s *BalanceService) Remaining(ctx context.Context, userID, orgID string, today time.Time) (leave.Balance, error) {
	policy, err := s.PolicyRepository.GetByOrgID(ctx, orgID)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get leave policy: %w", err)
	}

	from, to := LeaveYearWindow(policy.LeaveYearStartMonth, policy.LeaveYearStartDay, today)

	allowance := policy.AnnualAllowance
	override, err := s.OverrideRepository.GetByUserAndYear(ctx, userID, from.Year())
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to get allowance override: %w", err)
	}
	if override != nil {
		allowance = override.AllowanceDays
	}
	allowance += policy.CarryoverDays

	used, err := s.LeaveRequestRepository.CountByUserTypeAndRange(ctx, userID, leave.LeaveTypePTO, from, to)
	if err != nil {
		return leave.Balance{}, fmt.Errorf("failed to count used PTO days: %w", err)
	}

	remaining := allowance - used
	if remaining < 0 {
		remaining = 0
	}

	return leave.Balance{
		AnnualAllowance: allowance,
		Used:            used,
		Remaining:       remaining,
	}, nil
}

// LeaveYearWindow returns the 12-month window [from, to) that starts on the
// policy's start month/day and contains today. A start date later in the
// calendar than today wraps back to the previous year.
func LeaveYearWindow(startMonth, startDay int, today time.Time) (from, to time.Time) {
	from = time.Date(today.Year(), time.Month(startMonth), startDay, 0, 0, 0, 0, time.UTC)
	if from.After(today) {
		from = from.AddDate(-1, 0, 0)
	}
	to = from.AddDate(1, 0, 0)
	return from, to
}
