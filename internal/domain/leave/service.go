package leave

import (
	"context"
	"time"
)

// BalanceCalculator computes the remaining PTO allowance for a user in the
// org's leave year containing today. Read-only; errors only on data access.
type BalanceCalculator interface {
	Remaining(ctx context.Context, userID, orgID string, today time.Time) (Balance, error)
}

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, userID, orgID string, req CreateLeaveRequestRequest) (CreateLeaveResponse, error)
	ListLeaveRequests(ctx context.Context, userID, orgID string, filter ListLeaveFilter) (ListLeaveResponse, error)
	DeleteLeaveRequest(ctx context.Context, userID string, filter DeleteLeaveFilter) error
}

type PolicyService interface {
	GetPolicy(ctx context.Context, orgID string) (PolicyResponse, error)
	UpsertPolicy(ctx context.Context, orgID string, req UpsertPolicyRequest) (PolicyResponse, error)
	SetAllowanceOverride(ctx context.Context, orgID string, req SetOverrideRequest) (AllowanceOverride, error)
}
