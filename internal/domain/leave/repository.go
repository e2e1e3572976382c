package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	// UpsertDay writes one calendar-day row keyed on (user_id, date).
	// A re-submitted day overwrites the existing row's fields.
	UpsertDay(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]LeaveRequest, error)
	CountByUserTypeAndRange(ctx context.Context, userID string, leaveType LeaveType, from, to time.Time) (int, error)
	DeleteByID(ctx context.Context, userID, id string) error
	DeleteByDate(ctx context.Context, userID string, date time.Time) error
}

// PolicyRepository - interface for leave_policies table
type PolicyRepository interface {
	GetByOrgID(ctx context.Context, orgID string) (LeavePolicy, error)
	Upsert(ctx context.Context, policy LeavePolicy) (LeavePolicy, error)
}

// OverrideRepository - interface for leave_allowance_overrides table
type OverrideRepository interface {
	// GetByUserAndYear resolves the override for a user's leave year.
	// A year-scoped override wins over an unscoped one. Returns nil when the
	// user has no matching override.
	GetByUserAndYear(ctx context.Context, userID string, year int) (*AllowanceOverride, error)
	Upsert(ctx context.Context, override AllowanceOverride) (AllowanceOverride, error)
}
