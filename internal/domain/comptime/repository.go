package comptime

import (
	"context"
	"time"
)

// EntryRepository - interface for comp_time_entries table
type EntryRepository interface {
	// ListAvailableByUser returns unexpired entries with consumable minutes,
	// ordered by expiry ascending (soonest-expiring first).
	ListAvailableByUser(ctx context.Context, userID string, now time.Time) ([]Entry, error)
	ListByUser(ctx context.Context, userID string) ([]Entry, error)

	// Insert writes an entry; inserted is false when an entry with the same
	// (type, source_id) already exists.
	Insert(ctx context.Context, entry Entry) (created Entry, inserted bool, err error)

	// ApplyUsage sets the running minutes_used total and the derived status.
	ApplyUsage(ctx context.Context, entryID string, minutesUsed int, status EntryStatus) error

	// MarkExpired transitions past-expiry consumable entries to expired.
	MarkExpired(ctx context.Context, now time.Time) (int64, error)
}

// UsageRepository - interface for comp_time_usages table
type UsageRepository interface {
	// Insert writes a usage row; inserted is false when the
	// (comp_time_entry_id, leave_request_id) pair is already charged.
	Insert(ctx context.Context, usage Usage) (inserted bool, err error)
	ListByLeaveRequest(ctx context.Context, leaveRequestID string) ([]Usage, error)
}
