package comptime

import (
	"context"
	"time"
)

// Ledger is the comp-time balance: FIFO-by-expiry consumption against
// discrete earn events.
type Ledger interface {
	// Balance sums available minutes over unexpired consumable entries.
	Balance(ctx context.Context, userID string, now time.Time) (Balance, error)

	// Deduct consumes minutes oldest-expiry-first and charges them to the
	// given leave requests. Returns the minutes actually deducted, which may
	// be less than requested when the balance is short.
	Deduct(ctx context.Context, userID string, minutes int, leaveRequestIDs []string, now time.Time) (int, error)

	// GrantForTravel creates one entry per weekend source day, idempotently
	// per source. Returns the number of entries created.
	GrantForTravel(ctx context.Context, sources []GrantSource, now time.Time) (int, error)

	// History lists every entry for the user, spent and expired included.
	History(ctx context.Context, userID string) ([]Entry, error)

	// UsagesForLeave lists the usage rows charged to one leave request day.
	UsagesForLeave(ctx context.Context, leaveRequestID string) ([]Usage, error)

	// SweepExpired persists the expired status on stale entries.
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}
