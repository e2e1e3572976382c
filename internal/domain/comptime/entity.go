package comptime

import "time"

type EntryStatus string

const (
	EntryStatusAvailable     EntryStatus = "available"
	EntryStatusPartiallyUsed EntryStatus = "partially_used"
	EntryStatusFullyUsed     EntryStatus = "fully_used"

	// Entries past expires_at are filtered out lazily on every read; the sweep
	// job additionally persists this status so stored state catches up.
	EntryStatusExpired EntryStatus = "expired"
)

const (
	// MinutesPerDay is the comp-time value of one full working day.
	MinutesPerDay = 480

	// Weekend travel earns one full working day per day, valid for 90 days.
	TravelGrantMinutes = MinutesPerDay
	GrantValidity      = 90 * 24 * time.Hour
)

// Entry is one comp-time earn event. minutes_used only ever increases and
// never exceeds minutes_earned.
type Entry struct {
	ID     string
	UserID string
	OrgID  *string

	// Type records what the entry was earned for, e.g. TRAVEL.
	Type string

	// SourceID is the leave request day that triggered the grant.
	SourceID   string
	SourceDate time.Time

	MinutesEarned int
	MinutesUsed   int
	Status        EntryStatus

	ExpiresAt   time.Time
	Description *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Available returns the minutes still consumable from this entry.
func (e Entry) Available() int {
	return e.MinutesEarned - e.MinutesUsed
}

// Expired reports whether the entry is past its expiry at the given time.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// StatusFor derives the stored status from the earned/used relation.
// The machine is monotonic: available -> partially_used -> fully_used.
func StatusFor(minutesEarned, minutesUsed int) EntryStatus {
	switch {
	case minutesUsed >= minutesEarned:
		return EntryStatusFullyUsed
	case minutesUsed > 0:
		return EntryStatusPartiallyUsed
	default:
		return EntryStatusAvailable
	}
}

// Usage links one consumption to the entry it drew from and the leave request
// it paid for. Rows are written once per (entry, leave request) pair and never
// updated or deleted.
type Usage struct {
	ID              string
	CompTimeEntryID string
	LeaveRequestID  string
	MinutesUsed     int
	CreatedAt       time.Time
}

// Balance is the read-side view of a user's unexpired comp time.
type Balance struct {
	TotalMinutes int     `json:"total_minutes"`
	Entries      []Entry `json:"-"`
}

// GrantSource identifies a leave day eligible for a comp-time grant.
type GrantSource struct {
	LeaveRequestID string
	UserID         string
	OrgID          *string
	Date           time.Time
}
