package leave

import "time"

// LeaveType enumerates the supported kinds of leave days.
type LeaveType string

const (
	LeaveTypePTO    LeaveType = "PTO"
	LeaveTypeSick   LeaveType = "SICK"
	LeaveTypeUnpaid LeaveType = "UNPAID"
	LeaveTypeComp   LeaveType = "COMP"
	LeaveTypeTravel LeaveType = "TRAVEL"
)

// ValidLeaveTypes lists every accepted leave type value.
var ValidLeaveTypes = []string{
	string(LeaveTypePTO),
	string(LeaveTypeSick),
	string(LeaveTypeUnpaid),
	string(LeaveTypeComp),
	string(LeaveTypeTravel),
}

type LeaveRequestStatus string

const (
	// Leave days are auto-approved on submission; there is no pending workflow.
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
)

// LeaveRequest is one row per calendar day of leave.
// At most one row exists per (user_id, date); submissions upsert on that key.
type LeaveRequest struct {
	ID     string
	UserID string
	OrgID  *string

	Type LeaveType
	Date time.Time

	// EndDate carries the original range end of the submission, informational only.
	EndDate *time.Time
	Notes   *string

	Status LeaveRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeavePolicy holds the per-org PTO policy.
type LeavePolicy struct {
	ID    string
	OrgID string

	AnnualAllowance int
	CarryoverDays   int

	// Leave-year boundary, e.g. month=4 day=1 for an April-to-March leave year.
	LeaveYearStartMonth int
	LeaveYearStartDay   int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllowanceOverride replaces the org default allowance for one user.
// Year is nil for an override that applies to every leave year.
type AllowanceOverride struct {
	ID     string
	UserID string
	OrgID  string

	Year          *int
	AllowanceDays int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Balance is the Balance Calculator result for a user's current leave year.
type Balance struct {
	AnnualAllowance int `json:"annual_allowance"`
	Used            int `json:"used"`
	Remaining       int `json:"remaining"`
}

// Summary aggregates a list of per-day leave rows.
type Summary struct {
	TotalDays int               `json:"total_days"`
	ByType    map[LeaveType]int `json:"by_type"`
}

// Summarize counts leave rows per type. Each row is one day since ranges are
// expanded at creation.
func Summarize(leaves []LeaveRequest) Summary {
	summary := Summary{ByType: make(map[LeaveType]int)}
	for _, l := range leaves {
		summary.TotalDays++
		summary.ByType[l.Type]++
	}
	return summary
}
