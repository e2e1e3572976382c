package leave

import (
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	Type    string  `json:"type"`
	Date    string  `json:"date"`
	EndDate *string `json:"end_date,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Type
	if validator.IsEmpty(r.Type) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !validator.IsInSlice(r.Type, ValidLeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of PTO, SICK, UNPAID, COMP, TRAVEL",
		})
	}

	// Date
	var start time.Time
	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else {
		var ok bool
		start, ok = validator.IsValidDate(r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	// End date
	if r.EndDate != nil {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if !start.IsZero() && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before date",
			})
		}
	}

	// Notes
	if r.Notes != nil && len(*r.Notes) > 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 2000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ListLeaveFilter selects leave rows by month (YYYY-MM) or year (YYYY).
type ListLeaveFilter struct {
	Month *string
	Year  *int
}

// DeleteLeaveFilter identifies a single leave day by id or date.
type DeleteLeaveFilter struct {
	ID   *string
	Date *string
}

func (f *DeleteLeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.ID == nil && f.Date == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "either id or date is required",
		})
	}
	if f.ID != nil && !validator.IsValidUUID(*f.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	if f.Date != nil {
		if _, ok := validator.IsValidDate(*f.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpsertPolicyRequest struct {
	AnnualAllowance     int `json:"annual_allowance"`
	CarryoverDays       int `json:"carryover_days"`
	LeaveYearStartMonth int `json:"leave_year_start_month"`
	LeaveYearStartDay   int `json:"leave_year_start_day"`
}

func (r *UpsertPolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.AnnualAllowance < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "annual_allowance",
			Message: "annual_allowance must not be negative",
		})
	}
	if r.CarryoverDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "carryover_days",
			Message: "carryover_days must not be negative",
		})
	}
	if r.LeaveYearStartMonth < 1 || r.LeaveYearStartMonth > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_year_start_month",
			Message: "leave_year_start_month must be between 1 and 12",
		})
	}
	if r.LeaveYearStartDay < 1 || r.LeaveYearStartDay > 31 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_year_start_day",
			Message: "leave_year_start_day must be between 1 and 31",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SetOverrideRequest struct {
	UserID        string `json:"user_id"`
	Year          *int   `json:"year,omitempty"`
	AllowanceDays int    `json:"allowance_days"`
}

func (r *SetOverrideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if r.AllowanceDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "allowance_days",
			Message: "allowance_days must not be negative",
		})
	}
	if r.Year != nil && (*r.Year < 2000 || *r.Year > 2100) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// LeaveRequestResponse is the JSON shape of one leave day.
type LeaveRequestResponse struct {
	ID      string  `json:"id"`
	UserID  string  `json:"user_id"`
	OrgID   *string `json:"org_id,omitempty"`
	Type    string  `json:"type"`
	Date    string  `json:"date"`
	EndDate *string `json:"end_date,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Status  string  `json:"status"`
}

func ToLeaveRequestResponse(l LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:     l.ID,
		UserID: l.UserID,
		OrgID:  l.OrgID,
		Type:   string(l.Type),
		Date:   l.Date.Format("2006-01-02"),
		Notes:  l.Notes,
		Status: string(l.Status),
	}
	if l.EndDate != nil {
		end := l.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

func ToLeaveRequestResponses(leaves []LeaveRequest) []LeaveRequestResponse {
	responses := make([]LeaveRequestResponse, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, ToLeaveRequestResponse(l))
	}
	return responses
}

type ListLeaveResponse struct {
	Leaves  []LeaveRequestResponse `json:"leaves"`
	Summary Summary                `json:"summary"`
	Balance *Balance               `json:"balance,omitempty"`
}

type CreateLeaveResponse struct {
	Leaves          []LeaveRequestResponse `json:"leaves"`
	CompTimeGranted int                    `json:"comp_time_granted"`
}

type PolicyResponse struct {
	ID                  string `json:"id"`
	OrgID               string `json:"org_id"`
	AnnualAllowance     int    `json:"annual_allowance"`
	CarryoverDays       int    `json:"carryover_days"`
	LeaveYearStartMonth int    `json:"leave_year_start_month"`
	LeaveYearStartDay   int    `json:"leave_year_start_day"`
}

func ToPolicyResponse(p LeavePolicy) PolicyResponse {
	return PolicyResponse{
		ID:                  p.ID,
		OrgID:               p.OrgID,
		AnnualAllowance:     p.AnnualAllowance,
		CarryoverDays:       p.CarryoverDays,
		LeaveYearStartMonth: p.LeaveYearStartMonth,
		LeaveYearStartDay:   p.LeaveYearStartDay,
	}
}
