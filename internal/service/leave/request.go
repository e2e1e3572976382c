package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
)

type RequestService struct {
	transactor database.Transactor
	leave.LeaveRequestRepository
	calculator leave.BalanceCalculator
	ledger     comptime.Ledger
}

func NewRequestService(transactor database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, calculator leave.BalanceCalculator, ledger comptime.Ledger) *RequestService {
	return &RequestService{
		transactor:             transactor,
		LeaveRequestRepository: leaveRequestRepository,
		calculator:             calculator,
		ledger:                 ledger,
	}
}

// CreateLeaveRequest implements leave.LeaveService. The date range is expanded
// into one row per calendar day; balance checks run first, then the upserts
// and comp-time side effects commit inside a single transaction.
func (s *RequestService) CreateLeaveRequest(ctx context.Context, userID, orgID string, req leave.CreateLeaveRequestRequest) (leave.CreateLeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return leave.CreateLeaveResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}
	end := start
	if req.EndDate != nil {
		end, err = time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return leave.CreateLeaveResponse{}, fmt.Errorf("failed to parse end date: %w", err)
		}
	}

	leaveType := leave.LeaveType(req.Type)
	days := ExpandDays(start, end)
	now := time.Now()

	if leaveType == leave.LeaveTypePTO {
		balance, err := s.calculator.Remaining(ctx, userID, orgID, now)
		if err != nil {
			// Fail open: a transient read failure never blocks a submission.
			slog.Warn("PTO balance check failed, allowing request",
				"user_id", userID,
				"error", err,
			)
		} else if balance.AnnualAllowance > 0 && len(days) > balance.Remaining {
			return leave.CreateLeaveResponse{}, &leave.InsufficientBalanceError{
				Requested: len(days),
				Remaining: balance.Remaining,
			}
		}
	}

	minutesNeeded := len(days) * comptime.MinutesPerDay
	if leaveType == leave.LeaveTypeComp {
		balance, err := s.ledger.Balance(ctx, userID, now)
		if err != nil {
			return leave.CreateLeaveResponse{}, fmt.Errorf("failed to get comp-time balance: %w", err)
		}
		if balance.TotalMinutes < minutesNeeded {
			return leave.CreateLeaveResponse{}, &leave.InsufficientCompTimeError{
				AvailableMinutes: balance.TotalMinutes,
				NeededMinutes:    minutesNeeded,
			}
		}
	}

	var orgIDPtr *string
	if orgID != "" {
		orgIDPtr = &orgID
	}

	var created []leave.LeaveRequest
	var granted int
	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		created = created[:0]
		for _, day := range days {
			endDate := end
			row := leave.LeaveRequest{
				UserID:  userID,
				OrgID:   orgIDPtr,
				Type:    leaveType,
				Date:    day,
				EndDate: &endDate,
				Notes:   req.Notes,
				Status:  leave.LeaveRequestStatusApproved,
			}
			upserted, err := s.LeaveRequestRepository.UpsertDay(ctx, row)
			if err != nil {
				return fmt.Errorf("failed to upsert leave day %s: %w", day.Format("2006-01-02"), err)
			}
			created = append(created, upserted)
		}

		if leaveType == leave.LeaveTypeComp && len(created) > 0 {
			ids := make([]string, 0, len(created))
			for _, row := range created {
				ids = append(ids, row.ID)
			}
			if _, err := s.ledger.Deduct(ctx, userID, minutesNeeded, ids, now); err != nil {
				return fmt.Errorf("failed to deduct comp time: %w", err)
			}
		}

		if leaveType == leave.LeaveTypeTravel && len(created) > 0 {
			sources := make([]comptime.GrantSource, 0, len(created))
			for _, row := range created {
				sources = append(sources, comptime.GrantSource{
					LeaveRequestID: row.ID,
					UserID:         row.UserID,
					OrgID:          row.OrgID,
					Date:           row.Date,
				})
			}
			g, err := s.ledger.GrantForTravel(ctx, sources, now)
			if err != nil {
				return fmt.Errorf("failed to grant comp time: %w", err)
			}
			granted = g
		}

		return nil
	})
	if err != nil {
		return leave.CreateLeaveResponse{}, err
	}

	return leave.CreateLeaveResponse{
		Leaves:          leave.ToLeaveRequestResponses(created),
		CompTimeGranted: granted,
	}, nil
}

// ListLeaveRequests implements leave.LeaveService. The balance is attached
// only on year listings, and its failure is swallowed.
func (s *RequestService) ListLeaveRequests(ctx context.Context, userID, orgID string, filter leave.ListLeaveFilter) (leave.ListLeaveResponse, error) {
	var from, to time.Time
	withBalance := false

	switch {
	case filter.Month != nil:
		month, err := time.Parse("2006-01", *filter.Month)
		if err != nil {
			return leave.ListLeaveResponse{}, fmt.Errorf("failed to parse month: %w", err)
		}
		from = month
		to = month.AddDate(0, 1, 0)
	case filter.Year != nil:
		from = time.Date(*filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
		withBalance = true
	default:
		from = time.Date(time.Now().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(1, 0, 0)
	}

	leaves, err := s.LeaveRequestRepository.ListByUserAndRange(ctx, userID, from, to)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	resp := leave.ListLeaveResponse{
		Leaves:  leave.ToLeaveRequestResponses(leaves),
		Summary: leave.Summarize(leaves),
	}

	if withBalance {
		balance, err := s.calculator.Remaining(ctx, userID, orgID, time.Now())
		if err != nil {
			slog.Warn("Balance lookup failed for leave listing",
				"user_id", userID,
				"error", err,
			)
		} else {
			resp.Balance = &balance
		}
	}

	return resp, nil
}

// DeleteLeaveRequest implements leave.LeaveService. Deletion is scoped to the
// caller and never refunds consumed comp time: minutes spent on a COMP day
// stay spent, and usage rows stay in place.
func (s *RequestService) DeleteLeaveRequest(ctx context.Context, userID string, filter leave.DeleteLeaveFilter) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	if filter.ID != nil {
		row, err := s.LeaveRequestRepository.GetByID(ctx, *filter.ID)
		if err != nil {
			return err
		}
		if row.UserID != userID {
			return leave.ErrLeaveRequestNotFound
		}

		if err := s.LeaveRequestRepository.DeleteByID(ctx, userID, *filter.ID); err != nil {
			return err
		}

		if row.Type == leave.LeaveTypeComp {
			s.logRetainedUsage(ctx, row.ID)
		}
		return nil
	}

	date, _ := time.Parse("2006-01-02", *filter.Date)
	return s.LeaveRequestRepository.DeleteByDate(ctx, userID, date)
}

// logRetainedUsage records the comp-time minutes that stay consumed when a
// COMP day is deleted. The usage rows themselves are never touched.
func (s *RequestService) logRetainedUsage(ctx context.Context, leaveRequestID string) {
	usages, err := s.ledger.UsagesForLeave(ctx, leaveRequestID)
	if err != nil {
		slog.Warn("Comp-time usage lookup failed after leave deletion",
			"leave_request_id", leaveRequestID,
			"error", err,
		)
		return
	}

	total := 0
	for _, u := range usages {
		total += u.MinutesUsed
	}
	if total > 0 {
		slog.Info("Comp-time minutes stay consumed after leave deletion",
			"leave_request_id", leaveRequestID,
			"minutes", total,
		)
	}
}

// ExpandDays expands the inclusive [start, end] range into one entry per
// calendar day. An end before start yields just the start day.
func ExpandDays(start, end time.Time) []time.Time {
	start = truncateToDay(start)
	end = truncateToDay(end)

	days := []time.Time{start}
	for day := start.AddDate(0, 0, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
		days = append(days, day)
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
