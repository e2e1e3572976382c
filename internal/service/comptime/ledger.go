package comptime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
)

type LedgerService struct {
	comptime.EntryRepository
	comptime.UsageRepository
}

func NewLedgerService(entryRepository comptime.EntryRepository, usageRepository comptime.UsageRepository) *LedgerService {
	return &LedgerService{
		EntryRepository: entryRepository,
		UsageRepository: usageRepository,
	}
}

// Balance implements comptime.Ledger.
func (s *LedgerService) Balance(ctx context.Context, userID string, now time.Time) (comptime.Balance, error) {
	entries, err := s.EntryRepository.ListAvailableByUser(ctx, userID, now)
	if err != nil {
		return comptime.Balance{}, fmt.Errorf("failed to list comp-time entries: %w", err)
	}

	balance := comptime.Balance{Entries: entries}
	for _, e := range entries {
		balance.TotalMinutes += e.Available()
	}
	return balance, nil
}

// Deduct implements comptime.Ledger. Entries are consumed oldest-expiry-first
// so the minutes closest to being forfeited go first. Callers are expected to
// have verified the balance; a short balance under-deducts rather than fails.
func (s *LedgerService) Deduct(ctx context.Context, userID string, minutes int, leaveRequestIDs []string, now time.Time) (int, error) {
	if minutes <= 0 || len(leaveRequestIDs) == 0 {
		return 0, nil
	}

	entries, err := s.EntryRepository.ListAvailableByUser(ctx, userID, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list comp-time entries: %w", err)
	}

	remaining := minutes
	for _, entry := range entries {
		if remaining <= 0 {
			break
		}

		take := entry.Available()
		if take > remaining {
			take = remaining
		}
		if take <= 0 {
			continue
		}

		minutesUsed := entry.MinutesUsed + take
		status := comptime.StatusFor(entry.MinutesEarned, minutesUsed)
		if err := s.EntryRepository.ApplyUsage(ctx, entry.ID, minutesUsed, status); err != nil {
			return minutes - remaining, fmt.Errorf("failed to update comp-time entry %s: %w", entry.ID, err)
		}

		shares := SplitMinutes(take, len(leaveRequestIDs))
		for i, leaveRequestID := range leaveRequestIDs {
			usage := comptime.Usage{
				CompTimeEntryID: entry.ID,
				LeaveRequestID:  leaveRequestID,
				MinutesUsed:     shares[i],
			}
			inserted, err := s.UsageRepository.Insert(ctx, usage)
			if err != nil {
				return minutes - remaining, fmt.Errorf("failed to record comp-time usage: %w", err)
			}
			if !inserted {
				slog.Debug("Comp-time usage already recorded",
					"entry_id", entry.ID,
					"leave_request_id", leaveRequestID,
				)
			}
		}

		remaining -= take
	}

	deducted := minutes - remaining
	if deducted < minutes {
		slog.Warn("Comp-time deduction fell short of requested minutes",
			"user_id", userID,
			"requested", minutes,
			"deducted", deducted,
		)
	}
	return deducted, nil
}

// GrantForTravel implements comptime.Ledger. Only Saturday and Sunday source
// days earn anything; duplicate grants for the same source day are skipped.
func (s *LedgerService) GrantForTravel(ctx context.Context, sources []comptime.GrantSource, now time.Time) (int, error) {
	granted := 0
	for _, src := range sources {
		if !IsWeekend(src.Date) {
			continue
		}

		description := fmt.Sprintf("Weekend travel on %s", src.Date.Format("2006-01-02"))
		entry := comptime.Entry{
			UserID:        src.UserID,
			OrgID:         src.OrgID,
			Type:          "TRAVEL",
			SourceID:      src.LeaveRequestID,
			SourceDate:    src.Date,
			MinutesEarned: comptime.TravelGrantMinutes,
			MinutesUsed:   0,
			Status:        comptime.EntryStatusAvailable,
			ExpiresAt:     now.Add(comptime.GrantValidity),
			Description:   &description,
		}

		_, inserted, err := s.EntryRepository.Insert(ctx, entry)
		if err != nil {
			return granted, fmt.Errorf("failed to grant comp time for %s: %w", src.LeaveRequestID, err)
		}
		if !inserted {
			slog.Debug("Comp-time grant already exists", "source_id", src.LeaveRequestID)
			continue
		}
		granted++
	}
	return granted, nil
}

// History implements comptime.Ledger.
func (s *LedgerService) History(ctx context.Context, userID string) ([]comptime.Entry, error) {
	entries, err := s.EntryRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comp-time history: %w", err)
	}
	return entries, nil
}

// UsagesForLeave implements comptime.Ledger.
func (s *LedgerService) UsagesForLeave(ctx context.Context, leaveRequestID string) ([]comptime.Usage, error) {
	usages, err := s.UsageRepository.ListByLeaveRequest(ctx, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comp-time usages: %w", err)
	}
	return usages, nil
}

// SweepExpired implements comptime.Ledger.
func (s *LedgerService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return s.EntryRepository.MarkExpired(ctx, now)
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SplitMinutes divides total across n shares without losing minutes: every
// share gets the floor, and the leftover goes one minute each to the earliest
// shares.
func SplitMinutes(total, n int) []int {
	shares := make([]int, n)
	if n == 0 {
		return shares
	}
	base := total / n
	rem := total % n
	for i := range shares {
		shares[i] = base
		if i < rem {
			shares[i]++
		}
	}
	return shares
}
