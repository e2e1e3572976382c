package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/onsite-hq/onsite-backend-go/internal/domain/comptime"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
)

type compTimeEntryRepositoryImpl struct {
	db *database.DB
}

func NewCompTimeEntryRepository(db *database.DB) comptime.EntryRepository {
	return &compTimeEntryRepositoryImpl{db: db}
}

// ListAvailableByUser implements comptime.EntryRepository. Expired rows are
// filtered on expires_at regardless of stored status.
func (r *compTimeEntryRepositoryImpl) ListAvailableByUser(ctx context.Context, userID string, now time.Time) ([]comptime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, org_id, type, source_id, source_date,
			   minutes_earned, minutes_used, status, expires_at, description,
			   created_at, updated_at
		FROM comp_time_entries
		WHERE user_id = $1
		  AND status IN ('available', 'partially_used')
		  AND expires_at > $2
		ORDER BY expires_at
	`

	rows, err := q.Query(ctx, query, userID, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]comptime.Entry, 0)
	for rows.Next() {
		var e comptime.Entry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.OrgID, &e.Type, &e.SourceID, &e.SourceDate,
			&e.MinutesEarned, &e.MinutesUsed, &e.Status, &e.ExpiresAt, &e.Description,
			&e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func (r *compTimeEntryRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]comptime.Entry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, org_id, type, source_id, source_date,
			   minutes_earned, minutes_used, status, expires_at, description,
			   created_at, updated_at
		FROM comp_time_entries
		WHERE user_id = $1
		ORDER BY expires_at
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]comptime.Entry, 0)
	for rows.Next() {
		var e comptime.Entry
		err := rows.Scan(
			&e.ID, &e.UserID, &e.OrgID, &e.Type, &e.SourceID, &e.SourceDate,
			&e.MinutesEarned, &e.MinutesUsed, &e.Status, &e.ExpiresAt, &e.Description,
			&e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

// Insert implements comptime.EntryRepository. The unique constraint on
// (type, source_id) makes repeated grants for the same source day no-ops.
func (r *compTimeEntryRepositoryImpl) Insert(ctx context.Context, entry comptime.Entry) (comptime.Entry, bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return comptime.Entry{}, false, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO comp_time_entries (
			id, user_id, org_id, type, source_id, source_date,
			minutes_earned, minutes_used, status, expires_at, description,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (type, source_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(), entry.UserID, entry.OrgID, entry.Type, entry.SourceID, entry.SourceDate,
		entry.MinutesEarned, entry.MinutesUsed, entry.Status, entry.ExpiresAt, entry.Description,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		// ON CONFLICT DO NOTHING returns no row when the grant already exists.
		if err == pgx.ErrNoRows {
			return comptime.Entry{}, false, nil
		}
		return comptime.Entry{}, false, err
	}

	return entry, true, nil
}

func (r *compTimeEntryRepositoryImpl) ApplyUsage(ctx context.Context, entryID string, minutesUsed int, status comptime.EntryStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE comp_time_entries
		SET minutes_used = $1, status = $2, updated_at = NOW()
		WHERE id = $3 AND minutes_used <= $1
	`

	commandTag, err := q.Exec(ctx, query, minutesUsed, status, entryID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return comptime.ErrEntryNotFound
	}
	return nil
}

func (r *compTimeEntryRepositoryImpl) MarkExpired(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE comp_time_entries
		SET status = 'expired', updated_at = NOW()
		WHERE status IN ('available', 'partially_used') AND expires_at <= $1
	`

	commandTag, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return commandTag.RowsAffected(), nil
}

type compTimeUsageRepositoryImpl struct {
	db *database.DB
}

func NewCompTimeUsageRepository(db *database.DB) comptime.UsageRepository {
	return &compTimeUsageRepositoryImpl{db: db}
}

// Insert implements comptime.UsageRepository. A given entry is charged at
// most once per leave request.
func (r *compTimeUsageRepositoryImpl) Insert(ctx context.Context, usage comptime.Usage) (bool, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return false, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO comp_time_usages (
			id, comp_time_entry_id, leave_request_id, minutes_used, created_at
		) VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (comp_time_entry_id, leave_request_id) DO NOTHING
	`

	commandTag, err := q.Exec(ctx, query,
		id.String(), usage.CompTimeEntryID, usage.LeaveRequestID, usage.MinutesUsed,
	)
	if err != nil {
		return false, err
	}
	return commandTag.RowsAffected() == 1, nil
}

func (r *compTimeUsageRepositoryImpl) ListByLeaveRequest(ctx context.Context, leaveRequestID string) ([]comptime.Usage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, comp_time_entry_id, leave_request_id, minutes_used, created_at
		FROM comp_time_usages
		WHERE leave_request_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usages := make([]comptime.Usage, 0)
	for rows.Next() {
		var u comptime.Usage
		if err := rows.Scan(&u.ID, &u.CompTimeEntryID, &u.LeaveRequestID, &u.MinutesUsed, &u.CreatedAt); err != nil {
			return nil, err
		}
		usages = append(usages, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return usages, nil
}
