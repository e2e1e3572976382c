package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/onsite-hq/onsite-backend-go/internal/domain/leave"
	"github.com/onsite-hq/onsite-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// UpsertDay implements leave.LeaveRequestRepository. The unique constraint on
// (user_id, date) makes a re-submitted day overwrite rather than duplicate.
func (r *leaveRequestRepositoryImpl) UpsertDay(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, user_id, org_id, type, date, end_date, notes, status,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			NOW(), NOW()
		)
		ON CONFLICT (user_id, date) DO UPDATE SET
			org_id = EXCLUDED.org_id,
			type = EXCLUDED.type,
			end_date = EXCLUDED.end_date,
			notes = EXCLUDED.notes,
			status = EXCLUDED.status,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		id.String(), request.UserID, request.OrgID, request.Type,
		request.Date, request.EndDate, request.Notes, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, org_id, type, date, end_date, notes, status,
			   created_at, updated_at
		FROM leave_requests
		WHERE id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.OrgID, &req.Type, &req.Date,
		&req.EndDate, &req.Notes, &req.Status,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}

	return req, nil
}

// ListByUserAndRange returns the user's leave days with date in [from, to),
// ordered by date.
func (r *leaveRequestRepositoryImpl) ListByUserAndRange(ctx context.Context, userID string, from, to time.Time) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, org_id, type, date, end_date, notes, status,
			   created_at, updated_at
		FROM leave_requests
		WHERE user_id = $1 AND date >= $2 AND date < $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.OrgID, &req.Type, &req.Date,
			&req.EndDate, &req.Notes, &req.Status,
			&req.CreatedAt, &req.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}

func (r *leaveRequestRepositoryImpl) CountByUserTypeAndRange(ctx context.Context, userID string, leaveType leave.LeaveType, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM leave_requests
		WHERE user_id = $1 AND type = $2 AND date >= $3 AND date < $4
	`

	var count int
	err := q.QueryRow(ctx, query, userID, leaveType, from, to).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *leaveRequestRepositoryImpl) DeleteByID(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE id = $1 AND user_id = $2
	`
	commandTag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) DeleteByDate(ctx context.Context, userID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM leave_requests
		WHERE user_id = $1 AND date = $2
	`
	commandTag, err := q.Exec(ctx, query, userID, date)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}
