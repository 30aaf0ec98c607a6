package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// GetSignupsForProject retrieves all signup records for a project
func (d *DB) GetSignupsForProject(ctx context.Context, projectID string) ([]model.Signup, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, project_id, schedule_id, user_id, anonymous_id, status, created_at
		FROM signup
		WHERE project_id = $1
		ORDER BY created_at
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to query signups: %w", err)
	}
	defer rows.Close()

	var signups []model.Signup
	for rows.Next() {
		signup, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan signup: %w", err)
		}
		signups = append(signups, *signup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signups: %w", err)
	}

	return signups, nil
}

// InsertSignup inserts a signup record without any capacity check. Use
// ReserveSignup for capacity-guarded inserts.
func (d *DB) InsertSignup(ctx context.Context, signup *model.Signup) error {
	if err := insertSignup(ctx, d.pool, signup); err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}
	return nil
}

// UpdateSignupStatus sets the status of an existing signup
func (d *DB) UpdateSignupStatus(ctx context.Context, id string, status model.SignupStatus) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE signup SET status = $2 WHERE id = $1
	`, id, string(status))
	if err != nil {
		return fmt.Errorf("failed to update signup status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// DeleteSignup removes a signup record
func (d *DB) DeleteSignup(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM signup WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete signup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}
	return nil
}

// ReserveSignup inserts a signup only if the slot still has room. The count
// and the insert run in one transaction holding a lock on the project row, so
// two concurrent reservations for the last spot serialize and the loser gets
// scheduling.CapacityExceededError.
func (d *DB) ReserveSignup(ctx context.Context, signup *model.Signup, capacity int, policy scheduling.CapacityPolicy) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize reservations per project
	var projectID string
	err = tx.QueryRow(ctx, `SELECT id FROM project WHERE id = $1 FOR UPDATE`, signup.ProjectID).Scan(&projectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.ErrNotFound
		}
		return fmt.Errorf("failed to lock project: %w", err)
	}

	statuses := []string{string(model.SignupApproved)}
	if policy.CountAttended {
		statuses = append(statuses, string(model.SignupAttended))
	}

	var confirmed int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM signup
		WHERE project_id = $1 AND schedule_id = $2 AND status = ANY($3)
	`, signup.ProjectID, signup.ScheduleID, statuses).Scan(&confirmed)
	if err != nil {
		return fmt.Errorf("failed to count confirmed signups: %w", err)
	}

	// Pending signups do not consume capacity, so only reservations that
	// enter as approved can fill the slot
	consuming := 0
	if policy.Consumes(signup.Status) {
		consuming = 1
	}
	if confirmed+consuming > capacity {
		return &scheduling.CapacityExceededError{
			ScheduleID: signup.ScheduleID,
			Requested:  1,
			Remaining:  max(0, capacity-confirmed),
		}
	}

	if err := insertSignup(ctx, tx, signup); err != nil {
		return fmt.Errorf("failed to insert signup: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// execer is satisfied by both pgxpool.Pool and pgx.Tx
type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertSignup(ctx context.Context, q execer, signup *model.Signup) error {
	var userID, anonymousID *string
	if signup.UserID != "" {
		userID = &signup.UserID
	}
	if signup.AnonymousID != "" {
		anonymousID = &signup.AnonymousID
	}

	_, err := q.Exec(ctx, `
		INSERT INTO signup (id, project_id, schedule_id, user_id, anonymous_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, signup.ID, signup.ProjectID, signup.ScheduleID, userID, anonymousID,
		string(signup.Status), signup.CreatedAt)
	return err
}

// scanSignup scans one signup row
func scanSignup(row pgx.Row) (*model.Signup, error) {
	var (
		s           model.Signup
		userID      *string
		anonymousID *string
		status      string
		createdAt   time.Time
	)
	if err := row.Scan(&s.ID, &s.ProjectID, &s.ScheduleID, &userID, &anonymousID, &status, &createdAt); err != nil {
		return nil, err
	}

	if userID != nil {
		s.UserID = *userID
	}
	if anonymousID != nil {
		s.AnonymousID = *anonymousID
	}
	s.Status = model.SignupStatus(status)
	s.CreatedAt = createdAt.UTC()

	return &s, nil
}
