package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// GetProject retrieves a single project by id
func (d *DB) GetProject(ctx context.Context, id string) (*model.Project, error) {
	row := d.pool.QueryRow(ctx, `
		SELECT id, title, description, visibility, schedule, cancelled_at, created_at
		FROM project
		WHERE id = $1
	`, id)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, db.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query project: %w", err)
	}

	return project, nil
}

// ListProjects retrieves all projects with one of the given visibilities.
// An empty visibility list returns every project.
func (d *DB) ListProjects(ctx context.Context, visibilities []model.Visibility) ([]model.Project, error) {
	query := `
		SELECT id, title, description, visibility, schedule, cancelled_at, created_at
		FROM project
		ORDER BY created_at
	`
	args := []any{}
	if len(visibilities) > 0 {
		query = `
			SELECT id, title, description, visibility, schedule, cancelled_at, created_at
			FROM project
			WHERE visibility = ANY($1)
			ORDER BY created_at
		`
		names := make([]string, len(visibilities))
		for i, v := range visibilities {
			names[i] = string(v)
		}
		args = append(args, names)
	}

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// InsertProject inserts a new project record
func (d *DB) InsertProject(ctx context.Context, project *model.Project) error {
	scheduleJSON, err := json.Marshal(project.Schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO project (id, title, description, visibility, event_type, schedule, cancelled_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, project.ID, project.Title, project.Description, string(project.Visibility),
		string(project.Schedule.EventType), scheduleJSON, project.CancelledAt, project.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}

	return nil
}

// CancelProject marks a project as cancelled. Cancelling an already cancelled
// project keeps the original timestamp.
func (d *DB) CancelProject(ctx context.Context, id string, cancelledAt time.Time) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE project SET cancelled_at = $2
		WHERE id = $1 AND cancelled_at IS NULL
	`, id, cancelledAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to cancel project: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Distinguish missing from already cancelled
		var exists bool
		if err := d.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM project WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check project existence: %w", err)
		}
		if !exists {
			return db.ErrNotFound
		}
	}

	return nil
}

// scanProject scans one project row, decoding the JSONB schedule payload
func scanProject(row pgx.Row) (*model.Project, error) {
	var (
		p            model.Project
		visibility   string
		scheduleJSON []byte
		cancelledAt  *time.Time
	)
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &visibility, &scheduleJSON, &cancelledAt, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Visibility = model.Visibility(visibility)
	if err := json.Unmarshal(scheduleJSON, &p.Schedule); err != nil {
		return nil, fmt.Errorf("failed to decode schedule: %w", err)
	}
	if cancelledAt != nil {
		t := cancelledAt.UTC()
		p.CancelledAt = &t
	}

	return &p, nil
}
