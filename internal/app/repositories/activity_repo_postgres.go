package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gymtrack/gymtrack-api/internal/domain/activity"
	"github.com/lib/pq"
)

type postgresActivityRepo struct {
	db *sql.DB
}

func NewPostgresActivityRepo(db *sql.DB) (ActivityRepository, error) {
	repo := &postgresActivityRepo{db: db}
	if err := repo.ensureSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *postgresActivityRepo) ensureSchema() error {
	const createTable = `
        CREATE TABLE IF NOT EXISTS activities (
            id TEXT PRIMARY KEY,
            action TEXT NOT NULL,
            performed_by TEXT NOT NULL,
            timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`
	if _, err := r.db.Exec(createTable); err != nil {
		return err
	}
	if _, err := r.db.Exec(`CREATE INDEX IF NOT EXISTS idx_activities_timestamp ON activities (timestamp DESC)`); err != nil {
		return err
	}
	return nil
}

func (r *postgresActivityRepo) Append(ctx context.Context, e *activity.Entry) error {
	const query = `
        INSERT INTO activities (id, action, performed_by, timestamp)
        VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Action, e.PerformedBy, e.Timestamp.UTC())
	return r.mapError(err)
}

func (r *postgresActivityRepo) List(ctx context.Context) ([]*activity.Entry, error) {
	const query = `
        SELECT id, action, performed_by, timestamp
        FROM activities
        ORDER BY timestamp DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, r.mapError(err)
	}
	defer rows.Close()

	var results []*activity.Entry
	for rows.Next() {
		var (
			id          string
			action      string
			performedBy string
			ts          time.Time
		)
		if err := rows.Scan(&id, &action, &performedBy, &ts); err != nil {
			return nil, err
		}
		results = append(results, &activity.Entry{
			ID:          id,
			Action:      action,
			PerformedBy: performedBy,
			Timestamp:   ts,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *postgresActivityRepo) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		// Duplicate append of the same entry id is harmless.
		return nil
	}
	return err
}
