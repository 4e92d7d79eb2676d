package snapshots

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new snapshot.
func (r *PGRepo) Create(ctx context.Context, snapshot Snapshot) error {
	const query = `
INSERT INTO snapshots (id, property_zip, property_state, created_at, updated_at)
VALUES ($1, $2, $3, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		snapshot.ID,
		nullableString(snapshot.PropertyZip),
		nullableString(snapshot.PropertyState),
	)
	return err
}

// GetByID returns a snapshot by ID.
func (r *PGRepo) GetByID(ctx context.Context, snapshotID string) (Snapshot, error) {
	const query = `
SELECT id, property_zip, property_state, created_at, updated_at
FROM snapshots
WHERE id = $1
LIMIT 1`
	var snapshot Snapshot
	var zip sql.NullString
	var state sql.NullString
	err := r.DB.QueryRowContext(ctx, query, snapshotID).Scan(
		&snapshot.ID,
		&zip,
		&state,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	if zip.Valid {
		snapshot.PropertyZip = zip.String
	}
	if state.Valid {
		snapshot.PropertyState = state.String
	}
	return snapshot, nil
}

// Exists reports whether a snapshot row exists.
func (r *PGRepo) Exists(ctx context.Context, snapshotID string) (bool, error) {
	const query = `SELECT 1 FROM snapshots WHERE id = $1 LIMIT 1`
	var one int
	err := r.DB.QueryRowContext(ctx, query, snapshotID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var _ Repo = (*PGRepo)(nil)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
