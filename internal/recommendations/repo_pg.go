package recommendations

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// DeleteBySnapshot removes all recommendation rows for a snapshot.
func (r *PGRepo) DeleteBySnapshot(ctx context.Context, snapshotID string) (int, error) {
	const query = `DELETE FROM recommendations WHERE snapshot_id = $1`
	res, err := r.DB.ExecContext(ctx, query, snapshotID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// BulkInsert inserts the rows one statement at a time inside a transaction.
func (r *PGRepo) BulkInsert(ctx context.Context, rows []Recommendation) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	const query = `
INSERT INTO recommendations (
	id, snapshot_id, job_id, feature_key, intent_key, catalog_item_id, lead_class,
	confidence, chosen, raw_feature, raw_condition, raw_recommendation,
	error_code, error_message, position, created_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.ExecContext(ctx, query,
			row.ID,
			row.SnapshotID,
			nullableString(row.JobID),
			row.FeatureKey,
			row.IntentKey,
			row.CatalogItemID,
			row.LeadClass,
			row.Confidence,
			row.Chosen,
			row.RawFeature,
			row.RawCondition,
			row.RawRecommendation,
			row.ErrorCode,
			row.ErrorMessage,
			row.Position,
			row.CreatedAt,
		); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// ListBySnapshot returns rows in insertion (position) order.
func (r *PGRepo) ListBySnapshot(ctx context.Context, snapshotID string) ([]Recommendation, error) {
	const query = `
SELECT id, snapshot_id, job_id, feature_key, intent_key, catalog_item_id, lead_class,
       confidence, chosen, raw_feature, raw_condition, raw_recommendation,
       error_code, error_message, position, created_at
FROM recommendations
WHERE snapshot_id = $1
ORDER BY position`

	rows, err := r.DB.QueryContext(ctx, query, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Recommendation
	for rows.Next() {
		var rec Recommendation
		var jobID sql.NullString
		var catalogItemID sql.NullString
		var rawFeature, rawCondition, rawRecommendation sql.NullString
		var errorCode, errorMessage sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.SnapshotID,
			&jobID,
			&rec.FeatureKey,
			&rec.IntentKey,
			&catalogItemID,
			&rec.LeadClass,
			&rec.Confidence,
			&rec.Chosen,
			&rawFeature,
			&rawCondition,
			&rawRecommendation,
			&errorCode,
			&errorMessage,
			&rec.Position,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		if jobID.Valid {
			rec.JobID = jobID.String
		}
		if catalogItemID.Valid {
			rec.CatalogItemID = &catalogItemID.String
		}
		if rawFeature.Valid {
			rec.RawFeature = rawFeature.String
		}
		if rawCondition.Valid {
			rec.RawCondition = rawCondition.String
		}
		if rawRecommendation.Valid {
			rec.RawRecommendation = rawRecommendation.String
		}
		if errorCode.Valid {
			rec.ErrorCode = &errorCode.String
		}
		if errorMessage.Valid {
			rec.ErrorMessage = &errorMessage.String
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
