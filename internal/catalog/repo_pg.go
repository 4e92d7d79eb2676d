package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListActive returns active items for a feature/lead-class pair.
func (r *PGRepo) ListActive(ctx context.Context, featureKey, leadClass string, limit int) ([]Item, error) {
	if limit <= 0 {
		limit = 8
	}

	const query = `
SELECT id, display_name, feature_key, lead_class, intent_keys, tags, sort_rank, is_active
FROM catalog_items
WHERE is_active = true AND feature_key = $1 AND lead_class = $2
ORDER BY sort_rank, display_name
LIMIT $3`

	rows, err := r.DB.QueryContext(ctx, query, featureKey, leadClass, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// GetByID returns a catalog item by ID.
func (r *PGRepo) GetByID(ctx context.Context, itemID string) (Item, error) {
	const query = `
SELECT id, display_name, feature_key, lead_class, intent_keys, tags, sort_rank, is_active
FROM catalog_items
WHERE id = $1
LIMIT 1`

	row := r.DB.QueryRowContext(ctx, query, itemID)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Item{}, ErrNotFound
		}
		return Item{}, err
	}
	return item, nil
}

// Upsert inserts or updates a catalog item. Used by the seed loader only.
func (r *PGRepo) Upsert(ctx context.Context, item Item) error {
	const query = `
INSERT INTO catalog_items (id, display_name, feature_key, lead_class, intent_keys, tags, sort_rank, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
ON CONFLICT (id) DO UPDATE SET
  display_name = EXCLUDED.display_name,
  feature_key = EXCLUDED.feature_key,
  lead_class = EXCLUDED.lead_class,
  intent_keys = EXCLUDED.intent_keys,
  tags = EXCLUDED.tags,
  sort_rank = EXCLUDED.sort_rank,
  is_active = EXCLUDED.is_active,
  updated_at = now()`

	intentKeys, err := marshalStrings(item.IntentKeys)
	if err != nil {
		return err
	}
	tags, err := marshalStrings(item.Tags)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		item.ID,
		item.DisplayName,
		item.FeatureKey,
		item.LeadClass,
		intentKeys,
		tags,
		item.SortRank,
		item.IsActive,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (Item, error) {
	var item Item
	var intentKeys sql.NullString
	var tags sql.NullString
	if err := row.Scan(
		&item.ID,
		&item.DisplayName,
		&item.FeatureKey,
		&item.LeadClass,
		&intentKeys,
		&tags,
		&item.SortRank,
		&item.IsActive,
	); err != nil {
		return Item{}, err
	}
	if intentKeys.Valid {
		_ = json.Unmarshal([]byte(intentKeys.String), &item.IntentKeys)
	}
	if tags.Valid {
		_ = json.Unmarshal([]byte(tags.String), &item.Tags)
	}
	return item, nil
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}
