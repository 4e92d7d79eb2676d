package incentives

import (
	"context"
	"database/sql"
	"encoding/json"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListActive returns all active incentive rules.
func (r *PGRepo) ListActive(ctx context.Context) ([]Rule, error) {
	const query = `
SELECT id, name, amount_min, amount_max, scope_mode, scope_states, scope_zips, scope_zip_prefixes,
       applies_catalog_ids, applies_tags, is_active
FROM incentive_rules
WHERE is_active = true
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Rule
	for rows.Next() {
		var rule Rule
		var amountMin, amountMax sql.NullFloat64
		var states, zips, prefixes, catalogIDs, tags sql.NullString
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&amountMin,
			&amountMax,
			&rule.Scope.Mode,
			&states,
			&zips,
			&prefixes,
			&catalogIDs,
			&tags,
			&rule.IsActive,
		); err != nil {
			return nil, err
		}
		if amountMin.Valid {
			rule.AmountMin = amountMin.Float64
		}
		if amountMax.Valid {
			rule.AmountMax = amountMax.Float64
		}
		rule.Scope.States = unmarshalStrings(states)
		rule.Scope.Zips = unmarshalStrings(zips)
		rule.Scope.ZipPrefixes = unmarshalStrings(prefixes)
		rule.AppliesCatalogIDs = unmarshalStrings(catalogIDs)
		rule.AppliesTags = unmarshalStrings(tags)
		out = append(out, rule)
	}
	return out, rows.Err()
}

// Upsert inserts or updates an incentive rule. Used by the seed loader only.
func (r *PGRepo) Upsert(ctx context.Context, rule Rule) error {
	const query = `
INSERT INTO incentive_rules (id, name, amount_min, amount_max, scope_mode, scope_states, scope_zips, scope_zip_prefixes, applies_catalog_ids, applies_tags, is_active, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
ON CONFLICT (id) DO UPDATE SET
  name = EXCLUDED.name,
  amount_min = EXCLUDED.amount_min,
  amount_max = EXCLUDED.amount_max,
  scope_mode = EXCLUDED.scope_mode,
  scope_states = EXCLUDED.scope_states,
  scope_zips = EXCLUDED.scope_zips,
  scope_zip_prefixes = EXCLUDED.scope_zip_prefixes,
  applies_catalog_ids = EXCLUDED.applies_catalog_ids,
  applies_tags = EXCLUDED.applies_tags,
  is_active = EXCLUDED.is_active,
  updated_at = now()`

	states, err := marshalStrings(rule.Scope.States)
	if err != nil {
		return err
	}
	zips, err := marshalStrings(rule.Scope.Zips)
	if err != nil {
		return err
	}
	prefixes, err := marshalStrings(rule.Scope.ZipPrefixes)
	if err != nil {
		return err
	}
	catalogIDs, err := marshalStrings(rule.AppliesCatalogIDs)
	if err != nil {
		return err
	}
	tags, err := marshalStrings(rule.AppliesTags)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		rule.ID,
		rule.Name,
		rule.AmountMin,
		rule.AmountMax,
		rule.Scope.Mode,
		states,
		zips,
		prefixes,
		catalogIDs,
		tags,
		rule.IsActive,
	)
	return err
}

var _ Repo = (*PGRepo)(nil)

func unmarshalStrings(value sql.NullString) []string {
	if !value.Valid {
		return nil
	}
	var out []string
	_ = json.Unmarshal([]byte(value.String), &out)
	return out
}

func marshalStrings(values []string) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}
