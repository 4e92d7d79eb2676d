package assumptions

import (
	"context"
	"database/sql"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListByUpgradeKey returns all candidate records for an upgrade type.
func (r *PGRepo) ListByUpgradeKey(ctx context.Context, upgradeKey string) ([]Record, error) {
	const query = `
SELECT id, upgrade_key, install_cost_min, install_cost_max, annual_savings_min, annual_savings_max,
       expected_life_years, source, updated_at
FROM assumption_records
WHERE upgrade_key = $1
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, upgradeKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var record Record
		var installMin, installMax, savingsMin, savingsMax sql.NullFloat64
		var lifeYears sql.NullInt64
		var source sql.NullString
		var updatedAt sql.NullTime
		if err := rows.Scan(
			&record.ID,
			&record.UpgradeKey,
			&installMin,
			&installMax,
			&savingsMin,
			&savingsMax,
			&lifeYears,
			&source,
			&updatedAt,
		); err != nil {
			return nil, err
		}
		record.InstallCostMin = nullableFloat(installMin)
		record.InstallCostMax = nullableFloat(installMax)
		record.AnnualSavingsMin = nullableFloat(savingsMin)
		record.AnnualSavingsMax = nullableFloat(savingsMax)
		if lifeYears.Valid {
			years := int(lifeYears.Int64)
			record.ExpectedLifeYears = &years
		}
		if source.Valid {
			record.Source = source.String
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			record.UpdatedAt = &t
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// Upsert inserts or updates an assumption record. Used by the seed loader only.
func (r *PGRepo) Upsert(ctx context.Context, record Record) error {
	const query = `
INSERT INTO assumption_records (id, upgrade_key, install_cost_min, install_cost_max, annual_savings_min, annual_savings_max, expected_life_years, source, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
  upgrade_key = EXCLUDED.upgrade_key,
  install_cost_min = EXCLUDED.install_cost_min,
  install_cost_max = EXCLUDED.install_cost_max,
  annual_savings_min = EXCLUDED.annual_savings_min,
  annual_savings_max = EXCLUDED.annual_savings_max,
  expected_life_years = EXCLUDED.expected_life_years,
  source = EXCLUDED.source,
  updated_at = EXCLUDED.updated_at`

	_, err := r.DB.ExecContext(ctx, query,
		record.ID,
		record.UpgradeKey,
		nullableFloatArg(record.InstallCostMin),
		nullableFloatArg(record.InstallCostMax),
		nullableFloatArg(record.AnnualSavingsMin),
		nullableFloatArg(record.AnnualSavingsMax),
		nullableIntArg(record.ExpectedLifeYears),
		nullableStringArg(record.Source),
		nullableTimeArg(record.UpdatedAt),
	)
	return err
}

var _ Repo = (*PGRepo)(nil)

func nullableFloat(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	v := value.Float64
	return &v
}

func nullableFloatArg(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableIntArg(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableStringArg(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTimeArg(value *time.Time) any {
	if value == nil {
		return nil
	}
	return *value
}
