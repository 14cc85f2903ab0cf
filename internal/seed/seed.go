package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/retail-calculator/internal/pricing"
)

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run inserts every region and discount bracket of schedule that is not yet
// stored. Existing rows are left as they are, so repeated runs are no-ops.
func Run(ctx context.Context, db *sql.DB, schedule *pricing.Schedule) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	for i, region := range schedule.Regions() {
		if err := ensureRegion(ctx, tx, region, i, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	for _, bracket := range schedule.Brackets() {
		if err := ensureBracket(ctx, tx, bracket, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureRegion(ctx context.Context, tx *sql.Tx, region pricing.Region, position int, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM regions WHERE code = ? LIMIT 1)`, string(region.Code)).Scan(&exists); err != nil {
		return fmt.Errorf("check region %s existence: %w", region.Code, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO regions (code, tax_rate, position)
		VALUES (?, ?, ?)
	`, string(region.Code), decimal.NewFromFloat(region.TaxRate).String(), position); err != nil {
		return fmt.Errorf("insert region %s: %w", region.Code, err)
	}
	stats.Inserts++
	return nil
}

func ensureBracket(ctx context.Context, tx *sql.Tx, bracket pricing.Bracket, stats *Stats) error {
	threshold := decimal.NewFromFloat(bracket.Threshold).String()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM discount_brackets WHERE threshold = ? LIMIT 1)`, threshold).Scan(&exists); err != nil {
		return fmt.Errorf("check bracket %s existence: %w", threshold, err)
	}
	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO discount_brackets (threshold, rate)
		VALUES (?, ?)
	`, threshold, decimal.NewFromFloat(bracket.Rate).String()); err != nil {
		return fmt.Errorf("insert bracket %s: %w", threshold, err)
	}
	stats.Inserts++
	return nil
}
