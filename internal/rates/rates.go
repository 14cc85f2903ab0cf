// Package rates loads the pricing schedule from the rate tables.
package rates

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/retail-calculator/internal/pricing"
)

// Load reads regions and discount brackets and builds an immutable schedule.
// Stored values that do not form a valid schedule are reported as errors.
func Load(ctx context.Context, db *sql.DB) (*pricing.Schedule, error) {
	regions, err := loadRegions(ctx, db)
	if err != nil {
		return nil, err
	}
	brackets, err := loadBrackets(ctx, db)
	if err != nil {
		return nil, err
	}

	schedule, err := pricing.NewSchedule(regions, brackets)
	if err != nil {
		return nil, fmt.Errorf("build pricing schedule: %w", err)
	}
	return schedule, nil
}

func loadRegions(ctx context.Context, db *sql.DB) ([]pricing.Region, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT code, tax_rate
		FROM regions
		ORDER BY position, code
	`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	regions := make([]pricing.Region, 0)
	for rows.Next() {
		var code, rawRate string
		if err := rows.Scan(&code, &rawRate); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		rate, err := parseDecimal(rawRate)
		if err != nil {
			return nil, fmt.Errorf("region %s tax rate: %w", code, err)
		}
		regions = append(regions, pricing.Region{Code: pricing.RegionCode(code), TaxRate: rate})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate regions: %w", err)
	}

	return regions, nil
}

func loadBrackets(ctx context.Context, db *sql.DB) ([]pricing.Bracket, error) {
	rows, err := db.QueryContext(ctx, `SELECT threshold, rate FROM discount_brackets`)
	if err != nil {
		return nil, fmt.Errorf("query discount brackets: %w", err)
	}
	defer rows.Close()

	brackets := make([]pricing.Bracket, 0)
	for rows.Next() {
		var rawThreshold, rawRate string
		if err := rows.Scan(&rawThreshold, &rawRate); err != nil {
			return nil, fmt.Errorf("scan discount bracket: %w", err)
		}
		threshold, err := parseDecimal(rawThreshold)
		if err != nil {
			return nil, fmt.Errorf("bracket threshold: %w", err)
		}
		rate, err := parseDecimal(rawRate)
		if err != nil {
			return nil, fmt.Errorf("bracket %s rate: %w", rawThreshold, err)
		}
		brackets = append(brackets, pricing.Bracket{Threshold: threshold, Rate: rate})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate discount brackets: %w", err)
	}

	return brackets, nil
}

func parseDecimal(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", raw, err)
	}
	return d.InexactFloat64(), nil
}
