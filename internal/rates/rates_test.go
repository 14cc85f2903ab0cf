package rates

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/retail-calculator/internal/db"
	"github.com/Simplici0/retail-calculator/internal/migrations"
	"github.com/Simplici0/retail-calculator/internal/pricing"
	"github.com/Simplici0/retail-calculator/internal/seed"
)

func newRatesTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	database, err := db.Open(ctx, filepath.Join(t.TempDir(), "rates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, migrations.Up(ctx, database))
	return database
}

func TestLoad_SeededDatabaseMatchesDefaultSchedule(t *testing.T) {
	database := newRatesTestDB(t)
	ctx := context.Background()

	_, err := seed.Run(ctx, database, pricing.Default())
	require.NoError(t, err)

	schedule, err := Load(ctx, database)
	require.NoError(t, err)

	require.Equal(t, pricing.Default().Regions(), schedule.Regions())
	require.Equal(t, pricing.Default().Brackets(), schedule.Brackets())

	result, err := schedule.CalculateTotals(pricing.CalculationInput{Quantity: 10, PricePerItem: 1500, Region: "WAI"})
	require.NoError(t, err)
	require.Equal(t, 14_343.75, result.Total)
}

func TestLoad_UsesStoredRates(t *testing.T) {
	database := newRatesTestDB(t)

	_, err := database.Exec(`
		INSERT INTO regions (code, tax_rate, position) VALUES ('ZZZ', '0.2', 1), ('AAA', '0.1', 0);
		INSERT INTO discount_brackets (threshold, rate) VALUES ('100', '0.05'), ('1000.50', '0.1');
	`)
	require.NoError(t, err)

	schedule, err := Load(context.Background(), database)
	require.NoError(t, err)

	require.Equal(t, []pricing.Region{{Code: "AAA", TaxRate: 0.1}, {Code: "ZZZ", TaxRate: 0.2}}, schedule.Regions())
	require.Equal(t, []pricing.Bracket{{Threshold: 1000.5, Rate: 0.1}, {Threshold: 100, Rate: 0.05}}, schedule.Brackets())
}

func TestLoad_RejectsMalformedDecimal(t *testing.T) {
	database := newRatesTestDB(t)

	_, err := database.Exec(`INSERT INTO regions (code, tax_rate, position) VALUES ('AUK', 'lots', 0)`)
	require.NoError(t, err)

	_, err = Load(context.Background(), database)
	require.ErrorContains(t, err, "region AUK tax rate")
}

func TestLoad_RejectsEmptyTables(t *testing.T) {
	database := newRatesTestDB(t)

	_, err := Load(context.Background(), database)
	require.ErrorContains(t, err, "build pricing schedule")
}
