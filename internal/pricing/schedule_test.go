package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSchedule_SortsBracketsDescending(t *testing.T) {
	s, err := NewSchedule(
		[]Region{{Code: "X", TaxRate: 0.1}},
		[]Bracket{{Threshold: 100, Rate: 0.01}, {Threshold: 1_000, Rate: 0.1}, {Threshold: 500, Rate: 0.05}},
	)
	require.NoError(t, err)

	require.Equal(t, []Bracket{
		{Threshold: 1_000, Rate: 0.1},
		{Threshold: 500, Rate: 0.05},
		{Threshold: 100, Rate: 0.01},
	}, s.Brackets())
	require.Equal(t, 0.05, s.DiscountRate(999))
	require.Equal(t, 0.0, s.DiscountRate(99.99))
}

func TestNewSchedule_RejectsInvalidInput(t *testing.T) {
	valid := []Region{{Code: "X", TaxRate: 0.1}}

	cases := map[string]struct {
		regions  []Region
		brackets []Bracket
	}{
		"no regions":          {regions: nil},
		"empty code":          {regions: []Region{{Code: "", TaxRate: 0.1}}},
		"duplicate region":    {regions: []Region{{Code: "X", TaxRate: 0.1}, {Code: "X", TaxRate: 0.2}}},
		"zero tax":            {regions: []Region{{Code: "X", TaxRate: 0}}},
		"tax of one":          {regions: []Region{{Code: "X", TaxRate: 1}}},
		"negative threshold":  {regions: valid, brackets: []Bracket{{Threshold: -1, Rate: 0.1}}},
		"negative rate":       {regions: valid, brackets: []Bracket{{Threshold: 1, Rate: -0.1}}},
		"rate of one":         {regions: valid, brackets: []Bracket{{Threshold: 1, Rate: 1}}},
		"duplicate threshold": {regions: valid, brackets: []Bracket{{Threshold: 1, Rate: 0.1}, {Threshold: 1, Rate: 0.2}}},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewSchedule(tc.regions, tc.brackets)
			require.Error(t, err)
		})
	}
}

func TestNewSchedule_CopiesInput(t *testing.T) {
	regions := []Region{{Code: "X", TaxRate: 0.1}}
	brackets := []Bracket{{Threshold: 10, Rate: 0.2}}

	s, err := NewSchedule(regions, brackets)
	require.NoError(t, err)

	regions[0].TaxRate = 0.9
	brackets[0].Rate = 0.9

	require.Equal(t, 0.1, s.TaxRate("X"))
	require.Equal(t, 0.2, s.DiscountRate(10))

	out := s.Regions()
	out[0].Code = "Y"
	require.Equal(t, RegionCode("X"), s.Regions()[0].Code)
}

func TestSchedule_CalculateTotalsUsesOwnRates(t *testing.T) {
	s, err := NewSchedule(
		[]Region{{Code: "HQ", TaxRate: 0.15}},
		[]Bracket{{Threshold: 100, Rate: 0.1}},
	)
	require.NoError(t, err)

	result, err := s.CalculateTotals(CalculationInput{Quantity: 4, PricePerItem: 25, Region: "HQ"})
	require.NoError(t, err)
	require.Equal(t, CalculationResult{
		Subtotal:           100,
		DiscountRate:       0.1,
		DiscountAmount:     10,
		DiscountedSubtotal: 90,
		TaxRate:            0.15,
		TaxAmount:          13.5,
		Total:              103.5,
	}, result)

	_, err = s.CalculateTotals(CalculationInput{Quantity: 1, PricePerItem: 1, Region: "AUK"})
	require.ErrorIs(t, err, ErrRegionInvalid)
}

func TestDefault_MatchesPackageFunctions(t *testing.T) {
	require.Equal(t, Default().TaxRates(), RegionTaxRates())
	require.Equal(t, Default().Regions(), Regions())
	require.Len(t, Default().Brackets(), 5)
}
