package pricing

import "math"

// RegionCode identifies a tax region.
type RegionCode string

// Region pairs a region code with its tax rate.
type Region struct {
	Code    RegionCode
	TaxRate float64
}

// Bracket is a volume discount rule: subtotals at or above Threshold get Rate.
type Bracket struct {
	Threshold float64
	Rate      float64
}

// CalculationInput holds the values collected by the order form.
// Zero quantity or price stands for a missing value.
type CalculationInput struct {
	Quantity     float64
	PricePerItem float64
	Region       string
}

// CalculationResult is the full pricing breakdown of one order.
// Monetary fields are rounded to cents; rates are left as configured.
type CalculationResult struct {
	Subtotal           float64
	DiscountRate       float64
	DiscountAmount     float64
	DiscountedSubtotal float64
	TaxRate            float64
	TaxAmount          float64
	Total              float64
}

var defaultRegions = []Region{
	{Code: "AUK", TaxRate: 0.0685},
	{Code: "WLG", TaxRate: 0.08},
	{Code: "WAI", TaxRate: 0.0625},
	{Code: "CHC", TaxRate: 0.04},
	{Code: "TAS", TaxRate: 0.0825},
}

var defaultBrackets = []Bracket{
	{Threshold: 50_000, Rate: 0.15},
	{Threshold: 10_000, Rate: 0.10},
	{Threshold: 7_000, Rate: 0.07},
	{Threshold: 5_000, Rate: 0.05},
	{Threshold: 1_000, Rate: 0.03},
}

var defaultSchedule = mustSchedule(defaultRegions, defaultBrackets)

// Default returns the reference schedule.
func Default() *Schedule {
	return defaultSchedule
}

// GetDiscountRate returns the discount rate the reference schedule applies to subtotal.
func GetDiscountRate(subtotal float64) float64 {
	return defaultSchedule.DiscountRate(subtotal)
}

// GetTaxRate returns the reference tax rate for region, or 0 for an unknown region.
func GetTaxRate(region RegionCode) float64 {
	return defaultSchedule.TaxRate(region)
}

// CalculateTotals prices an order against the reference schedule.
func CalculateTotals(in CalculationInput) (CalculationResult, error) {
	return defaultSchedule.CalculateTotals(in)
}

// RegionTaxRates returns a copy of the reference region to tax rate mapping.
func RegionTaxRates() map[RegionCode]float64 {
	return defaultSchedule.TaxRates()
}

// Regions returns the reference regions in display order.
func Regions() []Region {
	return defaultSchedule.Regions()
}

// roundingBias nudges values like 1.005, stored as 1.00499999..., back over the half.
var roundingBias = math.Nextafter(1, 2) - 1

// Round rounds value half-up to two decimal places.
func Round(value float64) float64 {
	// The explicit conversion keeps the scale step from fusing into an FMA.
	scaled := float64((value + roundingBias) * 100)
	return roundHalfUp(scaled) / 100
}

// roundHalfUp rounds x to the nearest integer, ties toward +Inf. Unlike
// math.Floor(x+0.5) it does not round 0.49999999999999994 up to 1.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}
