package pricing

import (
	"errors"
	"fmt"
	"maps"
	"sort"
)

// Schedule is an immutable set of region tax rates and discount brackets.
// It is safe for concurrent use.
type Schedule struct {
	regions  []Region
	taxRates map[RegionCode]float64
	brackets []Bracket
}

// NewSchedule validates regions and brackets and builds a Schedule.
// Regions keep the given order; brackets are sorted by descending threshold.
func NewSchedule(regions []Region, brackets []Bracket) (*Schedule, error) {
	if len(regions) == 0 {
		return nil, errors.New("schedule needs at least one region")
	}

	s := &Schedule{
		regions:  make([]Region, 0, len(regions)),
		taxRates: make(map[RegionCode]float64, len(regions)),
		brackets: make([]Bracket, 0, len(brackets)),
	}

	for _, r := range regions {
		if r.Code == "" {
			return nil, errors.New("region code is required")
		}
		if _, dup := s.taxRates[r.Code]; dup {
			return nil, fmt.Errorf("duplicate region %q", r.Code)
		}
		if !(r.TaxRate > 0 && r.TaxRate < 1) {
			return nil, fmt.Errorf("region %q tax rate %v must be between 0 and 1", r.Code, r.TaxRate)
		}
		s.regions = append(s.regions, r)
		s.taxRates[r.Code] = r.TaxRate
	}

	seen := make(map[float64]struct{}, len(brackets))
	for _, b := range brackets {
		if !(b.Threshold >= 0) {
			return nil, fmt.Errorf("bracket threshold %v must be non-negative", b.Threshold)
		}
		if !(b.Rate >= 0 && b.Rate < 1) {
			return nil, fmt.Errorf("bracket %v rate %v must be in [0, 1)", b.Threshold, b.Rate)
		}
		if _, dup := seen[b.Threshold]; dup {
			return nil, fmt.Errorf("duplicate bracket threshold %v", b.Threshold)
		}
		seen[b.Threshold] = struct{}{}
		s.brackets = append(s.brackets, b)
	}
	sort.Slice(s.brackets, func(i, j int) bool {
		return s.brackets[i].Threshold > s.brackets[j].Threshold
	})

	return s, nil
}

func mustSchedule(regions []Region, brackets []Bracket) *Schedule {
	s, err := NewSchedule(regions, brackets)
	if err != nil {
		panic(fmt.Sprintf("pricing: invalid built-in schedule: %v", err))
	}
	return s
}

// DiscountRate returns the rate of the highest bracket whose threshold is at
// or below subtotal, or 0 when none qualifies.
func (s *Schedule) DiscountRate(subtotal float64) float64 {
	for _, b := range s.brackets {
		if subtotal >= b.Threshold {
			return b.Rate
		}
	}
	return 0
}

// TaxRate returns the tax rate for region, or 0 for an unknown region.
func (s *Schedule) TaxRate(region RegionCode) float64 {
	return s.taxRates[region]
}

// Regions returns the schedule's regions in display order.
func (s *Schedule) Regions() []Region {
	out := make([]Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// TaxRates returns a copy of the region to tax rate mapping.
func (s *Schedule) TaxRates() map[RegionCode]float64 {
	return maps.Clone(s.taxRates)
}

// Brackets returns the discount brackets, highest threshold first.
func (s *Schedule) Brackets() []Bracket {
	out := make([]Bracket, len(s.brackets))
	copy(out, s.brackets)
	return out
}

// CalculateTotals validates the region and prices the order.
func (s *Schedule) CalculateTotals(in CalculationInput) (CalculationResult, error) {
	region, err := s.validateRegion(in.Region)
	if err != nil {
		return CalculationResult{}, err
	}

	// Products are converted before rounding so they are not fused with
	// the rounding bias into a single FMA on arm64.
	subtotal := Round(float64(in.Quantity * in.PricePerItem))
	discountRate := s.DiscountRate(subtotal)
	discountAmount := Round(float64(subtotal * discountRate))
	discountedSubtotal := Round(subtotal - discountAmount)
	taxRate := s.TaxRate(region)
	taxAmount := Round(float64(discountedSubtotal * taxRate))
	total := Round(discountedSubtotal + taxAmount)

	return CalculationResult{
		Subtotal:           subtotal,
		DiscountRate:       discountRate,
		DiscountAmount:     discountAmount,
		DiscountedSubtotal: discountedSubtotal,
		TaxRate:            taxRate,
		TaxAmount:          taxAmount,
		Total:              total,
	}, nil
}

func (s *Schedule) validateRegion(region string) (RegionCode, error) {
	if region == "" {
		return "", &Error{Code: CodeRegionRequired, Message: "Region selection is required."}
	}
	code := RegionCode(region)
	if _, ok := s.taxRates[code]; !ok {
		return "", &Error{Code: CodeRegionInvalid, Message: fmt.Sprintf("Region '%s' is not supported.", region)}
	}
	return code, nil
}
