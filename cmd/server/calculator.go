package main

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/Simplici0/retail-calculator/internal/format"
	"github.com/Simplici0/retail-calculator/internal/pricing"
)

const (
	calculatorPage = "layout.html"

	msgQuantityInvalid = "Quantity must be a positive number."
	msgPriceInvalid    = "Price must be a positive number."
	msgRegionMissing   = "Please select a region."
	msgUnexpected      = "Unexpected error occurred."
)

type formErrors struct {
	Quantity     string
	PricePerItem string
	Region       string
}

func (e formErrors) empty() bool {
	return e == formErrors{}
}

type regionOption struct {
	Code     string
	Rate     string
	Selected bool
}

type calculatorViewData struct {
	baseViewData
	Form    formState
	Errors  formErrors
	Regions []regionOption
	Result  *pricing.CalculationResult
}

// handleCalculatorForm renders the form prefilled from the saved state and,
// when the saved values are complete, their breakdown.
func (s *server) handleCalculatorForm(w http.ResponseWriter, r *http.Request) {
	state := s.forms.load(r)
	view := s.calculatorView(state)

	if input, errs := validateCalculatorForm(state); errs.empty() {
		if result, err := s.schedule.CalculateTotals(input); err == nil {
			view.Result = &result
		}
	}

	s.renderTemplate(w, http.StatusOK, calculatorPage, view)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state := formStateFromRequest(r)
	s.saveFormState(w, state)
	view := s.calculatorView(state)

	input, errs := validateCalculatorForm(state)
	if !errs.empty() {
		view.Errors = errs
		s.renderTemplate(w, http.StatusUnprocessableEntity, calculatorPage, view)
		return
	}

	result, err := s.schedule.CalculateTotals(input)
	if err != nil {
		var perr *pricing.Error
		if errors.As(err, &perr) {
			view.ErrorMessage = perr.Message
		} else {
			s.logger.Error("calculate totals", zap.Error(err))
			view.ErrorMessage = msgUnexpected
		}
		s.renderTemplate(w, http.StatusUnprocessableEntity, calculatorPage, view)
		return
	}

	view.Result = &result
	s.renderTemplate(w, http.StatusOK, calculatorPage, view)
}

// handleFormState stores the posted fields without validating them; the
// page script calls it on every edit.
func (s *server) handleFormState(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	s.saveFormState(w, formStateFromRequest(r))
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) saveFormState(w http.ResponseWriter, state formState) {
	if err := s.forms.save(w, state); err != nil {
		s.logger.Warn("failed to save form state", zap.Error(err))
	}
}

func (s *server) calculatorView(state formState) calculatorViewData {
	regions := s.schedule.Regions()
	options := make([]regionOption, 0, len(regions))
	for _, region := range regions {
		options = append(options, regionOption{
			Code:     string(region.Code),
			Rate:     format.Percent(region.TaxRate, 2),
			Selected: string(region.Code) == state.Region,
		})
	}

	return calculatorViewData{Form: state, Regions: options}
}

func formStateFromRequest(r *http.Request) formState {
	return formState{
		Quantity:     r.FormValue("quantity"),
		PricePerItem: r.FormValue("pricePerItem"),
		Region:       r.FormValue("region"),
	}
}

// validateCalculatorForm checks the raw fields and converts them for the
// pricing engine. The region is passed through untouched; the engine
// decides whether it is supported.
func validateCalculatorForm(state formState) (pricing.CalculationInput, formErrors) {
	var errs formErrors

	quantity, ok := parsePositiveNumber(state.Quantity)
	if !ok {
		errs.Quantity = msgQuantityInvalid
	}
	price, ok := parsePositiveNumber(state.PricePerItem)
	if !ok {
		errs.PricePerItem = msgPriceInvalid
	}
	if state.Region == "" {
		errs.Region = msgRegionMissing
	}

	return pricing.CalculationInput{
		Quantity:     quantity,
		PricePerItem: price,
		Region:       state.Region,
	}, errs
}

func parsePositiveNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(value, 0) || math.IsNaN(value) || value <= 0 {
		return 0, false
	}
	return value, true
}
