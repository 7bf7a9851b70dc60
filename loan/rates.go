package loan

import (
	"errors"
	"fmt"
	"math"
)

// Product limits for the pre-approved business loan campaign.
const (
	MinAmount = 1000.0
	MaxAmount = 50000.0

	// CommissionPercent is deducted from the disbursed principal upfront,
	// it is never added to the repayment.
	CommissionPercent = 1.0
)

var (
	ErrInvalidTerm   = errors.New("invalid loan term")
	ErrInvalidAmount = errors.New("invalid loan amount")
)

// rateByTerm is the fixed annual interest rate table. Read-only, safe for
// concurrent access from any number of call sessions.
var rateByTerm = map[int]float64{
	6:  19,
	12: 21,
	24: 23,
	36: 25,
}

// Terms returns the permitted term options in months, ascending.
func Terms() []int {
	return []int{6, 12, 24, 36}
}

// RateFor returns the annual interest rate in percent for the given term.
func RateFor(termMonths int) (float64, error) {
	rate, ok := rateByTerm[termMonths]
	if !ok {
		return 0, fmt.Errorf("%w: %d months (options: 6, 12, 24, 36)", ErrInvalidTerm, termMonths)
	}
	return rate, nil
}

// ValidateTerm checks the term against the permitted options.
func ValidateTerm(termMonths int) error {
	_, err := RateFor(termMonths)
	return err
}

// ValidateAmount checks the principal against the campaign bounds.
func ValidateAmount(amount float64) error {
	if amount < MinAmount || amount > MaxAmount {
		return fmt.Errorf("%w: %.0f (allowed range %.0f-%.0f)", ErrInvalidAmount, amount, MinAmount, MaxAmount)
	}
	return nil
}

// Estimate holds the illustrative repayment figures quoted on the call.
// These are approximations for the customer, not an official schedule.
type Estimate struct {
	MonthlyPayment float64
	TotalPayment   float64
	Commission     float64
	Disbursed      float64
}

func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// EstimatePayments computes an approximate annuity payment for the given
// principal and term, using the rate table for the term.
func EstimatePayments(amount float64, termMonths int) (Estimate, error) {
	if err := ValidateAmount(amount); err != nil {
		return Estimate{}, err
	}
	rate, err := RateFor(termMonths)
	if err != nil {
		return Estimate{}, err
	}

	monthlyRate := (rate / 100) / 12
	n := float64(termMonths)
	payment := amount * (monthlyRate / (1 - math.Pow(1+monthlyRate, -n)))

	commission := amount * CommissionPercent / 100

	return Estimate{
		MonthlyPayment: roundTo2Decimals(payment),
		TotalPayment:   roundTo2Decimals(payment * n),
		Commission:     roundTo2Decimals(commission),
		Disbursed:      roundTo2Decimals(amount - commission),
	}, nil
}
