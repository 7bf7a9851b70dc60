package loan

import (
	"errors"
	"math"
	"testing"
)

func TestRateFor_Table(t *testing.T) {
	cases := map[int]float64{
		6:  19,
		12: 21,
		24: 23,
		36: 25,
	}
	for term, want := range cases {
		got, err := RateFor(term)
		if err != nil {
			t.Fatalf("RateFor(%d): unexpected error: %v", term, err)
		}
		if got != want {
			t.Errorf("RateFor(%d) = %.0f, want %.0f", term, got, want)
		}
	}
}

func TestRateFor_InvalidTerm(t *testing.T) {
	for _, term := range []int{0, -6, 18, 30, 48} {
		_, err := RateFor(term)
		if !errors.Is(err, ErrInvalidTerm) {
			t.Errorf("RateFor(%d): expected ErrInvalidTerm, got %v", term, err)
		}
	}
}

func TestValidateAmount_Bounds(t *testing.T) {
	for _, amount := range []float64{1000, 25000, 50000} {
		if err := ValidateAmount(amount); err != nil {
			t.Errorf("ValidateAmount(%.0f): unexpected error: %v", amount, err)
		}
	}
	for _, amount := range []float64{0, 999.99, 50000.01, -5000} {
		if !errors.Is(ValidateAmount(amount), ErrInvalidAmount) {
			t.Errorf("ValidateAmount(%.2f): expected ErrInvalidAmount", amount)
		}
	}
}

func TestEstimatePayments_Annuity(t *testing.T) {
	est, err := EstimatePayments(1000, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 1000 over 12 months at 21%: annuity payment 93.11.
	if math.Abs(est.MonthlyPayment-93.11) > 0.01 {
		t.Errorf("MonthlyPayment = %.2f, want ~93.11", est.MonthlyPayment)
	}
	if math.Abs(est.TotalPayment-est.MonthlyPayment*12) > 0.05 {
		t.Errorf("TotalPayment = %.2f, want monthly*12 = %.2f", est.TotalPayment, est.MonthlyPayment*12)
	}
	if est.Commission != 10 {
		t.Errorf("Commission = %.2f, want 10.00", est.Commission)
	}
	if est.Disbursed != 990 {
		t.Errorf("Disbursed = %.2f, want 990.00", est.Disbursed)
	}
	if est.TotalPayment <= 1000 {
		t.Errorf("TotalPayment = %.2f, must exceed principal", est.TotalPayment)
	}
}

func TestEstimatePayments_Invalid(t *testing.T) {
	if _, err := EstimatePayments(500, 12); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := EstimatePayments(10000, 18); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
}
