package loan

import (
	"errors"
	"testing"
)

func TestNewOffer_Validates(t *testing.T) {
	if _, err := NewOffer(50000, 36); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewOffer(100, 36); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := NewOffer(50000, 18); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}
}

func TestOffer_RateFollowsTerm(t *testing.T) {
	offer, err := NewOffer(50000, 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if offer.Rate() != 25 {
		t.Fatalf("Rate() = %.0f, want 25", offer.Rate())
	}

	if err := offer.SetTerm(12); err != nil {
		t.Fatalf("SetTerm(12): %v", err)
	}
	if offer.Rate() != 21 {
		t.Errorf("Rate() after SetTerm(12) = %.0f, want 21", offer.Rate())
	}
}

func TestOffer_VersionBumpsOnChange(t *testing.T) {
	offer, _ := NewOffer(50000, 36)
	if offer.Version() != 1 {
		t.Fatalf("initial version = %d, want 1", offer.Version())
	}

	if err := offer.SetAmount(20000); err != nil {
		t.Fatalf("SetAmount: %v", err)
	}
	if offer.Version() != 2 {
		t.Errorf("version after amount change = %d, want 2", offer.Version())
	}

	if err := offer.SetTerm(12); err != nil {
		t.Fatalf("SetTerm: %v", err)
	}
	if offer.Version() != 3 {
		t.Errorf("version after term change = %d, want 3", offer.Version())
	}

	// Setting the same values again is not a new version.
	_ = offer.SetAmount(20000)
	_ = offer.SetTerm(12)
	if offer.Version() != 3 {
		t.Errorf("version after no-op changes = %d, want 3", offer.Version())
	}
}

func TestOffer_RejectsInvalidAmendment(t *testing.T) {
	offer, _ := NewOffer(50000, 36)

	if err := offer.SetAmount(60000); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if err := offer.SetTerm(18); !errors.Is(err, ErrInvalidTerm) {
		t.Errorf("expected ErrInvalidTerm, got %v", err)
	}

	// A rejected amendment must not touch the offer.
	if offer.Amount() != 50000 || offer.TermMonths() != 36 || offer.Version() != 1 {
		t.Errorf("offer mutated by rejected amendment: %+v", offer)
	}
}
