package callflow

import (
	"github.com/room4-2/LoanConverse/contact"
	"github.com/room4-2/LoanConverse/loan"
)

type amendStage int

const (
	amendNone amendStage = iota
	amendAwaitAmount
	amendAwaitContinue
	amendAwaitFinal
)

// Session is the mutable per-call record. It is owned by exactly one
// Controller and lives only for the duration of the call; nothing here is
// persisted.
type Session struct {
	Identity Identity
	Offer    *loan.Offer
	Contact  contact.Record

	// Campaign facts spoken on the call.
	MaxTermMonths int
	AccountSuffix string

	State             State
	EndReason         EndReason
	Verification      VerificationStatus
	Confirmed         bool
	DispatchedVersion int // 0 until the first successful dispatch
	DispatchCount     int
	Turns             int

	// Collection scratch, reset as states complete.
	givenFather   string
	givenBirth    string
	pendingPhones []string
	amend         amendStage
	amendAmount   float64
}

// NewSession builds the record for one call from the campaign data.
func NewSession(identity Identity, offer *loan.Offer, maxTermMonths int, accountSuffix string) *Session {
	return &Session{
		Identity:      identity,
		Offer:         offer,
		MaxTermMonths: maxTermMonths,
		AccountSuffix: accountSuffix,
		State:         StateGreeting,
	}
}

// Dispatched reports whether the current offer version has already been sent.
func (s *Session) Dispatched() bool {
	return s.DispatchedVersion == s.Offer.Version()
}
