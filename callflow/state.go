// Package callflow is the deterministic conversation policy engine for one
// outbound loan telesales call: an explicit state machine that consumes
// classified customer intents and decides the next system utterance.
package callflow

// State is the controller's position in the call.
type State string

const (
	StateGreeting          State = "GREETING"
	StateIdentityChallenge State = "IDENTITY_CHALLENGE"
	StateIdentityVerified  State = "IDENTITY_VERIFIED"
	StateOfferPresented    State = "OFFER_PRESENTED"
	StateQALoop            State = "QA_LOOP"
	StateSectorCollection  State = "SECTOR_COLLECTION"
	StateSectorConfirm     State = "SECTOR_CONFIRM"
	StateAmountAcceptCheck State = "AMOUNT_ACCEPT_CHECK"
	StateLocationCollect   State = "LOCATION_COLLECTION"
	StatePhoneCollection   State = "PHONE_COLLECTION"
	StatePhoneConfirm      State = "PHONE_CONFIRM"
	StateFinalConfirm      State = "FINAL_CONFIRM"
	StateDispatched        State = "DISPATCHED"
	StatePostDispatchAmend State = "POST_DISPATCH_AMEND"
	StateClosing           State = "CLOSING"
	StateCallEnded         State = "CALL_ENDED"
)

// EndReason says how a finished call terminated.
type EndReason string

const (
	EndNone             EndReason = ""
	EndWrongNumber      EndReason = "wrong-number"
	EndIdentityRejected EndReason = "identity-rejected"
	EndDeclined         EndReason = "declined"
	EndCompleted        EndReason = "completed"
)

// VerificationStatus is the session's identity flag.
type VerificationStatus int

const (
	Unverified VerificationStatus = iota
	Verified
	Rejected
)
