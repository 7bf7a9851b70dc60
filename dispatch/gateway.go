// Package dispatch sends the contract link SMS once an offer version has
// been confirmed on the call. The controller guarantees at-most-one dispatch
// per confirmed offer version; the gateway only transports.
package dispatch

import (
	"context"
	"errors"
)

// ErrDispatchFailed wraps transport-level delivery failures. The call flow
// treats it as retryable: the customer is told about a technical problem and
// a fresh confirmation retries the send.
var ErrDispatchFailed = errors.New("dispatch failed")

// Request carries everything the SMS service needs for one send.
type Request struct {
	SessionID    string   `json:"session_id"`
	Phones       []string `json:"phones"`
	Amount       float64  `json:"amount"`
	TermMonths   int      `json:"term_months"`
	OfferVersion int      `json:"offer_version"`
}

// Ack is the delivery acknowledgement.
type Ack struct {
	Reference string `json:"reference"`
}

// Gateway is the single external action of the call flow.
type Gateway interface {
	Dispatch(ctx context.Context, req Request) (Ack, error)
}
