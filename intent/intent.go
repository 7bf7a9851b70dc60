// Package intent reduces free-form customer utterances to the small typed
// contract the call-flow controller consumes. Natural-language understanding
// lives behind the Classifier interface; the controller never touches raw
// text pattern matching.
package intent

import (
	"context"
	"strings"
)

// Intent is the classified meaning of one customer turn.
type Intent string

const (
	Affirm     Intent = "AFFIRM"
	Deny       Intent = "DENY"
	Correction Intent = "CORRECTION"
	Question   Intent = "QUESTION"
	Data       Intent = "DATA"
	Other      Intent = "OTHER"
)

// Canonical maps a raw label (for example from an LLM response) onto the
// taxonomy, defaulting to Other.
func Canonical(raw string) Intent {
	switch Intent(strings.ToUpper(strings.TrimSpace(raw))) {
	case Affirm:
		return Affirm
	case Deny:
		return Deny
	case Correction:
		return Correction
	case Question:
		return Question
	case Data:
		return Data
	default:
		return Other
	}
}

// QuestionHint describes one canned question category the current state can
// answer, with surface keywords a non-LLM classifier can match on.
type QuestionHint struct {
	Slug     string
	Keywords []string
}

// Expectation tells the classifier what the controller is ready to consume
// in the current state: which intents are meaningful, which data slots a
// DATA turn may fill, and which question categories are answerable.
type Expectation struct {
	State     string
	Intents   []Intent
	Slots     []string
	Questions []QuestionHint
}

// Result is one classified customer turn.
type Result struct {
	Intent   Intent
	Question string            // category slug, set when Intent == Question
	Fields   map[string]string // extracted slot values, set when data-bearing
}

// Field returns a trimmed slot value, empty when absent.
func (r Result) Field(slot string) string {
	return strings.TrimSpace(r.Fields[slot])
}

// Classifier turns one raw utterance into a Result given the controller's
// current expectation.
type Classifier interface {
	Classify(ctx context.Context, utterance string, exp Expectation) (Result, error)
}
