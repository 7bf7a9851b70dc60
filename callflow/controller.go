package callflow

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/room4-2/LoanConverse/contact"
	"github.com/room4-2/LoanConverse/dispatch"
	"github.com/room4-2/LoanConverse/intent"
	"github.com/room4-2/LoanConverse/loan"
)

// Slot names the controller expects from data-bearing turns.
const (
	slotFatherName = "father_name"
	slotBirthDate  = "birth_date"
	slotSector     = "sector"
	slotSubSector  = "subsector"
	slotCity       = "city"
	slotDistrict   = "district"
	slotPhone1     = "phone1"
	slotPhone2     = "phone2"
	slotAmount     = "amount"
	slotTermMonths = "term_months"
)

// Reply is one controller turn: the system utterance to speak, and whether
// the call is over.
type Reply struct {
	Utterance string
	End       bool
	Reason    EndReason
}

// Controller drives one call. It owns its Session exclusively; turns are
// strictly sequential, so no locking is needed inside.
type Controller struct {
	callID  string
	sess    *Session
	gateway dispatch.Gateway
}

func NewController(callID string, sess *Session, gateway dispatch.Gateway) *Controller {
	return &Controller{callID: callID, sess: sess, gateway: gateway}
}

// Session exposes the call record for transport-level bookkeeping.
func (c *Controller) Session() *Session { return c.sess }

// CallID returns the identifier this call was created with.
func (c *Controller) CallID() string { return c.callID }

// Open emits the scripted greeting. The controller stays in GREETING until
// the customer confirms or denies being the named recipient.
func (c *Controller) Open() Reply {
	return Reply{Utterance: uttGreeting(c.sess.Identity.FullName())}
}

// Expectation describes what the classifier should look for on the next
// customer turn.
func (c *Controller) Expectation() intent.Expectation {
	exp := intent.Expectation{State: string(c.sess.State)}
	switch c.sess.State {
	case StateGreeting, StateIdentityVerified:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny}
	case StateIdentityChallenge:
		exp.Intents = []intent.Intent{intent.Data}
		exp.Slots = []string{slotFatherName, slotBirthDate}
	case StateOfferPresented, StateQALoop:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Question}
		exp.Questions = questionHints
	case StateSectorCollection:
		exp.Intents = []intent.Intent{intent.Data, intent.Question}
		exp.Slots = []string{slotSector, slotSubSector}
		exp.Questions = questionHints
	case StateSectorConfirm:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Correction, intent.Data}
		exp.Slots = []string{slotSector, slotSubSector}
	case StateAmountAcceptCheck, StateFinalConfirm:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Correction, intent.Data, intent.Question}
		exp.Slots = []string{slotAmount, slotTermMonths}
		exp.Questions = questionHints
	case StateLocationCollect:
		exp.Intents = []intent.Intent{intent.Data}
		exp.Slots = []string{slotCity, slotDistrict}
	case StatePhoneCollection:
		exp.Intents = []intent.Intent{intent.Data, intent.Question}
		exp.Slots = []string{slotPhone1, slotPhone2}
		exp.Questions = questionHints
	case StatePhoneConfirm:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Correction, intent.Data, intent.Question}
		exp.Slots = []string{slotPhone1, slotPhone2}
		exp.Questions = questionHints
	case StateDispatched, StateClosing:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Correction, intent.Data, intent.Question}
		exp.Slots = []string{slotAmount}
		exp.Questions = questionHints
	case StatePostDispatchAmend:
		exp.Intents = []intent.Intent{intent.Affirm, intent.Deny, intent.Correction, intent.Data}
		exp.Slots = []string{slotAmount}
	}
	return exp
}

// Advance consumes one classified customer turn and returns the next system
// utterance.
func (c *Controller) Advance(ctx context.Context, in intent.Result) Reply {
	s := c.sess
	if s.State == StateCallEnded {
		return Reply{End: true, Reason: s.EndReason}
	}
	s.Turns++

	switch s.State {
	case StateGreeting:
		return c.onGreeting(in)
	case StateIdentityChallenge:
		return c.onIdentityChallenge(in)
	case StateIdentityVerified:
		return c.onIdentityVerified(in)
	case StateOfferPresented, StateQALoop:
		return c.onOfferQA(in)
	case StateSectorCollection:
		return c.onSectorCollection(in)
	case StateSectorConfirm:
		return c.onSectorConfirm(in)
	case StateAmountAcceptCheck:
		return c.onAmountAcceptCheck(in)
	case StateLocationCollect:
		return c.onLocationCollect(in)
	case StatePhoneCollection:
		return c.onPhoneCollection(in)
	case StatePhoneConfirm:
		return c.onPhoneConfirm(in)
	case StateFinalConfirm:
		return c.onFinalConfirm(ctx, in)
	case StateDispatched:
		return c.onDispatched(in)
	case StatePostDispatchAmend:
		return c.onPostDispatchAmend(ctx, in)
	case StateClosing:
		return c.onClosing(in)
	}
	return c.endCall(EndDeclined, uttDeclined)
}

func (c *Controller) endCall(reason EndReason, utterance string) Reply {
	c.sess.State = StateCallEnded
	c.sess.EndReason = reason
	return Reply{Utterance: utterance, End: true, Reason: reason}
}

func (c *Controller) onGreeting(in intent.Result) Reply {
	switch in.Intent {
	case intent.Affirm:
		c.sess.State = StateIdentityChallenge
		return Reply{Utterance: uttSecurityCheck}
	case intent.Deny:
		return c.endCall(EndWrongNumber, uttWrongNumber)
	default:
		return Reply{Utterance: uttGreeting(c.sess.Identity.FullName())}
	}
}

// onIdentityChallenge collects the two facts in any order and compares only
// once both are present. Mismatch ends the call without disclosing anything.
func (c *Controller) onIdentityChallenge(in intent.Result) Reply {
	s := c.sess
	if in.Intent == intent.Data || in.Intent == intent.Correction {
		if v := in.Field(slotFatherName); v != "" {
			s.givenFather = v
		}
		if v := in.Field(slotBirthDate); v != "" {
			s.givenBirth = v
		}
	}

	switch {
	case s.givenFather == "" && s.givenBirth == "":
		return Reply{Utterance: uttSecurityCheck}
	case s.givenFather == "":
		return Reply{Utterance: uttAskFather}
	case s.givenBirth == "":
		return Reply{Utterance: uttAskBirthDate}
	}

	if !s.Identity.Verify(s.givenFather, s.givenBirth) {
		s.Verification = Rejected
		return c.endCall(EndIdentityRejected, uttRejected)
	}
	s.Verification = Verified
	s.givenFather, s.givenBirth = "", ""
	s.State = StateIdentityVerified
	return Reply{Utterance: uttVerified}
}

func (c *Controller) onIdentityVerified(in intent.Result) Reply {
	switch in.Intent {
	case intent.Affirm:
		c.sess.State = StateOfferPresented
		return Reply{Utterance: uttPresentOffer(c.sess.Offer)}
	case intent.Deny:
		return c.endCall(EndDeclined, uttDeclined)
	default:
		return Reply{Utterance: uttVerified}
	}
}

// onOfferQA answers canned questions until the customer signals to proceed.
// Anything off-script escalates without ending the call.
func (c *Controller) onOfferQA(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Question:
		s.State = StateQALoop
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer}
		}
		return Reply{Utterance: uttEscalate}
	case intent.Affirm, intent.Deny:
		s.State = StateSectorCollection
		return Reply{Utterance: uttToDataCollect + " " + uttAskSector}
	default:
		return Reply{Utterance: uttEscalate}
	}
}

func (c *Controller) onSectorCollection(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Data, intent.Correction:
		if v := in.Field(slotSector); v != "" {
			s.Contact.Sector = v
		}
		if v := in.Field(slotSubSector); v != "" {
			s.Contact.SubSector = v
		}
		if s.Contact.HasSector() {
			s.State = StateSectorConfirm
			return Reply{Utterance: uttConfirmSector(s.Contact.Sector, s.Contact.SubSector)}
		}
		if s.Contact.Sector != "" {
			return Reply{Utterance: uttAskSubSector}
		}
		return Reply{Utterance: uttAskSector}
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttAskSector}
		}
		return Reply{Utterance: uttEscalate + " " + uttAskSector}
	default:
		return Reply{Utterance: uttAskSector}
	}
}

func (c *Controller) onSectorConfirm(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Affirm:
		s.State = StateAmountAcceptCheck
		return Reply{Utterance: uttAcceptCheck(s.Offer)}
	case intent.Correction, intent.Data:
		if v := in.Field(slotSector); v != "" {
			s.Contact.Sector = v
		}
		if v := in.Field(slotSubSector); v != "" {
			s.Contact.SubSector = v
		}
		return Reply{Utterance: uttConfirmSector(s.Contact.Sector, s.Contact.SubSector)}
	case intent.Deny:
		s.Contact.Sector, s.Contact.SubSector = "", ""
		s.State = StateSectorCollection
		return Reply{Utterance: uttAskSector}
	default:
		return Reply{Utterance: uttConfirmSector(s.Contact.Sector, s.Contact.SubSector)}
	}
}

// onAmountAcceptCheck lets the customer amend amount or term in place. Any
// accepted change recomputes the rate via the offer and re-presents.
func (c *Controller) onAmountAcceptCheck(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Affirm:
		s.State = StateLocationCollect
		return Reply{Utterance: uttAskLocation}
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttAcceptCheck(s.Offer)}
		}
		return Reply{Utterance: uttEscalate + " " + uttAcceptCheck(s.Offer)}
	case intent.Correction, intent.Data:
		changed, problem := c.applyOfferChanges(in)
		if problem != "" {
			return Reply{Utterance: problem}
		}
		if changed {
			return Reply{Utterance: uttAcceptCheck(s.Offer)}
		}
		return Reply{Utterance: uttOfferHelp}
	default:
		return Reply{Utterance: uttOfferHelp}
	}
}

func (c *Controller) onLocationCollect(in intent.Result) Reply {
	s := c.sess
	if in.Intent == intent.Data || in.Intent == intent.Correction {
		if v := in.Field(slotCity); v != "" {
			s.Contact.City = v
		}
		if v := in.Field(slotDistrict); v != "" {
			s.Contact.District = v
		}
	}
	switch {
	case s.Contact.HasLocation():
		s.State = StatePhoneCollection
		return Reply{Utterance: uttAskPhones}
	case s.Contact.City != "":
		return Reply{Utterance: uttAskDistrict}
	default:
		return Reply{Utterance: uttAskLocation}
	}
}

// onPhoneCollection validates each candidate number independently and holds
// valid ones until two are present. Invalid input re-prompts with the format
// rule and never advances.
func (c *Controller) onPhoneCollection(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Data, intent.Correction:
		sawInvalid := false
		for _, slot := range []string{slotPhone1, slotPhone2} {
			raw := in.Field(slot)
			if raw == "" {
				continue
			}
			number := contact.NormalizePhone(raw)
			if contact.ValidatePhone(number) != nil {
				sawInvalid = true
				continue
			}
			if len(s.pendingPhones) < contact.RequiredPhones {
				s.pendingPhones = append(s.pendingPhones, number)
			}
		}
		switch {
		case len(s.pendingPhones) == contact.RequiredPhones:
			s.State = StatePhoneConfirm
			return Reply{Utterance: uttConfirmPhones(s.pendingPhones[0], s.pendingPhones[1])}
		case sawInvalid:
			return Reply{Utterance: uttPhoneInvalid}
		case len(s.pendingPhones) == 1:
			return Reply{Utterance: uttNeedSecond}
		default:
			return Reply{Utterance: uttAskPhones}
		}
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttAskPhones}
		}
		return Reply{Utterance: uttEscalate + " " + uttAskPhones}
	default:
		if len(s.pendingPhones) == 1 {
			return Reply{Utterance: uttNeedSecond}
		}
		return Reply{Utterance: uttAskPhones}
	}
}

func (c *Controller) onPhoneConfirm(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Affirm:
		if err := s.Contact.SetPhones(s.pendingPhones); err != nil {
			// pending numbers are validated on entry; re-collect if not
			s.pendingPhones = nil
			s.State = StatePhoneCollection
			return Reply{Utterance: uttPhoneInvalid}
		}
		s.State = StateFinalConfirm
		return Reply{Utterance: uttFinalConfirm(s.Offer)}
	case intent.Correction, intent.Data:
		sawInvalid := false
		for i, slot := range []string{slotPhone1, slotPhone2} {
			raw := in.Field(slot)
			if raw == "" {
				continue
			}
			number := contact.NormalizePhone(raw)
			if contact.ValidatePhone(number) != nil {
				sawInvalid = true
				continue
			}
			if i < len(s.pendingPhones) {
				s.pendingPhones[i] = number
			}
		}
		if sawInvalid {
			return Reply{Utterance: uttPhoneInvalid}
		}
		return Reply{Utterance: uttConfirmPhones(s.pendingPhones[0], s.pendingPhones[1])}
	case intent.Deny:
		s.pendingPhones = nil
		s.State = StatePhoneCollection
		return Reply{Utterance: uttAskPhones}
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttConfirmPhones(s.pendingPhones[0], s.pendingPhones[1])}
		}
		return Reply{Utterance: uttEscalate + " " + uttConfirmPhones(s.pendingPhones[0], s.pendingPhones[1])}
	default:
		return Reply{Utterance: uttConfirmPhones(s.pendingPhones[0], s.pendingPhones[1])}
	}
}

// onFinalConfirm is the dispatch gate: nothing is sent without a fresh
// AFFIRM on the current offer version, and the presented rate is always
// recomputed from the current term.
func (c *Controller) onFinalConfirm(ctx context.Context, in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Affirm:
		return c.dispatchCurrent(ctx)
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttFinalConfirm(s.Offer)}
		}
		return Reply{Utterance: uttEscalate + " " + uttFinalConfirm(s.Offer)}
	case intent.Correction, intent.Data:
		changed, problem := c.applyOfferChanges(in)
		if problem != "" {
			return Reply{Utterance: problem}
		}
		if changed {
			return Reply{Utterance: uttFinalConfirm(s.Offer)}
		}
		return Reply{Utterance: uttOfferHelp}
	case intent.Deny:
		return Reply{Utterance: uttOfferHelp}
	default:
		return Reply{Utterance: uttEscalate + " " + uttFinalConfirm(s.Offer)}
	}
}

func (c *Controller) onDispatched(in intent.Result) Reply {
	s := c.sess
	switch in.Intent {
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer}
		}
		return Reply{Utterance: uttEscalate}
	case intent.Correction, intent.Data:
		return c.beginAmendment(in)
	default:
		s.State = StateClosing
		return Reply{Utterance: uttClosingAsk}
	}
}

// beginAmendment starts the post-dispatch amount change flow. It needs a new
// amount, a continuation confirm, and a final explicit confirm before the
// amendment takes effect.
func (c *Controller) beginAmendment(in intent.Result) Reply {
	s := c.sess
	s.State = StatePostDispatchAmend
	s.amend = amendAwaitAmount
	if raw := in.Field(slotAmount); raw != "" {
		return c.takeAmendAmount(raw)
	}
	return Reply{Utterance: uttAskNewAmount(s.Offer.Amount())}
}

func (c *Controller) takeAmendAmount(raw string) Reply {
	s := c.sess
	amount, ok := parseAmount(raw)
	if !ok || loan.ValidateAmount(amount) != nil {
		return Reply{Utterance: uttAmountRule()}
	}
	s.amendAmount = amount
	s.amend = amendAwaitContinue
	return Reply{Utterance: uttConfirmNewAmount(amount)}
}

func (c *Controller) onPostDispatchAmend(ctx context.Context, in intent.Result) Reply {
	s := c.sess
	switch s.amend {
	case amendAwaitAmount:
		switch in.Intent {
		case intent.Data, intent.Correction:
			if raw := in.Field(slotAmount); raw != "" {
				return c.takeAmendAmount(raw)
			}
			return Reply{Utterance: uttAskNewAmount(s.Offer.Amount())}
		case intent.Deny:
			return c.cancelAmendment()
		default:
			return Reply{Utterance: uttAskNewAmount(s.Offer.Amount())}
		}
	case amendAwaitContinue:
		switch in.Intent {
		case intent.Affirm:
			s.amend = amendAwaitFinal
			return Reply{Utterance: uttAmendFinal}
		case intent.Data, intent.Correction:
			if raw := in.Field(slotAmount); raw != "" {
				return c.takeAmendAmount(raw)
			}
			return Reply{Utterance: uttConfirmNewAmount(s.amendAmount)}
		case intent.Deny:
			return c.cancelAmendment()
		default:
			return Reply{Utterance: uttConfirmNewAmount(s.amendAmount)}
		}
	case amendAwaitFinal:
		switch in.Intent {
		case intent.Affirm:
			if err := s.Offer.SetAmount(s.amendAmount); err != nil {
				return c.cancelAmendment()
			}
			reply := c.dispatchCurrent(ctx)
			if s.State == StateDispatched {
				s.amend = amendNone
			}
			return reply
		case intent.Deny:
			return c.cancelAmendment()
		default:
			return Reply{Utterance: uttAmendFinal}
		}
	}
	return c.cancelAmendment()
}

func (c *Controller) cancelAmendment() Reply {
	s := c.sess
	s.amend = amendNone
	s.amendAmount = 0
	s.State = StateClosing
	return Reply{Utterance: uttClosingAsk}
}

func (c *Controller) onClosing(in intent.Result) Reply {
	switch in.Intent {
	case intent.Question:
		if answer, ok := c.answer(in.Question); ok {
			return Reply{Utterance: answer + " " + uttClosingAsk}
		}
		return Reply{Utterance: uttEscalate + " " + uttClosingAsk}
	case intent.Affirm:
		return Reply{Utterance: uttClosingListen}
	case intent.Correction, intent.Data:
		return c.beginAmendment(in)
	default:
		return c.endCall(EndCompleted, uttClosingFinal)
	}
}

// dispatchCurrent sends the current offer version unless it has already been
// sent. A gateway failure keeps the gate in place; the next AFFIRM retries.
func (c *Controller) dispatchCurrent(ctx context.Context) Reply {
	s := c.sess
	if !s.Dispatched() {
		_, err := c.gateway.Dispatch(ctx, dispatch.Request{
			SessionID:    c.callID,
			Phones:       s.Contact.Phones,
			Amount:       s.Offer.Amount(),
			TermMonths:   s.Offer.TermMonths(),
			OfferVersion: s.Offer.Version(),
		})
		if err != nil {
			log.Printf("❌ [%s] dispatch failed for offer v%d: %v", shortID(c.callID), s.Offer.Version(), err)
			return Reply{Utterance: uttDispatchFail}
		}
		s.DispatchedVersion = s.Offer.Version()
		s.DispatchCount++
	}
	s.Confirmed = true
	s.State = StateDispatched
	return Reply{Utterance: uttDispatched(s.Offer, s.AccountSuffix)}
}

// applyOfferChanges amends term and/or amount from the turn's slots. The
// first invalid value stops and returns the matching rule text; valid
// changes bump the offer version and the rate follows the term.
func (c *Controller) applyOfferChanges(in intent.Result) (changed bool, problem string) {
	s := c.sess
	if raw := in.Field(slotTermMonths); raw != "" {
		term, ok := parseTerm(raw)
		if !ok || s.Offer.SetTerm(term) != nil {
			return changed, uttTermRule()
		}
		changed = true
	}
	if raw := in.Field(slotAmount); raw != "" {
		amount, ok := parseAmount(raw)
		if !ok || s.Offer.SetAmount(amount) != nil {
			return changed, uttAmountRule()
		}
		changed = true
	}
	return changed, ""
}

func (c *Controller) answer(slug string) (string, bool) {
	return answerQuestion(slug, c.sess.Offer, c.sess.MaxTermMonths)
}

func parseAmount(raw string) (float64, bool) {
	cleaned := strings.NewReplacer(" ", "", ",", "", "manat", "").Replace(strings.ToLower(raw))
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

func parseTerm(raw string) (int, bool) {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(raw)), "ay"))
	term, err := strconv.Atoi(strings.TrimSpace(cleaned))
	if err != nil {
		return 0, false
	}
	return term, true
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
