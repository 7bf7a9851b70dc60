package callflow

import (
	"strings"
	"testing"

	"github.com/room4-2/LoanConverse/loan"
)

func TestAnswerQuestion_AllCategories(t *testing.T) {
	offer, err := loan.NewOffer(50000, 36)
	if err != nil {
		t.Fatal(err)
	}

	slugs := []string{
		QRate, QMaxTerm, QTotalCost, QCommission, QMinAmount, QShorterTerm,
		QOtherTerms, QCollateral, QSiteVisit, QBranchVisit, QEarlyRepayment,
		QEarlyPenalty, QPrivacy,
	}
	for _, slug := range slugs {
		answer, ok := answerQuestion(slug, offer, 36)
		if !ok {
			t.Errorf("answerQuestion(%q): no answer", slug)
			continue
		}
		if strings.TrimSpace(answer) == "" {
			t.Errorf("answerQuestion(%q): empty answer", slug)
		}
	}
}

func TestAnswerQuestion_Unknown(t *testing.T) {
	offer, _ := loan.NewOffer(50000, 36)
	if _, ok := answerQuestion("weather", offer, 36); ok {
		t.Error("unknown category must not resolve")
	}
	if _, ok := answerQuestion("", offer, 36); ok {
		t.Error("empty category must not resolve")
	}
}

func TestAnswerQuestion_TotalCostTracksOffer(t *testing.T) {
	offer, _ := loan.NewOffer(50000, 36)
	before, _ := answerQuestion(QTotalCost, offer, 36)
	if !strings.Contains(before, "36 ay") || !strings.Contains(before, "25%") {
		t.Errorf("total cost for 36 months: %q", before)
	}

	if err := offer.SetTerm(12); err != nil {
		t.Fatal(err)
	}
	after, _ := answerQuestion(QTotalCost, offer, 36)
	if !strings.Contains(after, "12 ay") || !strings.Contains(after, "21%") {
		t.Errorf("total cost must follow the amended term: %q", after)
	}
}

func TestAnswerQuestion_MaxTermUsesCampaign(t *testing.T) {
	offer, _ := loan.NewOffer(50000, 36)
	answer, _ := answerQuestion(QMaxTerm, offer, 24)
	if !strings.Contains(answer, "24") {
		t.Errorf("max term answer should quote the campaign limit: %q", answer)
	}
}
