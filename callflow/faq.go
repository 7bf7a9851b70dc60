package callflow

import (
	"fmt"

	"github.com/room4-2/LoanConverse/intent"
	"github.com/room4-2/LoanConverse/loan"
)

// Question category slugs. The classifier maps raw utterances onto these;
// the controller only ever looks answers up by slug.
const (
	QRate           = "rate"
	QMaxTerm        = "max_term"
	QTotalCost      = "total_cost"
	QCommission     = "commission"
	QMinAmount      = "min_amount"
	QShorterTerm    = "shorter_term"
	QOtherTerms     = "other_terms"
	QCollateral     = "collateral"
	QSiteVisit      = "site_visit"
	QBranchVisit    = "branch_visit"
	QEarlyRepayment = "early_repayment"
	QEarlyPenalty   = "early_penalty"
	QPrivacy        = "privacy"
)

// staticAnswers are the canned responses that do not depend on the live offer.
var staticAnswers = map[string]string{
	QRate:           "Faiz dərəcəsi müddətdən asılıdır: 6 ay üçün 19%, 12 ay üçün 21%, 24 ay üçün 23%, 36 ay üçün 25%-dir.",
	QCommission:     "Bəli, 1% komissiya haqqı var. Bu məbləğ kreditin verildiyi zaman məbləğdən çıxılır.",
	QMinAmount:      "Bəli! 1,000 manatdan başlayaraq istədiyiniz məbləği seçə bilərsiniz.",
	QShorterTerm:    "Bəli! Yalnız 6, 12, 24 və ya 36 ay müddətlərindən birini seçə bilərsiniz. Qısa müddətlərdə faiz dərəcəsi daha aşağıdır: 6 ay üçün 19%, 12 ay üçün 21%, 24 ay üçün 23%.",
	QOtherTerms:     "Xeyr, yalnız 6, 12, 24 və ya 36 ay müddətlərini təklif edirik. Bu dörd seçimdən birini seçməlisiniz.",
	QCollateral:     "Xeyr, bu kredit təminatsızdır. Nə zamin, nə girov, nə də başqa təminat lazım deyil.",
	QSiteVisit:      "Xeyr, biznesinizə heç bir yoxlama və ya təsdiqləmə üçün gəlməyəcəklər.",
	QBranchVisit:    "Xeyr, hər şey məsafədən edilə bilər.",
	QEarlyRepayment: "Bəli, istədiyiniz zaman erkən qaytara bilərsiniz.",
	QEarlyPenalty:   "Xeyr, erkən ödəniş üçün heç bir cərimə yoxdur.",
	QPrivacy:        "Narahat olmayın - onlarla kredit təfərrüatlarını bölüşməyəcəyik. Yalnız sizinlə əlaqə saxlamağa çalışdığımızı bildirəcəyik.",
}

// questionHints feed the classifier's expectation for any state that can
// route questions.
var questionHints = []intent.QuestionHint{
	{Slug: QRate, Keywords: []string{"faiz"}},
	{Slug: QMaxTerm, Keywords: []string{"maksimum müddət", "maksimal müddət"}},
	{Slug: QTotalCost, Keywords: []string{"ümumi ödəniş", "aylıq ödəniş", "nə qədər ödəyəcəyəm"}},
	{Slug: QCommission, Keywords: []string{"komissiya"}},
	{Slug: QMinAmount, Keywords: []string{"az məbləğ", "minimum"}},
	{Slug: QShorterTerm, Keywords: []string{"qısa müddət"}},
	{Slug: QOtherTerms, Keywords: []string{"başqa müddət", "18 ay", "30 ay"}},
	{Slug: QCollateral, Keywords: []string{"zamin", "girov", "təminat"}},
	{Slug: QSiteVisit, Keywords: []string{"yoxlama", "gələcək"}},
	{Slug: QBranchVisit, Keywords: []string{"filial"}},
	{Slug: QEarlyRepayment, Keywords: []string{"erkən qaytara", "erkən ödə"}},
	{Slug: QEarlyPenalty, Keywords: []string{"cərimə"}},
	{Slug: QPrivacy, Keywords: []string{"məxfi", "bölüşəcək", "nə deyəcəksiniz"}},
}

// answerQuestion resolves a category to its response. Dynamic categories are
// computed against the current offer so the figures are never stale.
// The second return is false for off-script categories, which escalate.
func answerQuestion(slug string, offer *loan.Offer, maxTermMonths int) (string, bool) {
	switch slug {
	case QMaxTerm:
		return fmt.Sprintf("Sizin üçün mövcud olan maksimum müddət %d aydır.", maxTermMonths), true
	case QTotalCost:
		est := offer.Estimate()
		return fmt.Sprintf("%s manat üçün %d ay müddətində (%.0f%% faizlə), aylıq ödənişiniz təxminən %s manat, ümumi məbləğ isə faizlə birlikdə təxminən %s manat olacaq.",
			formatAmount(offer.Amount()), offer.TermMonths(), offer.Rate(),
			formatAmount(est.MonthlyPayment), formatAmount(est.TotalPayment)), true
	}
	answer, ok := staticAnswers[slug]
	return answer, ok
}
