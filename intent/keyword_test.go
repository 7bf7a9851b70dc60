package intent

import (
	"context"
	"testing"
)

func yesNoExp() Expectation {
	return Expectation{State: "TEST", Intents: []Intent{Affirm, Deny}}
}

func TestKeywordClassifier_YesNo(t *testing.T) {
	kc := NewKeywordClassifier()
	ctx := context.Background()

	for _, utterance := range []string{"Bəli", "bəli", "hə", "Bəli, təsdiqləyirəm"} {
		res, err := kc.Classify(ctx, utterance, yesNoExp())
		if err != nil {
			t.Fatalf("Classify(%q): %v", utterance, err)
		}
		if res.Intent != Affirm {
			t.Errorf("Classify(%q) = %s, want AFFIRM", utterance, res.Intent)
		}
	}

	for _, utterance := range []string{"Xeyr", "yox", "İstəmirəm"} {
		res, err := kc.Classify(ctx, utterance, yesNoExp())
		if err != nil {
			t.Fatalf("Classify(%q): %v", utterance, err)
		}
		if res.Intent != Deny {
			t.Errorf("Classify(%q) = %s, want DENY", utterance, res.Intent)
		}
	}
}

func TestKeywordClassifier_QuestionByHint(t *testing.T) {
	kc := NewKeywordClassifier()
	exp := Expectation{
		State:   "TEST",
		Intents: []Intent{Affirm, Deny, Question},
		Questions: []QuestionHint{
			{Slug: "rate", Keywords: []string{"faiz"}},
			{Slug: "commission", Keywords: []string{"komissiya"}},
		},
	}

	res, err := kc.Classify(context.Background(), "Faiz dərəcəsi nə qədərdir?", exp)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != Question || res.Question != "rate" {
		t.Errorf("got %s/%q, want QUESTION/rate", res.Intent, res.Question)
	}

	res, err = kc.Classify(context.Background(), "Hava necədir?", exp)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != Question || res.Question != "" {
		t.Errorf("off-script question: got %s/%q, want QUESTION with empty slug", res.Intent, res.Question)
	}
}

func TestKeywordClassifier_PhoneExtraction(t *testing.T) {
	kc := NewKeywordClassifier()
	exp := Expectation{State: "TEST", Intents: []Intent{Data}, Slots: []string{"phone1", "phone2"}}

	res, err := kc.Classify(context.Background(), "050 123 45 67 və 0771234567", exp)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != Data {
		t.Fatalf("intent = %s, want DATA", res.Intent)
	}
	if res.Field("phone1") == "" || res.Field("phone2") == "" {
		t.Errorf("expected two phone slots, got %v", res.Fields)
	}
}

func TestKeywordClassifier_AmountAndTerm(t *testing.T) {
	kc := NewKeywordClassifier()
	exp := Expectation{State: "TEST", Intents: []Intent{Affirm, Deny, Data}, Slots: []string{"amount", "term_months"}}

	res, err := kc.Classify(context.Background(), "20000 manat, 12 ay istəyirəm", exp)
	if err != nil {
		t.Fatal(err)
	}
	if res.Intent != Data {
		t.Fatalf("intent = %s, want DATA", res.Intent)
	}
	if res.Field("amount") != "20000" {
		t.Errorf("amount = %q, want 20000", res.Field("amount"))
	}
	if res.Field("term_months") != "12" {
		t.Errorf("term_months = %q, want 12", res.Field("term_months"))
	}
}

func TestKeywordClassifier_SectorPair(t *testing.T) {
	kc := NewKeywordClassifier()
	exp := Expectation{State: "TEST", Intents: []Intent{Data}, Slots: []string{"sector", "subsector"}}

	res, err := kc.Classify(context.Background(), "Ticarət, pərakəndə satış", exp)
	if err != nil {
		t.Fatal(err)
	}
	if res.Field("sector") != "Ticarət" || res.Field("subsector") != "pərakəndə satış" {
		t.Errorf("pair extraction got %v", res.Fields)
	}
}

func TestCanonical(t *testing.T) {
	if Canonical(" affirm ") != Affirm {
		t.Error("Canonical should trim and upcase")
	}
	if Canonical("banana") != Other {
		t.Error("unknown labels map to OTHER")
	}
}
