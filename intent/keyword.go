package intent

import (
	"context"
	"regexp"
	"strings"
)

// KeywordClassifier is the offline fallback used when no Gemini key is
// configured, and by the simulate binary and tests. It is deliberately
// simple: short yes/no words, question keywords from the expectation hints,
// and per-slot extraction heuristics. Production calls should run the
// Gemini classifier.
type KeywordClassifier struct{}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

var affirmWords = []string{"bəli", "hə", "beli", "he", "oldu", "razıyam", "raziyam", "yes", "ok", "əlbəttə", "davam"}

var denyWords = []string{"xeyr", "yox", "no", "istəmirəm", "istemirem", "lazım deyil"}

var correctionWords = []string{"səhv", "sehv", "düzgün deyil", "duzgun deyil", "deyil,", "düzəliş", "yanlış"}

var (
	phoneRe = regexp.MustCompile(`0[\d][\d][\d\s\-.]{7,}`)
	dateRe  = regexp.MustCompile(`(\d{1,2}[./-]\d{1,2}[./-]\d{4})|(\d{4}-\d{2}-\d{2})|(\d{1,2}\s+(?:yanvar|fevral|mart|aprel|may|iyun|iyul|avqust|sentyabr|oktyabr|noyabr|dekabr)\s+\d{4})`)
	termRe  = regexp.MustCompile(`(\d{1,2})\s*ay`)
	moneyRe = regexp.MustCompile(`(\d[\d\s,.]*\d|\d)\s*(manat)?`)
)

func (kc *KeywordClassifier) Classify(_ context.Context, utterance string, exp Expectation) (Result, error) {
	text := strings.TrimSpace(utterance)
	lower := strings.ToLower(text)

	if matchesAny(lower, affirmWords) && allowed(Affirm, exp.Intents) {
		return Result{Intent: Affirm}, nil
	}
	if matchesAny(lower, denyWords) && allowed(Deny, exp.Intents) {
		return Result{Intent: Deny}, nil
	}

	if slug, ok := matchQuestion(lower, exp.Questions); ok {
		return Result{Intent: Question, Question: slug}, nil
	}

	fields := extractFields(text, lower, exp.Slots)
	if len(fields) > 0 {
		in := Data
		if matchesAny(lower, correctionWords) && allowed(Correction, exp.Intents) {
			in = Correction
		}
		if !allowed(in, exp.Intents) {
			in = Other
		}
		return Result{Intent: in, Fields: fields}, nil
	}

	if strings.HasSuffix(text, "?") && allowed(Question, exp.Intents) {
		// A question outside the canned categories: no slug, escalated upstream.
		return Result{Intent: Question}, nil
	}

	return Result{Intent: Other}, nil
}

func matchesAny(lower string, words []string) bool {
	for _, w := range words {
		if lower == w || strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func matchQuestion(lower string, hints []QuestionHint) (string, bool) {
	for _, h := range hints {
		for _, kw := range h.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return h.Slug, true
			}
		}
	}
	return "", false
}

func extractFields(text, lower string, slots []string) map[string]string {
	fields := map[string]string{}
	remainder := text

	for _, slot := range slots {
		switch slot {
		case "phone1", "phone2":
			// handled together below
		case "birth_date":
			if m := dateRe.FindString(lower); m != "" {
				fields["birth_date"] = m
				remainder = strings.Replace(remainder, m, "", 1)
			}
		case "term_months":
			if m := termRe.FindStringSubmatch(lower); m != nil {
				fields["term_months"] = m[1]
				remainder = termRe.ReplaceAllString(remainder, "")
			}
		case "amount":
			if hasSlot(slots, "term_months") {
				// strip the term mention first so "20000 manat, 12 ay" splits cleanly
				remainder = termRe.ReplaceAllString(remainder, "")
			}
			if m := moneyRe.FindStringSubmatch(remainder); m != nil && len(strings.Trim(m[1], " ,.")) >= 3 {
				fields["amount"] = strings.Trim(m[1], " ,.")
				remainder = strings.Replace(remainder, m[0], "", 1)
			}
		}
	}

	if hasSlot(slots, "phone1") {
		for i, m := range phoneRe.FindAllString(text, 2) {
			slot := "phone1"
			if i == 1 {
				slot = "phone2"
			}
			fields[slot] = strings.TrimSpace(m)
		}
	}

	if hasSlot(slots, "father_name") {
		if name := strings.TrimSpace(strings.Trim(dateRe.ReplaceAllString(remainder, ""), " ,.")); name != "" && !strings.ContainsAny(name, "0123456789") {
			fields["father_name"] = name
		}
	}

	// Free-text slot pairs arrive as "X, Y" or "X və Y".
	fillPair := func(first, second string) {
		if fields[first] != "" || fields[second] != "" {
			return
		}
		parts := splitPair(remainder)
		if len(parts) >= 1 && parts[0] != "" {
			fields[first] = parts[0]
		}
		if len(parts) >= 2 && parts[1] != "" {
			fields[second] = parts[1]
		}
	}
	if hasSlot(slots, "sector") {
		fillPair("sector", "subsector")
	}
	if hasSlot(slots, "city") {
		fillPair("city", "district")
	}

	for slot, v := range fields {
		if strings.TrimSpace(v) == "" {
			delete(fields, slot)
		}
	}
	return fields
}

func hasSlot(slots []string, name string) bool {
	for _, s := range slots {
		if s == name {
			return true
		}
	}
	return false
}

func splitPair(text string) []string {
	text = strings.TrimSpace(strings.Trim(text, " ,."))
	if text == "" {
		return nil
	}
	var parts []string
	if strings.Contains(text, ",") {
		parts = strings.SplitN(text, ",", 2)
	} else if strings.Contains(text, " və ") {
		parts = strings.SplitN(text, " və ", 2)
	} else {
		parts = []string{text}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
