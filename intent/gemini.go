package intent

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"google.golang.org/genai"
)

const defaultModel = "models/gemini-2.5-flash"

const classifierInstruction = `You classify one customer utterance from an Azerbaijani-language
telesales phone call about a business loan. Return strict JSON only.
Pick exactly one intent from the allowed list. Use AFFIRM for any yes/agree
wording ("Bəli", "hə", "oldu", "razıyam"), DENY for any no/refuse wording
("Xeyr", "yox", "istəmirəm"). Use CORRECTION when the customer changes
something they already gave. Use QUESTION with the matching category slug
when the utterance asks one of the listed questions. Use DATA when the
utterance carries values for the listed slots and fill every slot you can
extract, leaving the rest empty. Phone numbers go in as spoken, digits and
separators only. Otherwise use OTHER.`

// GeminiClassifier maps utterances to the intent contract with a
// schema-constrained Gemini call.
type GeminiClassifier struct {
	client *genai.Client
	model  string
}

// NewGeminiClassifier creates the client. Model may be empty to use the
// default flash model.
func NewGeminiClassifier(ctx context.Context, apiKey, model string) (*GeminiClassifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &GeminiClassifier{client: client, model: model}, nil
}

type classifierResponse struct {
	Intent   string            `json:"intent"`
	Question string            `json:"question"`
	Fields   map[string]string `json:"fields"`
}

// Classify sends one utterance with the current expectation and parses the
// strict-JSON verdict.
func (gc *GeminiClassifier) Classify(ctx context.Context, utterance string, exp Expectation) (Result, error) {
	prompt := buildPrompt(utterance, exp)

	resp, err := gc.client.Models.GenerateContent(ctx, gc.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: classifierInstruction}},
		},
		ResponseMIMEType: "application/json",
		ResponseSchema:   buildSchema(exp),
	})
	if err != nil {
		return Result{}, fmt.Errorf("classifier request failed: %w", err)
	}

	var parsed classifierResponse
	if err := sonic.UnmarshalString(resp.Text(), &parsed); err != nil {
		return Result{}, fmt.Errorf("classifier returned unparseable JSON: %w", err)
	}

	result := Result{
		Intent: Canonical(parsed.Intent),
		Fields: map[string]string{},
	}
	for slot, value := range parsed.Fields {
		if strings.TrimSpace(value) != "" {
			result.Fields[slot] = strings.TrimSpace(value)
		}
	}
	if result.Intent == Question {
		result.Question = canonicalQuestion(parsed.Question, exp.Questions)
	}
	if !allowed(result.Intent, exp.Intents) {
		result.Intent = Other
	}
	return result, nil
}

func buildPrompt(utterance string, exp Expectation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Conversation state: %s\n", exp.State)
	fmt.Fprintf(&b, "Allowed intents: %s\n", joinIntents(exp.Intents))
	if len(exp.Slots) > 0 {
		fmt.Fprintf(&b, "Data slots: %s\n", strings.Join(exp.Slots, ", "))
	}
	if len(exp.Questions) > 0 {
		b.WriteString("Question categories:\n")
		for _, q := range exp.Questions {
			fmt.Fprintf(&b, "- %s (keywords: %s)\n", q.Slug, strings.Join(q.Keywords, ", "))
		}
	}
	fmt.Fprintf(&b, "Customer said: %q\n", utterance)
	return b.String()
}

func buildSchema(exp Expectation) *genai.Schema {
	intents := make([]string, 0, len(exp.Intents)+1)
	for _, in := range exp.Intents {
		intents = append(intents, string(in))
	}
	intents = append(intents, string(Other))

	questions := make([]string, 0, len(exp.Questions)+1)
	for _, q := range exp.Questions {
		questions = append(questions, q.Slug)
	}
	questions = append(questions, "")

	fieldProps := map[string]*genai.Schema{}
	for _, slot := range exp.Slots {
		fieldProps[slot] = &genai.Schema{Type: genai.TypeString}
	}

	return &genai.Schema{
		Type:     genai.TypeObject,
		Required: []string{"intent"},
		Properties: map[string]*genai.Schema{
			"intent":   {Type: genai.TypeString, Enum: intents},
			"question": {Type: genai.TypeString, Enum: questions},
			"fields":   {Type: genai.TypeObject, Properties: fieldProps},
		},
	}
}

func joinIntents(intents []Intent) string {
	parts := make([]string, len(intents))
	for i, in := range intents {
		parts[i] = string(in)
	}
	return strings.Join(parts, ", ")
}

func canonicalQuestion(raw string, hints []QuestionHint) string {
	slug := strings.ToLower(strings.TrimSpace(raw))
	for _, h := range hints {
		if h.Slug == slug {
			return slug
		}
	}
	return ""
}

func allowed(in Intent, intents []Intent) bool {
	if in == Other {
		return true
	}
	for _, candidate := range intents {
		if in == candidate {
			return true
		}
	}
	return false
}
