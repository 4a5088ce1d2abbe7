package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

// The fixed, ordered rule set every draft script is evaluated against.
// Any single failing rule rejects the whole script.
var safetyRules = []struct {
	ID          string
	Description string
}{
	{"age_appropriate_language", "vocabulary and concepts suit the target age range"},
	{"emotional_safety", "no fear-inducing, shaming or threatening content"},
	{"no_conditional_love", "no conditional-love framing such as 'I'll like you if...'"},
	{"character_fidelity", "nothing contradicts the character's canonical personality"},
	{"positive_framing", "only positive reinforcement, ends on a warm note"},
	{"no_commercial_content", "no commercial or brand content"},
	{"personal_data", "no personal data beyond the child's first name"},
	{"inclusive_language", "language is inclusive of all children"},
}

const unparseableNote = "unparseable safety response"

const safetySystemPrompt = "You review AI-generated scripts intended for young children. " +
	"You are strict: when in doubt about any rule, fail it. Respond with ONLY valid JSON."

type safetyReviewer struct {
	logger       outbound.LoggerPort
	textProvider outbound.TextProviderPort
}

func NewSafetyReviewer(logger outbound.LoggerPort, textProvider outbound.TextProviderPort) inbound.SafetyReviewerPort {
	return &safetyReviewer{
		logger:       logger,
		textProvider: textProvider,
	}
}

type safetyCheckResponse struct {
	Pass bool   `json:"pass"`
	Note string `json:"note"`
}

type safetyReviewResponse struct {
	Approved bool                           `json:"approved"`
	Checks   map[string]safetyCheckResponse `json:"checks"`
	Feedback string                         `json:"feedback"`
}

func (s *safetyReviewer) Review(ctx context.Context, params inbound.ReviewScriptParams) (*domain.SafetyResult, error) {
	raw, err := s.textProvider.Generate(ctx, outbound.GenerateTextRequest{
		SystemPrompt: safetySystemPrompt,
		Prompt:       s.buildPrompt(params),
		MaxTokens:    512,
	})
	if err != nil {
		return nil, err
	}

	var resp safetyReviewResponse
	if err := decodeModelJSON(raw, &resp); err != nil {
		// Fail closed: an unreadable verdict is a rejection, never an
		// approval and never a retryable provider error.
		s.logger.WarnWithFields("Safety response could not be parsed, rejecting", map[string]interface{}{
			"raw": truncate(raw, 200),
		})
		return &domain.SafetyResult{
			Verdict:  domain.SafetyRejected,
			Findings: []domain.SafetyFinding{{RuleID: "safety_review", Pass: false, Note: unparseableNote}},
			Feedback: unparseableNote,
		}, nil
	}

	return s.toResult(resp), nil
}

// toResult normalises the model response onto the fixed rule set, in rule
// order. A rule the model omitted counts as failed; the verdict is
// recomputed rather than trusted.
func (s *safetyReviewer) toResult(resp safetyReviewResponse) *domain.SafetyResult {
	findings := make([]domain.SafetyFinding, 0, len(safetyRules))
	allPass := true
	for _, rule := range safetyRules {
		check, ok := resp.Checks[rule.ID]
		if !ok {
			check = safetyCheckResponse{Pass: false, Note: "rule not evaluated"}
		}
		if !check.Pass {
			allPass = false
		}
		findings = append(findings, domain.SafetyFinding{
			RuleID: rule.ID,
			Pass:   check.Pass,
			Note:   check.Note,
		})
	}

	verdict := domain.SafetyApproved
	if !allPass {
		verdict = domain.SafetyRejected
	}
	return &domain.SafetyResult{
		Verdict:  verdict,
		Findings: findings,
		Feedback: resp.Feedback,
	}
}

func (s *safetyReviewer) buildPrompt(params inbound.ReviewScriptParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Review this script for a child aged %d-%d.\n\n", params.AgeRange.Min, params.AgeRange.Max)
	fmt.Fprintf(&b, "CHARACTER: %s\nCHARACTER PERSONALITY: %s\n", params.Character.Name, params.Character.Personality)
	fmt.Fprintf(&b, "SCENARIO: %s\nCHILD'S NAME: %s\n", params.Scenario.Type, params.ChildName)
	fmt.Fprintf(&b, "SCRIPT:\n---\n%s\n---\n\n", params.Script)

	b.WriteString("Evaluate every rule below independently:\n")
	for _, rule := range safetyRules {
		fmt.Fprintf(&b, "- %s: %s\n", rule.ID, rule.Description)
	}

	b.WriteString("\nRespond with this JSON format:\n{\n  \"approved\": true/false,\n  \"checks\": {\n")
	for i, rule := range safetyRules {
		fmt.Fprintf(&b, "    %q: {\"pass\": true/false, \"note\": \"brief note\"}", rule.ID)
		if i < len(safetyRules)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  },\n  \"feedback\": \"overall feedback, or null if approved\"\n}")

	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Never cut in the middle of a multi-byte rune.
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
