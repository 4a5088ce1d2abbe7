package services

import (
	"context"
	"strings"
	"testing"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
	"storyspark-api/infrastructure/adapters"
	"storyspark-api/infrastructure/catalog"
)

func seededCharacter(t *testing.T, id string) *domain.Character {
	t.Helper()
	character, err := catalog.NewSeeded().GetCharacter(id)
	if err != nil {
		t.Fatal("Failed to load seeded character:", err)
	}
	return character
}

func seededScenario(t *testing.T, scenarioType string) *domain.ScenarioTemplate {
	t.Helper()
	scenario, err := catalog.NewSeeded().GetScenario(scenarioType)
	if err != nil {
		t.Fatal("Failed to load seeded scenario:", err)
	}
	return scenario
}

func TestScriptWriter_PromptCarriesEverything(t *testing.T) {
	var captured outbound.GenerateTextRequest
	provider := &stubTextProvider{fn: func(_ context.Context, req outbound.GenerateTextRequest) (string, error) {
		captured = req
		return "  Hello Thomas! Let's tidy up.  ", nil
	}}

	writer := NewScriptWriter(adapters.NewZerologWrapper(), provider)
	scenario := seededScenario(t, "chore_motivation")

	script, err := writer.Write(context.Background(), inbound.WriteScriptParams{
		Character:  seededCharacter(t, "frog"),
		Scenario:   scenario,
		ChildName:  "Thomas",
		ChildAge:   5,
		ParentNote: "needs to put away his Legos",
	})
	if err != nil {
		t.Fatal("Write failed:", err)
	}
	if script != "Hello Thomas! Let's tidy up." {
		t.Errorf("Expected trimmed script, got %q", script)
	}

	if captured.SystemPrompt == "" {
		t.Error("System prompt must be set")
	}
	for _, want := range []string{"CHILD'S NAME: Thomas", "CHILD'S AGE: 5", "PARENT'S NOTE: needs to put away his Legos", "Frog"} {
		if !strings.Contains(captured.Prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}

	// Beats must appear in template order.
	last := -1
	for _, beat := range scenario.Beats {
		idx := strings.Index(captured.Prompt, beat)
		if idx < 0 {
			t.Fatalf("Prompt missing beat %q", beat)
		}
		if idx < last {
			t.Fatalf("Beat %q appears out of order", beat)
		}
		last = idx
	}

	if strings.Contains(captured.Prompt, "rejected by safety review") {
		t.Error("First attempt must not carry revision constraints")
	}
}

func TestScriptWriter_RevisionConstraints(t *testing.T) {
	var captured outbound.GenerateTextRequest
	provider := &stubTextProvider{fn: func(_ context.Context, req outbound.GenerateTextRequest) (string, error) {
		captured = req
		return "Hello again, Thomas!", nil
	}}

	writer := NewScriptWriter(adapters.NewZerologWrapper(), provider)

	_, err := writer.Write(context.Background(), inbound.WriteScriptParams{
		Character: seededCharacter(t, "toad"),
		Scenario:  seededScenario(t, "bedtime"),
		ChildName: "Thomas",
		PriorFeedback: []domain.SafetyFinding{
			{RuleID: "emotional_safety", Pass: false, Note: "contains fear-inducing imagery"},
		},
	})
	if err != nil {
		t.Fatal("Write failed:", err)
	}

	if !strings.Contains(captured.Prompt, "rejected by safety review") {
		t.Error("Revision attempt must mention the prior rejection")
	}
	if !strings.Contains(captured.Prompt, "[emotional_safety] contains fear-inducing imagery") {
		t.Error("Revision attempt must list the failing finding")
	}
	if !strings.Contains(captured.Prompt, "PARENT'S NOTE: No specific notes") {
		t.Error("Empty parent note should fall back to the placeholder")
	}
}

func TestScriptWriter_ProviderErrorPassesThrough(t *testing.T) {
	provider := &stubTextProvider{fn: func(context.Context, outbound.GenerateTextRequest) (string, error) {
		return "", domain.NewTransientError("generate", context.DeadlineExceeded)
	}}
	writer := NewScriptWriter(adapters.NewZerologWrapper(), provider)

	_, err := writer.Write(context.Background(), inbound.WriteScriptParams{
		Character: seededCharacter(t, "frog"),
		Scenario:  seededScenario(t, "storytelling"),
		ChildName: "Mia",
	})
	if !domain.IsTransient(err) {
		t.Fatalf("Expected the transient classification to survive, got %v", err)
	}
}
