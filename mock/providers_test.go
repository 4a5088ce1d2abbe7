package mock_providers

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

func TestTextProvider_AnswersEachPromptKind(t *testing.T) {
	provider := NewTextProvider(0)

	script, err := provider.Generate(context.Background(), outbound.GenerateTextRequest{
		Prompt: "Write a personalized clip script.\nCHILD'S NAME: Thomas\nPARENT'S NOTE: the Legos\n",
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	if !strings.Contains(script, "Thomas") {
		t.Errorf("Mock script must address the child, got %q", script)
	}

	safety, err := provider.Generate(context.Background(), outbound.GenerateTextRequest{
		Prompt: `Respond with this JSON format: {"approved": true/false, ...}`,
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	var verdict struct {
		Approved bool                       `json:"approved"`
		Checks   map[string]json.RawMessage `json:"checks"`
	}
	if err := json.Unmarshal([]byte(safety), &verdict); err != nil {
		t.Fatal("Safety response is not valid JSON:", err)
	}
	if !verdict.Approved || len(verdict.Checks) != 8 {
		t.Errorf("Expected an approving verdict over 8 rules, got approved=%v rules=%d", verdict.Approved, len(verdict.Checks))
	}

	sceneRaw, err := provider.Generate(context.Background(), outbound.GenerateTextRequest{
		Prompt: `Respond with this JSON format: {"setting": "...", "ambient_sounds": [...]}`,
	})
	if err != nil {
		t.Fatal("Generate failed:", err)
	}
	var scene domain.SceneDescription
	if err := json.Unmarshal([]byte(sceneRaw), &scene); err != nil {
		t.Fatal("Scene response is not valid JSON:", err)
	}
	if scene.Setting == "" {
		t.Error("Scene response must carry a setting")
	}
}

func TestSpeechProvider_EstimatesDuration(t *testing.T) {
	provider := NewSpeechProvider(0)

	audio, err := provider.Synthesize(context.Background(), domain.VoiceParameters{
		BaseVoiceID: "frog-warm-tenor",
		Segments: []domain.SpeechSegment{
			{Text: "Hello there Thomas!", Emotion: domain.EmotionWarmGreeting},
			{Text: "Tidy the Legos.", Emotion: domain.EmotionEncouraging},
		},
	})
	if err != nil {
		t.Fatal("Synthesize failed:", err)
	}
	if len(audio.Audio) == 0 {
		t.Error("Expected a non-empty payload")
	}
	if audio.DurationSeconds <= 0 {
		t.Errorf("Expected a positive duration, got %f", audio.DurationSeconds)
	}
}
