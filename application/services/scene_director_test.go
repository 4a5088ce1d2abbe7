package services

import (
	"context"
	"testing"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/infrastructure/adapters"
)

func directParams(t *testing.T) inbound.DirectSceneParams {
	t.Helper()
	return inbound.DirectSceneParams{
		Script:    "Hello Thomas! Let's tidy the Legos together.",
		Character: seededCharacter(t, "frog"),
		Scenario:  seededScenario(t, "chore_motivation"),
	}
}

func TestSceneDirector_ParsesResponse(t *testing.T) {
	provider := &stubTextProvider{fn: func(context.Context, outbound.GenerateTextRequest) (string, error) {
		return "```json\n{\"setting\": \"Frog's sunny garden\", \"mood\": \"cheerful\", \"ambient_sounds\": [\"birdsong\", \"rustling leaves\"]}\n```", nil
	}}
	director := NewSceneDirector(adapters.NewZerologWrapper(), provider)

	scene, err := director.Direct(context.Background(), directParams(t))
	if err != nil {
		t.Fatal("Direct failed:", err)
	}
	if scene.Setting != "Frog's sunny garden" {
		t.Errorf("Unexpected setting %q", scene.Setting)
	}
	if scene.Mood != "cheerful" {
		t.Errorf("Unexpected mood %q", scene.Mood)
	}
	if len(scene.AmbientSounds) != 2 || scene.AmbientSounds[0] != "birdsong" {
		t.Errorf("Unexpected ambient sounds %v", scene.AmbientSounds)
	}
}

func TestSceneDirector_RejectsEmptySetting(t *testing.T) {
	provider := &stubTextProvider{fn: func(context.Context, outbound.GenerateTextRequest) (string, error) {
		return `{"setting": "", "mood": "calm", "ambient_sounds": []}`, nil
	}}
	director := NewSceneDirector(adapters.NewZerologWrapper(), provider)

	if _, err := director.Direct(context.Background(), directParams(t)); err == nil {
		t.Fatal("Expected an error for a scene without a setting")
	}
}

func TestSceneDirector_RejectsUnparseableResponse(t *testing.T) {
	provider := &stubTextProvider{fn: func(context.Context, outbound.GenerateTextRequest) (string, error) {
		return "a lovely garden scene with birds", nil
	}}
	director := NewSceneDirector(adapters.NewZerologWrapper(), provider)

	if _, err := director.Direct(context.Background(), directParams(t)); err == nil {
		t.Fatal("Expected an error for an unparseable response")
	}
}
