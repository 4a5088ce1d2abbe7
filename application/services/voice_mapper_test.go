package services

import (
	"reflect"
	"strings"
	"testing"

	"storyspark-api/domain"
	"storyspark-api/infrastructure/adapters"
)

const choreScript = "[warmly] You know what, Thomas? I was just thinking about your Legos. " +
	"[chuckles] Toad once sorted his whole kitchen in one afternoon! " +
	"I bet you can tidy them up before dinner. " +
	"You always make me proud."

func TestVoiceMapper_SegmentsAndEmotions(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	frog := seededCharacter(t, "frog")

	params, err := mapper.Map(choreScript, frog.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}

	if params.BaseVoiceID != "frog-warm-tenor" {
		t.Errorf("Unexpected base voice %q", params.BaseVoiceID)
	}
	if len(params.Segments) != 5 {
		t.Fatalf("Expected 5 segments, got %d: %+v", len(params.Segments), params.Segments)
	}

	for i, segment := range params.Segments {
		if segment.Text == "" {
			t.Errorf("Segment %d has empty text", i)
		}
		if strings.ContainsAny(segment.Text, "[]") {
			t.Errorf("Segment %d still carries a stage cue: %q", i, segment.Text)
		}
	}

	expectedEmotions := []domain.Emotion{
		domain.EmotionWarmGreeting,
		domain.EmotionEnthusiastic,
		domain.EmotionEncouraging,
		domain.EmotionEnthusiastic,
		domain.EmotionEncouraging,
	}
	for i, want := range expectedEmotions {
		if params.Segments[i].Emotion != want {
			t.Errorf("Segment %d: expected emotion %s, got %s", i, want, params.Segments[i].Emotion)
		}
	}

	for i, segment := range params.Segments[:len(params.Segments)-1] {
		if segment.PauseAfterMs != 450 {
			t.Errorf("Segment %d: expected 450ms pause at speed 1.0, got %d", i, segment.PauseAfterMs)
		}
	}
	if last := params.Segments[len(params.Segments)-1]; last.PauseAfterMs != 0 {
		t.Errorf("Final segment must not pause, got %d", last.PauseAfterMs)
	}
}

func TestVoiceMapper_SlowProfileGetsGentleClose(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	toad := seededCharacter(t, "toad")

	params, err := mapper.Map(choreScript, toad.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}

	last := params.Segments[len(params.Segments)-1]
	if last.Emotion != domain.EmotionGentle {
		t.Errorf("Expected gentle close for a slow profile, got %s", last.Emotion)
	}
	// 450ms stretched by the 0.9 speed.
	if params.Segments[0].PauseAfterMs != 500 {
		t.Errorf("Expected 500ms pause at speed 0.9, got %d", params.Segments[0].PauseAfterMs)
	}
}

func TestVoiceMapper_Deterministic(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	frog := seededCharacter(t, "frog")

	first, err := mapper.Map(choreScript, frog.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}
	second, err := mapper.Map(choreScript, frog.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Mapping the same script twice must yield identical parameters")
	}
}

func TestVoiceMapper_TrailingTextWithoutPunctuation(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	frog := seededCharacter(t, "frog")

	params, err := mapper.Map("Hello there. Sweet dreams", frog.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}
	if len(params.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(params.Segments))
	}
	if params.Segments[1].Text != "Sweet dreams" {
		t.Errorf("Trailing text should become a segment, got %q", params.Segments[1].Text)
	}
}

func TestVoiceMapper_LeadingPauseMarker(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	frog := seededCharacter(t, "frog")

	// A script may open with a pause marker before any speakable text;
	// the tail after the last sentence must not re-emit consumed text.
	params, err := mapper.Map("... Hello Thomas! Let us tidy the Legos.", frog.VoiceProfile)
	if err != nil {
		t.Fatal("Map failed:", err)
	}
	if len(params.Segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d: %+v", len(params.Segments), params.Segments)
	}
	if params.Segments[0].Text != "Hello Thomas!" {
		t.Errorf("Unexpected first segment %q", params.Segments[0].Text)
	}
	if params.Segments[1].Text != "Let us tidy the Legos." {
		t.Errorf("Unexpected last segment %q", params.Segments[1].Text)
	}
}

func TestVoiceMapper_RejectsEmptyScript(t *testing.T) {
	mapper := NewVoiceMapper(adapters.NewZerologWrapper())
	frog := seededCharacter(t, "frog")

	if _, err := mapper.Map("[warmly] [chuckles]", frog.VoiceProfile); err == nil {
		t.Fatal("A script that is all stage cues must be rejected")
	}
	if _, err := mapper.Map("Hello!", domain.VoiceProfile{}); err == nil {
		t.Fatal("A profile without a base voice id must be rejected")
	}
}
