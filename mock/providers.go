// Package mock_providers supplies canned capability providers so the full
// pipeline can run offline, without LLM or TTS credentials.
package mock_providers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

const mockScript = "You know what, %s? I was just thinking about my garden this morning. " +
	"Once, Toad and I spent a whole afternoon tidying the potting shed, and it felt wonderful when we finished! " +
	"I know you can do it too... take it one little step at a time. " +
	"I am so proud of you, my friend. See you soon!"

type textProvider struct {
	delay time.Duration
}

// NewTextProvider returns a provider that recognises the safety-review and
// scene-direction prompts by their JSON instructions and answers each with a
// plausible canned response.
func NewTextProvider(delay time.Duration) outbound.TextProviderPort {
	return &textProvider{delay: delay}
}

func (p *textProvider) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(p.delay):
	}

	switch {
	case strings.Contains(req.Prompt, `"approved"`):
		return p.safetyResponse(), nil
	case strings.Contains(req.Prompt, `"ambient_sounds"`):
		return p.sceneResponse(), nil
	default:
		return fmt.Sprintf(mockScript, childNameFrom(req.Prompt)), nil
	}
}

func (p *textProvider) safetyResponse() string {
	checks := map[string]map[string]interface{}{}
	for _, rule := range []string{
		"age_appropriate_language", "emotional_safety", "no_conditional_love",
		"character_fidelity", "positive_framing", "no_commercial_content",
		"personal_data", "inclusive_language",
	} {
		checks[rule] = map[string]interface{}{"pass": true, "note": "ok"}
	}
	body, _ := json.Marshal(map[string]interface{}{
		"approved": true,
		"checks":   checks,
		"feedback": nil,
	})
	return string(body)
}

func (p *textProvider) sceneResponse() string {
	body, _ := json.Marshal(map[string]interface{}{
		"setting":        "Frog's sunny garden",
		"mood":           "cheerful",
		"ambient_sounds": []string{"birdsong", "gentle breeze", "pond water"},
	})
	return string(body)
}

func childNameFrom(prompt string) string {
	const marker = "CHILD'S NAME: "
	idx := strings.Index(prompt, marker)
	if idx < 0 {
		return "friend"
	}
	rest := prompt[idx+len(marker):]
	if end := strings.IndexByte(rest, '\n'); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

type speechProvider struct {
	delay time.Duration
}

// NewSpeechProvider returns a provider yielding a tiny silent payload and a
// word-count based duration.
func NewSpeechProvider(delay time.Duration) outbound.SpeechProviderPort {
	return &speechProvider{delay: delay}
}

func (p *speechProvider) Synthesize(ctx context.Context, params domain.VoiceParameters) (*outbound.SynthesizedAudio, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(p.delay):
	}

	words := 0
	for _, segment := range params.Segments {
		words += len(strings.Fields(segment.Text))
	}

	return &outbound.SynthesizedAudio{
		Audio:           []byte("mock-mp3-payload"),
		DurationSeconds: float64(words) / 2.5,
	}, nil
}
