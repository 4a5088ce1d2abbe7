package outbound

import (
	"context"

	"storyspark-api/domain"
)

type SynthesizedAudio struct {
	Audio           []byte
	DurationSeconds float64
}

// SpeechProviderPort wraps the text-to-speech capability. Like the text
// provider it carries no retry logic and classifies failures via
// *domain.ProviderError.
type SpeechProviderPort interface {
	Synthesize(ctx context.Context, params domain.VoiceParameters) (*SynthesizedAudio, error)
}
