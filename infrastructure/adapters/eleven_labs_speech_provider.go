package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/config"
	"storyspark-api/domain"
)

// Spoken-word rate used for the duration estimate, tuned for the measured
// pace of ElevenLabs multilingual voices.
const baseWordsPerMinute = 170.0

type elevenLabsRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	Speed           float64 `json:"speed,omitempty"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

var emotionStyles = map[domain.Emotion]float64{
	domain.EmotionWarmGreeting: 0.4,
	domain.EmotionEnthusiastic: 0.7,
	domain.EmotionEncouraging:  0.5,
	domain.EmotionGentle:       0.3,
}

type elevenLabsSpeechProvider struct {
	ContentFetcher
	elevenLabsConfig *config.ElevenLabsConfig
}

func NewElevenLabsSpeechProvider(contentFetcher ContentFetcher, elevenLabsConfig *config.ElevenLabsConfig) outbound.SpeechProviderPort {
	return &elevenLabsSpeechProvider{
		ContentFetcher:   contentFetcher,
		elevenLabsConfig: elevenLabsConfig,
	}
}

func (p *elevenLabsSpeechProvider) Synthesize(ctx context.Context, params domain.VoiceParameters) (*outbound.SynthesizedAudio, error) {
	const op = "speech_synthesis"

	if len(params.Segments) == 0 {
		return nil, domain.NewPermanentError(op, fmt.Errorf("no segments to synthesize"))
	}

	req, err := p.getRequest(ctx, params)
	if err != nil {
		log.Error().Err(err).Str("voice_id", params.BaseVoiceID).Msg("Failed to construct the HTTP request for speech synthesis")
		return nil, domain.NewPermanentError(op, err)
	}

	audio, err := p.FetchContent(req, op)
	if err != nil {
		return nil, err
	}

	return &outbound.SynthesizedAudio{
		Audio:           audio,
		DurationSeconds: estimateDuration(params),
	}, nil
}

func (p *elevenLabsSpeechProvider) getRequest(ctx context.Context, params domain.VoiceParameters) (*http.Request, error) {
	reqBody := elevenLabsRequest{
		Text:    renderSegments(params.Segments),
		ModelId: p.elevenLabsConfig.ModelId,
		VoiceSettings: voiceSettings{
			Stability:       p.elevenLabsConfig.Stability,
			SimilarityBoost: p.elevenLabsConfig.SimilarityBoost,
			Style:           dominantStyle(params.Segments),
			Speed:           params.Speed,
			UseSpeakerBoost: true,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal the request body: %w", err)
	}

	url := p.elevenLabsConfig.ApiUrl + "/" + params.BaseVoiceID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create the HTTP POST request: %w", err)
	}

	req.Header.Add("Accept", "audio/mpeg")
	req.Header.Add("xi-api-key", p.elevenLabsConfig.ApiKey)
	req.Header.Add("Content-Type", "application/json")

	return req, nil
}

// renderSegments joins the emotion-tagged segments into one synthesis input,
// expressing inter-segment pauses as break tags.
func renderSegments(segments []domain.SpeechSegment) string {
	var b strings.Builder
	for i, segment := range segments {
		b.WriteString(segment.Text)
		if segment.PauseAfterMs > 0 && i < len(segments)-1 {
			fmt.Fprintf(&b, ` <break time="%dms" /> `, segment.PauseAfterMs)
		} else if i < len(segments)-1 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// dominantStyle picks the style intensity of the emotion covering the most
// text, since the provider accepts a single style per request.
func dominantStyle(segments []domain.SpeechSegment) float64 {
	coverage := make(map[domain.Emotion]int)
	for _, segment := range segments {
		coverage[segment.Emotion] += len(segment.Text)
	}
	var dominant domain.Emotion
	best := -1
	for emotion, chars := range coverage {
		if chars > best {
			dominant = emotion
			best = chars
		}
	}
	if style, ok := emotionStyles[dominant]; ok {
		return style
	}
	return 0.4
}

func estimateDuration(params domain.VoiceParameters) float64 {
	words := 0
	pauseMs := 0
	for _, segment := range params.Segments {
		words += len(strings.Fields(segment.Text))
		pauseMs += segment.PauseAfterMs
	}
	rate := baseWordsPerMinute
	if params.Speed > 0 {
		rate *= params.Speed
	}
	return float64(words)/rate*60.0 + float64(pauseMs)/1000.0
}
