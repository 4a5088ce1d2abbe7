package services

import (
	"fmt"
	"regexp"
	"strings"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

const basePauseMs = 450

type voiceMapper struct {
	logger      outbound.LoggerPort
	cueRegexp   *regexp.Regexp
	spaceRegexp *regexp.Regexp
	sentRegexp  *regexp.Regexp
}

func NewVoiceMapper(logger outbound.LoggerPort) inbound.VoiceMapperPort {
	return &voiceMapper{
		logger:      logger,
		cueRegexp:   regexp.MustCompile(`\[(.*?)]\s*`),
		spaceRegexp: regexp.MustCompile(`\s+`),
		sentRegexp:  regexp.MustCompile(`[^.!?]+[.!?]+`),
	}
}

func (v *voiceMapper) Map(script string, profile domain.VoiceProfile) (*domain.VoiceParameters, error) {
	if profile.BaseVoiceID == "" {
		return nil, fmt.Errorf("voice profile has no base voice id")
	}

	texts := v.segment(script)
	if len(texts) == 0 {
		return nil, fmt.Errorf("script yielded no speakable segments")
	}

	pause := basePauseMs
	if profile.Speed > 0 {
		pause = int(basePauseMs / profile.Speed)
	}

	segments := make([]domain.SpeechSegment, len(texts))
	for i, text := range texts {
		segments[i] = domain.SpeechSegment{
			Text:         text,
			Emotion:      v.emotionFor(i, len(texts), profile),
			PauseAfterMs: pause,
		}
	}
	segments[len(segments)-1].PauseAfterMs = 0

	return &domain.VoiceParameters{
		BaseVoiceID: profile.BaseVoiceID,
		Pitch:       profile.Pitch,
		Speed:       profile.Speed,
		Warmth:      profile.Warmth,
		Segments:    segments,
	}, nil
}

// segment strips bracketed stage cues, then splits the script at sentence
// punctuation. Trailing text without closing punctuation becomes a final
// segment.
func (v *voiceMapper) segment(script string) []string {
	cleaned := v.cueRegexp.ReplaceAllString(script, "")
	cleaned = v.spaceRegexp.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}

	matches := v.sentRegexp.FindAllStringIndex(cleaned, -1)
	segments := make([]string, 0, len(matches)+1)
	end := 0
	for _, m := range matches {
		if text := strings.TrimSpace(cleaned[m[0]:m[1]]); text != "" {
			segments = append(segments, text)
		}
		end = m[1]
	}
	if rest := strings.TrimSpace(cleaned[end:]); rest != "" {
		segments = append(segments, rest)
	}
	return segments
}

// emotionFor assigns a tag from the fixed vocabulary by position: a warm
// greeting first, a close that is gentle for slow-paced voices and
// encouraging otherwise, and middles that lead with enthusiasm when the
// profile calls for it.
func (v *voiceMapper) emotionFor(idx, total int, profile domain.VoiceProfile) domain.Emotion {
	if idx == 0 {
		return domain.EmotionWarmGreeting
	}
	if idx == total-1 {
		if profile.Speed > 0 && profile.Speed < 1.0 {
			return domain.EmotionGentle
		}
		return domain.EmotionEncouraging
	}
	if profile.Enthusiasm >= 0.5 && idx%2 == 1 {
		return domain.EmotionEnthusiastic
	}
	return domain.EmotionEncouraging
}
