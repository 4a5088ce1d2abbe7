package domain

// VoiceProfile holds the synthesis baseline for a character. Pitch, Speed,
// Warmth and Enthusiasm are normalised around 1.0 / 0..1 and are mapped to
// provider-specific settings by the speech adapter.
type VoiceProfile struct {
	BaseVoiceID string  `json:"base_voice_id"`
	Pitch       float64 `json:"pitch"`
	Speed       float64 `json:"speed"`
	Warmth      float64 `json:"warmth"`
	Enthusiasm  float64 `json:"enthusiasm"`
	StyleNotes  string  `json:"style_notes"`
}

type Character struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	ShowName      string       `json:"show_name"`
	Personality   string       `json:"personality"`
	SpeechPattern string       `json:"speech_pattern"`
	Themes        string       `json:"themes"`
	VoiceProfile  VoiceProfile `json:"voice_profile"`
}

// ScenarioTemplate is immutable reference data. Beats are the narrative
// sections a generated script must contain, in order.
type ScenarioTemplate struct {
	Type          string   `json:"type"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Beats         []string `json:"beats"`
	ExamplePrompt string   `json:"example_prompt,omitempty"`
}

type Child struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

// AgeRange bounds the audience the safety review targets. When a child has
// no recorded age the configured default range applies.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
