package services

import (
	"context"
	"fmt"
	"strings"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
)

const scriptSystemPrompt = "You write short personalized scripts spoken by children's TV show characters. " +
	"Scripts are warm, age-appropriate, use only positive reinforcement and are 30-60 seconds when " +
	"spoken aloud (roughly 75-150 words). Mark natural pauses with ... and emotional cues in " +
	"[brackets] like [warmly]. Respond with the script text only."

type scriptWriter struct {
	logger       outbound.LoggerPort
	textProvider outbound.TextProviderPort
}

func NewScriptWriter(logger outbound.LoggerPort, textProvider outbound.TextProviderPort) inbound.ScriptWriterPort {
	return &scriptWriter{
		logger:       logger,
		textProvider: textProvider,
	}
}

func (s *scriptWriter) Write(ctx context.Context, params inbound.WriteScriptParams) (string, error) {
	prompt := s.buildPrompt(params)

	s.logger.DebugWithFields("Requesting script draft", map[string]interface{}{
		"character": params.Character.ID,
		"scenario":  params.Scenario.Type,
		"revision":  len(params.PriorFeedback) > 0,
	})

	script, err := s.textProvider.Generate(ctx, outbound.GenerateTextRequest{
		SystemPrompt: scriptSystemPrompt,
		Prompt:       prompt,
		MaxTokens:    1024,
	})
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(script), nil
}

func (s *scriptWriter) buildPrompt(params inbound.WriteScriptParams) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a personalized clip script.\n\n")
	fmt.Fprintf(&b, "CHARACTER: %s (from %s)\n", params.Character.Name, params.Character.ShowName)
	fmt.Fprintf(&b, "PERSONALITY: %s\n", params.Character.Personality)
	fmt.Fprintf(&b, "SPEECH PATTERN: %s\n", params.Character.SpeechPattern)
	fmt.Fprintf(&b, "THEMES: %s\n\n", params.Character.Themes)

	fmt.Fprintf(&b, "SCENARIO: %s - %s\n", params.Scenario.Type, params.Scenario.Description)
	fmt.Fprintf(&b, "The script must contain these narrative beats, in this exact order:\n")
	for i, beat := range params.Scenario.Beats {
		fmt.Fprintf(&b, "%d. %s\n", i+1, beat)
	}

	fmt.Fprintf(&b, "\nCHILD'S NAME: %s\n", params.ChildName)
	if params.ChildAge > 0 {
		fmt.Fprintf(&b, "CHILD'S AGE: %d\n", params.ChildAge)
	}
	note := params.ParentNote
	if note == "" {
		note = "No specific notes"
	}
	fmt.Fprintf(&b, "PARENT'S NOTE: %s\n", note)

	b.WriteString("\nStay perfectly faithful to the character's personality and speech pattern. " +
		"Address the child by name naturally, not repetitively.\n")

	if len(params.PriorFeedback) > 0 {
		b.WriteString("\nA previous draft was rejected by safety review. You MUST fix every issue below:\n")
		for _, finding := range params.PriorFeedback {
			fmt.Fprintf(&b, "- [%s] %s\n", finding.RuleID, finding.Note)
		}
	}

	return b.String()
}
