package services

import (
	"context"
	"fmt"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

const sceneSystemPrompt = "You are a scene director for children's audio clips. " +
	"Given an approved script you describe the setting, mood and ambient sounds. " +
	"Respond with ONLY valid JSON."

const scenePromptTemplate = `Derive scene direction for this clip.

CHARACTER: %s
SCENARIO: %s
SCRIPT:
---
%s
---

Respond with this JSON format:
{
  "setting": "brief visual setting, e.g. Frog's sunny garden",
  "mood": "single mood tag, e.g. cheerful",
  "ambient_sounds": ["ordered", "list", "of", "ambient", "sounds"]
}`

type sceneDirector struct {
	logger       outbound.LoggerPort
	textProvider outbound.TextProviderPort
}

func NewSceneDirector(logger outbound.LoggerPort, textProvider outbound.TextProviderPort) inbound.SceneDirectorPort {
	return &sceneDirector{
		logger:       logger,
		textProvider: textProvider,
	}
}

func (s *sceneDirector) Direct(ctx context.Context, params inbound.DirectSceneParams) (*domain.SceneDescription, error) {
	raw, err := s.textProvider.Generate(ctx, outbound.GenerateTextRequest{
		SystemPrompt: sceneSystemPrompt,
		Prompt:       fmt.Sprintf(scenePromptTemplate, params.Character.Name, params.Scenario.Type, params.Script),
		MaxTokens:    256,
	})
	if err != nil {
		return nil, err
	}

	var scene domain.SceneDescription
	if err := decodeModelJSON(raw, &scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene direction response: %w", err)
	}
	if scene.Setting == "" {
		return nil, fmt.Errorf("scene direction response missing setting")
	}

	return &scene, nil
}
