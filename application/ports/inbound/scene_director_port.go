package inbound

import (
	"context"

	"storyspark-api/domain"
)

type DirectSceneParams struct {
	Script    string
	Character *domain.Character
	Scenario  *domain.ScenarioTemplate
}

type SceneDirectorPort interface {
	Direct(ctx context.Context, params DirectSceneParams) (*domain.SceneDescription, error)
}
