package inbound

import (
	"context"

	"storyspark-api/domain"
)

type ReviewScriptParams struct {
	Script    string
	Character *domain.Character
	Scenario  *domain.ScenarioTemplate
	ChildName string
	AgeRange  domain.AgeRange
}

// SafetyReviewerPort evaluates a draft script against the fixed rule set.
// A rejection is a normal outcome, not an error; the error return is for
// provider failures only.
type SafetyReviewerPort interface {
	Review(ctx context.Context, params ReviewScriptParams) (*domain.SafetyResult, error)
}
