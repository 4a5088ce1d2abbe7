package inbound

import (
	"context"

	"storyspark-api/domain"
)

type WriteScriptParams struct {
	Character  *domain.Character
	Scenario   *domain.ScenarioTemplate
	ChildName  string
	ChildAge   int
	ParentNote string
	// PriorFeedback carries the failing findings of the last safety
	// rejection on revision attempts; empty on the first attempt.
	PriorFeedback []domain.SafetyFinding
}

type ScriptWriterPort interface {
	Write(ctx context.Context, params WriteScriptParams) (string, error)
}
