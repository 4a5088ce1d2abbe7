package outbound

import "storyspark-api/domain"

// CatalogPort is pure lookup over immutable reference data. Missing ids are
// a caller-facing request error, never retried.
type CatalogPort interface {
	GetCharacter(id string) (*domain.Character, error)
	ListCharacters() []*domain.Character
	GetScenario(scenarioType string) (*domain.ScenarioTemplate, error)
	ListScenarios() []*domain.ScenarioTemplate
}
