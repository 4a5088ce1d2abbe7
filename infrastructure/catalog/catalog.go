package catalog

import (
	"sort"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

// catalog is pure lookup over reference data frozen at construction. No
// mutation happens after New returns, so reads need no locking.
type catalog struct {
	characters map[string]*domain.Character
	scenarios  map[string]*domain.ScenarioTemplate
}

func New(characters []domain.Character, scenarios []domain.ScenarioTemplate) outbound.CatalogPort {
	c := &catalog{
		characters: make(map[string]*domain.Character, len(characters)),
		scenarios:  make(map[string]*domain.ScenarioTemplate, len(scenarios)),
	}
	for i := range characters {
		character := characters[i]
		c.characters[character.ID] = &character
	}
	for i := range scenarios {
		scenario := scenarios[i]
		c.scenarios[scenario.Type] = &scenario
	}
	return c
}

// NewSeeded builds the catalog with the built-in characters and scenario
// templates.
func NewSeeded() outbound.CatalogPort {
	return New(SeedCharacters(), SeedScenarios())
}

func (c *catalog) GetCharacter(id string) (*domain.Character, error) {
	character, ok := c.characters[id]
	if !ok {
		return nil, domain.ErrCharacterNotFound
	}
	return character, nil
}

func (c *catalog) ListCharacters() []*domain.Character {
	characters := make([]*domain.Character, 0, len(c.characters))
	for _, character := range c.characters {
		characters = append(characters, character)
	}
	sort.Slice(characters, func(i, j int) bool {
		return characters[i].Name < characters[j].Name
	})
	return characters
}

func (c *catalog) GetScenario(scenarioType string) (*domain.ScenarioTemplate, error) {
	scenario, ok := c.scenarios[scenarioType]
	if !ok {
		return nil, domain.ErrScenarioNotFound
	}
	return scenario, nil
}

func (c *catalog) ListScenarios() []*domain.ScenarioTemplate {
	scenarios := make([]*domain.ScenarioTemplate, 0, len(c.scenarios))
	for _, scenario := range c.scenarios {
		scenarios = append(scenarios, scenario)
	}
	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Name < scenarios[j].Name
	})
	return scenarios
}
