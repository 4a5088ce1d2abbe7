package outbound

import (
	"context"

	"storyspark-api/domain"
)

type CreateChildParams struct {
	Name      string
	Age       int
	Interests []string
}

type ChildRegistryPort interface {
	Get(ctx context.Context, childID string) (*domain.Child, error)
	List(ctx context.Context) ([]*domain.Child, error)
	Create(ctx context.Context, params CreateChildParams) (*domain.Child, error)
}
