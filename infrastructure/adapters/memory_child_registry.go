package adapters

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

type memoryChildRegistry struct {
	mu       sync.RWMutex
	children map[string]domain.Child
}

func NewMemoryChildRegistry(seed ...domain.Child) outbound.ChildRegistryPort {
	children := make(map[string]domain.Child, len(seed))
	for _, child := range seed {
		children[child.ID] = child
	}
	return &memoryChildRegistry{
		children: children,
	}
}

func (r *memoryChildRegistry) Get(_ context.Context, childID string) (*domain.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	child, ok := r.children[childID]
	if !ok {
		return nil, domain.ErrChildNotFound
	}
	copied := child
	return &copied, nil
}

func (r *memoryChildRegistry) List(_ context.Context) ([]*domain.Child, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	children := make([]*domain.Child, 0, len(r.children))
	for _, child := range r.children {
		copied := child
		children = append(children, &copied)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name < children[j].Name
	})
	return children, nil
}

func (r *memoryChildRegistry) Create(_ context.Context, params outbound.CreateChildParams) (*domain.Child, error) {
	child := domain.Child{
		ID:        uuid.NewString(),
		Name:      params.Name,
		Age:       params.Age,
		Interests: params.Interests,
	}
	r.mu.Lock()
	r.children[child.ID] = child
	r.mu.Unlock()
	return &child, nil
}
