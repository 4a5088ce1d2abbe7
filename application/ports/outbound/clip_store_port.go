package outbound

import (
	"context"

	"storyspark-api/domain"
)

// ClipStorePort is the per-clip keyed store. Only the pipeline run that owns
// a clip writes to it, so no cross-clip locking is required of
// implementations.
type ClipStorePort interface {
	Save(ctx context.Context, clip *domain.Clip) error
	Load(ctx context.Context, clipID string) (*domain.Clip, error)
	List(ctx context.Context, childID string) ([]*domain.Clip, error)
	// ListNonTerminal backs the startup recovery sweep of clips orphaned by
	// a crashed run.
	ListNonTerminal(ctx context.Context) ([]*domain.Clip, error)
}
