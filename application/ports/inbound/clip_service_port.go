package inbound

import (
	"context"

	"storyspark-api/domain"
)

// ClipServicePort is the boundary the HTTP surface talks to. Submit accepts
// immediately and runs the pipeline asynchronously.
type ClipServicePort interface {
	Submit(ctx context.Context, req domain.ClipRequest) (*domain.Clip, error)
	Get(ctx context.Context, clipID string) (*domain.Clip, error)
	List(ctx context.Context, childID string) ([]*domain.Clip, error)
	Approve(ctx context.Context, clipID string, approved bool, reviewerNote string) (*domain.Clip, error)
	// SubscribeProgress replays past events and streams new ones until the
	// clip's run reaches a terminal status or cancel is called.
	SubscribeProgress(ctx context.Context, clipID string) (<-chan domain.ProgressEvent, func(), error)
	// RecoverInterrupted marks non-terminal clips without an active run as
	// failed. Called once at startup; returns the number of clips swept.
	RecoverInterrupted(ctx context.Context) (int, error)
}
