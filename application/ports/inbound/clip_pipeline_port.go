package inbound

import "context"

// ClipPipelinePort runs the full generation pipeline for one clip. Run
// always leaves the clip in a terminal run status; the returned error is
// diagnostic only.
type ClipPipelinePort interface {
	Run(ctx context.Context, clipID string) error
}
