package outbound

import (
	"context"
	"io"
)

// AudioStorePort persists synthesized audio and hands back the reference
// recorded on the clip.
type AudioStorePort interface {
	Put(ctx context.Context, clipID string, audio []byte) (string, error)
	Get(ctx context.Context, audioRef string) (io.ReadCloser, error)
}
