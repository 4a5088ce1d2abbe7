package adapters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"storyspark-api/application/ports/outbound"
)

type memoryAudioStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryAudioStore() outbound.AudioStorePort {
	return &memoryAudioStore{
		blobs: make(map[string][]byte),
	}
}

func (s *memoryAudioStore) Put(_ context.Context, clipID string, audio []byte) (string, error) {
	key := fmt.Sprintf("clips/%s/audio.mp3", clipID)
	s.mu.Lock()
	s.blobs[key] = audio
	s.mu.Unlock()
	return key, nil
}

func (s *memoryAudioStore) Get(_ context.Context, audioRef string) (io.ReadCloser, error) {
	s.mu.RLock()
	blob, ok := s.blobs[audioRef]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("audio %s not found", audioRef)
	}
	return io.NopCloser(bytes.NewReader(blob)), nil
}
