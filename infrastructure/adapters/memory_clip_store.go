package adapters

import (
	"context"
	"sort"
	"sync"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

// memoryClipStore backs tests and mock-provider mode. Clips are deep-copied
// on the way in and out so callers never share mutable state with the store,
// slice backing arrays included.
type memoryClipStore struct {
	mu    sync.RWMutex
	clips map[string]domain.Clip
}

func NewMemoryClipStore() outbound.ClipStorePort {
	return &memoryClipStore{
		clips: make(map[string]domain.Clip),
	}
}

func cloneClip(clip domain.Clip) domain.Clip {
	if clip.SafetyFindings != nil {
		clip.SafetyFindings = append([]domain.SafetyFinding(nil), clip.SafetyFindings...)
	}
	if clip.SceneDescription != nil {
		scene := *clip.SceneDescription
		if scene.AmbientSounds != nil {
			scene.AmbientSounds = append([]string(nil), scene.AmbientSounds...)
		}
		clip.SceneDescription = &scene
	}
	if clip.VoiceParameters != nil {
		voice := *clip.VoiceParameters
		if voice.Segments != nil {
			voice.Segments = append([]domain.SpeechSegment(nil), voice.Segments...)
		}
		clip.VoiceParameters = &voice
	}
	return clip
}

func (s *memoryClipStore) Save(_ context.Context, clip *domain.Clip) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clips[clip.ID] = cloneClip(*clip)
	return nil
}

func (s *memoryClipStore) Load(_ context.Context, clipID string) (*domain.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clip, ok := s.clips[clipID]
	if !ok {
		return nil, domain.ErrClipNotFound
	}
	copied := cloneClip(clip)
	return &copied, nil
}

func (s *memoryClipStore) List(_ context.Context, childID string) ([]*domain.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var clips []*domain.Clip
	for _, clip := range s.clips {
		if childID != "" && clip.ChildID != childID {
			continue
		}
		copied := cloneClip(clip)
		clips = append(clips, &copied)
	}
	sort.Slice(clips, func(i, j int) bool {
		return clips[i].CreatedAt.After(clips[j].CreatedAt)
	})
	return clips, nil
}

func (s *memoryClipStore) ListNonTerminal(_ context.Context) ([]*domain.Clip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var clips []*domain.Clip
	for _, clip := range s.clips {
		if clip.Status.IsTerminal() {
			continue
		}
		copied := cloneClip(clip)
		clips = append(clips, &copied)
	}
	return clips, nil
}
