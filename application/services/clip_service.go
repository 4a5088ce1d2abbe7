package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

type clipService struct {
	logger     outbound.LoggerPort
	store      outbound.ClipStorePort
	catalog    outbound.CatalogPort
	children   outbound.ChildRegistryPort
	pipeline   inbound.ClipPipelinePort
	hub        ProgressHub
	workerPool outbound.TaskDispatcher
}

func NewClipService(logger outbound.LoggerPort, store outbound.ClipStorePort,
	catalog outbound.CatalogPort, children outbound.ChildRegistryPort,
	pipeline inbound.ClipPipelinePort, hub ProgressHub,
	workerPool outbound.TaskDispatcher) inbound.ClipServicePort {
	return &clipService{
		logger:     logger,
		store:      store,
		catalog:    catalog,
		children:   children,
		pipeline:   pipeline,
		hub:        hub,
		workerPool: workerPool,
	}
}

// Submit validates the request, persists a pending clip and dispatches the
// pipeline run. Unknown references are rejected before any clip state
// exists.
func (s *clipService) Submit(ctx context.Context, req domain.ClipRequest) (*domain.Clip, error) {
	if _, err := s.catalog.GetCharacter(req.CharacterID); err != nil {
		return nil, err
	}
	if _, err := s.catalog.GetScenario(req.ScenarioType); err != nil {
		return nil, err
	}
	if _, err := s.children.Get(ctx, req.ChildID); err != nil {
		return nil, err
	}

	clip := domain.NewClip(uuid.NewString(), req, time.Now())
	if err := s.store.Save(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to persist new clip: %w", err)
	}

	clipID := clip.ID
	if err := s.workerPool.Submit(func() {
		// The run owns its own lifetime; it must not die with the HTTP
		// request that submitted it.
		if runErr := s.pipeline.Run(context.Background(), clipID); runErr != nil {
			s.logger.ErrorWithFields(runErr, "Pipeline run ended with error", map[string]interface{}{
				"clip_id": clipID,
			})
		}
	}); err != nil {
		s.logger.Error(err, "Failed to dispatch pipeline run")
		return nil, err
	}

	return clip, nil
}

func (s *clipService) Get(ctx context.Context, clipID string) (*domain.Clip, error) {
	return s.store.Load(ctx, clipID)
}

func (s *clipService) List(ctx context.Context, childID string) ([]*domain.Clip, error) {
	return s.store.List(ctx, childID)
}

// Approve records the parent's verdict on a ready clip. Any other starting
// status is a state error and leaves the clip untouched.
func (s *clipService) Approve(ctx context.Context, clipID string, approved bool, reviewerNote string) (*domain.Clip, error) {
	clip, err := s.store.Load(ctx, clipID)
	if err != nil {
		return nil, err
	}

	next := domain.ClipApproved
	if !approved {
		next = domain.ClipRejected
	}
	if err := clip.Transition(next, time.Now()); err != nil {
		return nil, err
	}
	clip.ReviewerNote = reviewerNote

	if err := s.store.Save(ctx, clip); err != nil {
		return nil, fmt.Errorf("failed to persist approval: %w", err)
	}
	return clip, nil
}

func (s *clipService) SubscribeProgress(ctx context.Context, clipID string) (<-chan domain.ProgressEvent, func(), error) {
	if _, err := s.store.Load(ctx, clipID); err != nil {
		return nil, nil, err
	}
	events, cancel := s.hub.Subscribe(ctx, clipID)
	return events, cancel, nil
}

// RecoverInterrupted sweeps clips a previous process left in a non-terminal
// status. They have no active run anymore, so they are marked failed rather
// than left hanging forever.
func (s *clipService) RecoverInterrupted(ctx context.Context) (int, error) {
	orphaned, err := s.store.ListNonTerminal(ctx)
	if err != nil {
		return 0, err
	}

	swept := 0
	for _, clip := range orphaned {
		clip.Status = domain.ClipFailed
		clip.FailureReason = "interrupted"
		clip.FailureDetail = "run interrupted by process restart"
		clip.UpdatedAt = time.Now()
		if err := s.store.Save(ctx, clip); err != nil {
			s.logger.ErrorWithFields(err, "Failed to sweep interrupted clip", map[string]interface{}{
				"clip_id": clip.ID,
			})
			continue
		}
		swept++
	}

	if swept > 0 {
		s.logger.InfoWithFields("Swept interrupted clips", map[string]interface{}{
			"count": swept,
		})
	}
	return swept, nil
}
