package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/channel_utils"
	"storyspark-api/config"
	"storyspark-api/domain"
)

var errSceneDegraded = errors.New("scene direction degraded")

type clipPipelineOrchestrator struct {
	logger       outbound.LoggerPort
	store        outbound.ClipStorePort
	catalog      outbound.CatalogPort
	children     outbound.ChildRegistryPort
	scriptWriter inbound.ScriptWriterPort
	safety       inbound.SafetyReviewerPort
	scene        inbound.SceneDirectorPort
	voice        inbound.VoiceMapperPort
	speech       outbound.SpeechProviderPort
	audioStore   outbound.AudioStorePort
	progress     outbound.ProgressSinkPort
	workerPool   outbound.TaskDispatcher
	cfg          *config.PipelineConfig
}

func NewClipPipelineOrchestrator(logger outbound.LoggerPort, store outbound.ClipStorePort,
	catalog outbound.CatalogPort, children outbound.ChildRegistryPort,
	scriptWriter inbound.ScriptWriterPort, safety inbound.SafetyReviewerPort,
	scene inbound.SceneDirectorPort, voice inbound.VoiceMapperPort,
	speech outbound.SpeechProviderPort, audioStore outbound.AudioStorePort,
	progress outbound.ProgressSinkPort, workerPool outbound.TaskDispatcher,
	cfg *config.PipelineConfig) inbound.ClipPipelinePort {
	return &clipPipelineOrchestrator{
		logger:       logger,
		store:        store,
		catalog:      catalog,
		children:     children,
		scriptWriter: scriptWriter,
		safety:       safety,
		scene:        scene,
		voice:        voice,
		speech:       speech,
		audioStore:   audioStore,
		progress:     progress,
		workerPool:   workerPool,
		cfg:          cfg,
	}
}

// Run drives one clip through the full state machine. It is the only writer
// of the clip's state; every accepted transition is persisted and published
// before the next stage starts.
func (o *clipPipelineOrchestrator) Run(ctx context.Context, clipID string) error {
	start := time.Now()

	clip, err := o.store.Load(ctx, clipID)
	if err != nil {
		o.logger.ErrorWithFields(err, "Failed to load clip for pipeline run", map[string]interface{}{
			"clip_id": clipID,
		})
		return err
	}
	if clip.Status != domain.ClipPending {
		return fmt.Errorf("clip %s is %s, refusing to start a second run", clipID, clip.Status)
	}

	character, err := o.catalog.GetCharacter(clip.CharacterID)
	if err != nil {
		return o.fail(ctx, clip, "request_error", err)
	}
	scenario, err := o.catalog.GetScenario(clip.ScenarioType)
	if err != nil {
		return o.fail(ctx, clip, "request_error", err)
	}
	child, err := o.children.Get(ctx, clip.ChildID)
	if err != nil {
		return o.fail(ctx, clip, "request_error", err)
	}

	ageRange := o.cfg.DefaultAgeRange
	if child.Age > 0 {
		ageRange = domain.AgeRange{Min: child.Age, Max: child.Age}
	}

	safetyResult, err := o.runRevisionLoop(ctx, clip, character, scenario, child, ageRange)
	if err != nil || safetyResult == nil {
		// Terminal status already recorded (failed or safety_failed).
		return err
	}

	voiceParams, err := o.runMediaStages(ctx, clip, character, scenario)
	if err != nil {
		return o.fail(ctx, clip, reasonFor(err), err)
	}
	clip.VoiceParameters = voiceParams

	if ctx.Err() != nil {
		return o.fail(ctx, clip, "cancelled", ctx.Err())
	}

	if err := o.advance(ctx, clip, domain.ClipSynthesizing, "synthesis", "synthesizing audio", 0.7); err != nil {
		return err
	}

	var audio *outbound.SynthesizedAudio
	err = retryTransient(ctx, o.cfg.RetryAttempts, o.cfg.RetryBaseDelay, o.cfg.ProviderTimeout, func(c context.Context) error {
		result, synthErr := o.speech.Synthesize(c, *voiceParams)
		if synthErr != nil {
			return synthErr
		}
		audio = result
		return nil
	})
	if err != nil {
		return o.fail(ctx, clip, reasonFor(err), err)
	}

	audioRef, err := o.audioStore.Put(ctx, clip.ID, audio.Audio)
	if err != nil {
		return o.fail(ctx, clip, "storage_error", err)
	}

	clip.AudioReference = audioRef
	clip.DurationSeconds = audio.DurationSeconds
	clip.GenerationTimeMs = time.Since(start).Milliseconds()

	if err := o.advance(ctx, clip, domain.ClipReady, "pipeline", "clip ready", 1.0); err != nil {
		return err
	}

	o.logger.InfoWithFields("Clip generated", map[string]interface{}{
		"clip_id":     clip.ID,
		"revisions":   clip.RevisionCount,
		"duration_s":  clip.DurationSeconds,
		"pipeline_ms": clip.GenerationTimeMs,
	})
	return nil
}

// runRevisionLoop owns the bounded script/safety cycle. It returns the
// approving safety result, or (nil, nil) when the clip was driven to
// safety_failed, or (nil, err) on a terminal pipeline failure.
func (o *clipPipelineOrchestrator) runRevisionLoop(ctx context.Context, clip *domain.Clip,
	character *domain.Character, scenario *domain.ScenarioTemplate, child *domain.Child,
	ageRange domain.AgeRange) (*domain.SafetyResult, error) {

	var priorFeedback []domain.SafetyFinding

	for {
		if ctx.Err() != nil {
			return nil, o.fail(ctx, clip, "cancelled", ctx.Err())
		}

		detail := "drafting script"
		if clip.RevisionCount > 0 {
			detail = fmt.Sprintf("revising script after safety feedback (attempt %d)", clip.RevisionCount+1)
		}
		if err := o.advance(ctx, clip, domain.ClipGeneratingScript, "script", detail, 0.15); err != nil {
			return nil, err
		}

		var script string
		err := retryTransient(ctx, o.cfg.RetryAttempts, o.cfg.RetryBaseDelay, o.cfg.ProviderTimeout, func(c context.Context) error {
			draft, writeErr := o.scriptWriter.Write(c, inbound.WriteScriptParams{
				Character:     character,
				Scenario:      scenario,
				ChildName:     child.Name,
				ChildAge:      child.Age,
				ParentNote:    clip.ParentNote,
				PriorFeedback: priorFeedback,
			})
			if writeErr != nil {
				return writeErr
			}
			script = draft
			return nil
		})
		if err != nil {
			return nil, o.fail(ctx, clip, reasonFor(err), err)
		}
		clip.Script = script

		if err := o.advance(ctx, clip, domain.ClipSafetyReview, "safety", "reviewing script safety", 0.35); err != nil {
			return nil, err
		}

		var result *domain.SafetyResult
		err = retryTransient(ctx, o.cfg.RetryAttempts, o.cfg.RetryBaseDelay, o.cfg.ProviderTimeout, func(c context.Context) error {
			reviewed, reviewErr := o.safety.Review(c, inbound.ReviewScriptParams{
				Script:    script,
				Character: character,
				Scenario:  scenario,
				ChildName: child.Name,
				AgeRange:  ageRange,
			})
			if reviewErr != nil {
				return reviewErr
			}
			result = reviewed
			return nil
		})
		if err != nil {
			return nil, o.fail(ctx, clip, reasonFor(err), err)
		}

		clip.SafetyStatus = result.Verdict
		clip.SafetyFindings = result.Findings
		clip.SafetyFeedback = result.Feedback

		if result.Approved() {
			return result, nil
		}

		if clip.RevisionCount >= o.cfg.MaxRevisions {
			return nil, o.safetyFailed(ctx, clip)
		}
		clip.RevisionCount++
		priorFeedback = result.FailedFindings()

		o.logger.InfoWithFields("Script rejected by safety review, revising", map[string]interface{}{
			"clip_id":  clip.ID,
			"revision": clip.RevisionCount,
			"failed":   len(priorFeedback),
		})
	}
}

// runMediaStages runs scene direction and voice mapping concurrently once
// safety approval is granted. A scene failure degrades the clip (nil scene
// description); only a voice mapping failure blocks synthesis.
func (o *clipPipelineOrchestrator) runMediaStages(ctx context.Context, clip *domain.Clip,
	character *domain.Character, scenario *domain.ScenarioTemplate) (*domain.VoiceParameters, error) {

	sceneErrCh := make(chan error, 1)
	voiceErrCh := make(chan error, 1)

	var sceneDesc *domain.SceneDescription
	var voiceParams *domain.VoiceParameters

	if err := o.workerPool.Submit(func() {
		defer close(sceneErrCh)
		err := retryTransient(ctx, o.cfg.RetryAttempts, o.cfg.RetryBaseDelay, o.cfg.ProviderTimeout, func(c context.Context) error {
			directed, sceneErr := o.scene.Direct(c, inbound.DirectSceneParams{
				Script:    clip.Script,
				Character: character,
				Scenario:  scenario,
			})
			if sceneErr != nil {
				return sceneErr
			}
			sceneDesc = directed
			return nil
		})
		if err != nil {
			sceneErrCh <- fmt.Errorf("%w: %v", errSceneDegraded, err)
		}
	}); err != nil {
		close(sceneErrCh)
		o.logger.Error(err, "Failed to dispatch scene direction")
	}

	if err := o.workerPool.Submit(func() {
		defer close(voiceErrCh)
		mapped, voiceErr := o.voice.Map(clip.Script, character.VoiceProfile)
		if voiceErr != nil {
			voiceErrCh <- voiceErr
			return
		}
		voiceParams = mapped
	}); err != nil {
		close(voiceErrCh)
		return nil, err
	}

	merged, err := channel_utils.MergeChannels(o.workerPool, sceneErrCh, voiceErrCh)
	if err != nil {
		return nil, err
	}

	var voiceErr error
	for stageErr := range merged {
		if errors.Is(stageErr, errSceneDegraded) {
			o.logger.WarnWithFields("Scene direction failed, continuing without it", map[string]interface{}{
				"clip_id": clip.ID,
				"error":   stageErr.Error(),
			})
			o.progress.Publish(domain.ProgressEvent{
				ClipID: clip.ID,
				Stage:  "scene",
				Status: clip.Status,
				Detail: "scene direction unavailable, continuing without it",
				At:     time.Now(),
			})
			continue
		}
		voiceErr = stageErr
	}
	if voiceErr != nil {
		return nil, voiceErr
	}

	clip.SceneDescription = sceneDesc
	return voiceParams, nil
}

// advance validates and applies a transition, persists the clip and
// publishes the matching progress event.
func (o *clipPipelineOrchestrator) advance(ctx context.Context, clip *domain.Clip,
	next domain.ClipStatus, stage, detail string, progress float64) error {
	prev := clip.Status
	if err := clip.Transition(next, time.Now()); err != nil {
		return err
	}
	if err := o.store.Save(ctx, clip); err != nil {
		// Roll the in-memory status back so the failed edge is valid, then
		// terminate the run; fail publishes the terminal event even when
		// the store stays broken.
		clip.Status = prev
		return o.fail(ctx, clip, "storage_error", fmt.Errorf("failed to persist %s transition: %w", next, err))
	}
	o.progress.Publish(domain.ProgressEvent{
		ClipID:   clip.ID,
		Stage:    stage,
		Status:   next,
		Detail:   detail,
		Progress: progress,
		Terminal: next.IsRunTerminal(),
		At:       time.Now(),
	})
	return nil
}

// fail drives the clip to the failed terminal status with a machine-readable
// reason and the last diagnostic message. Returns cause for the caller.
func (o *clipPipelineOrchestrator) fail(ctx context.Context, clip *domain.Clip, reason string, cause error) error {
	clip.FailureReason = reason
	if cause != nil {
		clip.FailureDetail = cause.Error()
	}
	if err := clip.Transition(domain.ClipFailed, time.Now()); err != nil {
		o.logger.Error(err, "Could not mark clip failed")
		return cause
	}
	if err := o.store.Save(context.WithoutCancel(ctx), clip); err != nil {
		o.logger.ErrorWithFields(err, "Failed to persist failed status", map[string]interface{}{
			"clip_id": clip.ID,
		})
	}
	o.progress.Publish(domain.ProgressEvent{
		ClipID:   clip.ID,
		Stage:    "pipeline",
		Status:   domain.ClipFailed,
		Detail:   fmt.Sprintf("%s: %s", reason, clip.FailureDetail),
		Terminal: true,
		At:       time.Now(),
	})
	return cause
}

// safetyFailed records revision-limit exhaustion, keeping the final
// attempt's findings on the clip so the caller can explain the outcome.
func (o *clipPipelineOrchestrator) safetyFailed(ctx context.Context, clip *domain.Clip) error {
	clip.FailureReason = "revision_limit_exhausted"
	clip.FailureDetail = fmt.Sprintf("script rejected after %d revisions", clip.RevisionCount)
	if err := clip.Transition(domain.ClipSafetyFailed, time.Now()); err != nil {
		return err
	}
	if err := o.store.Save(context.WithoutCancel(ctx), clip); err != nil {
		o.logger.ErrorWithFields(err, "Failed to persist safety_failed status", map[string]interface{}{
			"clip_id": clip.ID,
		})
	}
	o.progress.Publish(domain.ProgressEvent{
		ClipID:   clip.ID,
		Stage:    "safety",
		Status:   domain.ClipSafetyFailed,
		Detail:   clip.FailureDetail,
		Terminal: true,
		At:       time.Now(),
	})
	return nil
}

func reasonFor(err error) string {
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	if domain.IsTransient(err) {
		return "provider_transient_exhausted"
	}
	return "provider_permanent"
}
