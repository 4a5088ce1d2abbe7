package services

import (
	"context"
	"sync"

	"storyspark-api/application/ports/inbound"
	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

type stubTextProvider struct {
	fn func(ctx context.Context, req outbound.GenerateTextRequest) (string, error)
}

func (s *stubTextProvider) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	return s.fn(ctx, req)
}

type stubScriptWriter struct {
	mu    sync.Mutex
	calls []inbound.WriteScriptParams
	fn    func(params inbound.WriteScriptParams) (string, error)
}

func (s *stubScriptWriter) Write(_ context.Context, params inbound.WriteScriptParams) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, params)
	s.mu.Unlock()
	return s.fn(params)
}

func (s *stubScriptWriter) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type stubSafetyReviewer struct {
	fn func(params inbound.ReviewScriptParams) (*domain.SafetyResult, error)
}

func (s *stubSafetyReviewer) Review(_ context.Context, params inbound.ReviewScriptParams) (*domain.SafetyResult, error) {
	return s.fn(params)
}

type stubSceneDirector struct {
	fn func(params inbound.DirectSceneParams) (*domain.SceneDescription, error)
}

func (s *stubSceneDirector) Direct(_ context.Context, params inbound.DirectSceneParams) (*domain.SceneDescription, error) {
	return s.fn(params)
}

type stubSpeechProvider struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, params domain.VoiceParameters) (*outbound.SynthesizedAudio, error)
}

func (s *stubSpeechProvider) Synthesize(_ context.Context, params domain.VoiceParameters) (*outbound.SynthesizedAudio, error) {
	s.mu.Lock()
	s.calls++
	call := s.calls
	s.mu.Unlock()
	return s.fn(call, params)
}

type stubPipeline struct {
	fn func(ctx context.Context, clipID string) error
}

func (s *stubPipeline) Run(ctx context.Context, clipID string) error {
	return s.fn(ctx, clipID)
}

func allPassResult() *domain.SafetyResult {
	findings := []domain.SafetyFinding{
		{RuleID: "age_appropriate_language", Pass: true, Note: "ok"},
		{RuleID: "emotional_safety", Pass: true, Note: "ok"},
		{RuleID: "no_conditional_love", Pass: true, Note: "ok"},
		{RuleID: "character_fidelity", Pass: true, Note: "ok"},
		{RuleID: "positive_framing", Pass: true, Note: "ok"},
		{RuleID: "no_commercial_content", Pass: true, Note: "ok"},
		{RuleID: "personal_data", Pass: true, Note: "ok"},
		{RuleID: "inclusive_language", Pass: true, Note: "ok"},
	}
	return &domain.SafetyResult{Verdict: domain.SafetyApproved, Findings: findings}
}

func fearRejection() *domain.SafetyResult {
	result := allPassResult()
	result.Verdict = domain.SafetyRejected
	for i := range result.Findings {
		if result.Findings[i].RuleID == "emotional_safety" {
			result.Findings[i].Pass = false
			result.Findings[i].Note = "contains fear-inducing imagery"
		}
	}
	result.Feedback = "remove the scary parts"
	return result
}
