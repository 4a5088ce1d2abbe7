package domain

import (
	"errors"
	"testing"
	"time"
)

func TestClipStatus_Transitions(t *testing.T) {
	cases := []struct {
		from    ClipStatus
		to      ClipStatus
		allowed bool
	}{
		{ClipPending, ClipGeneratingScript, true},
		{ClipPending, ClipFailed, true},
		{ClipPending, ClipSynthesizing, false},
		{ClipPending, ClipReady, false},
		{ClipGeneratingScript, ClipSafetyReview, true},
		{ClipGeneratingScript, ClipSynthesizing, false},
		{ClipSafetyReview, ClipGeneratingScript, true},
		{ClipSafetyReview, ClipSynthesizing, true},
		{ClipSafetyReview, ClipSafetyFailed, true},
		{ClipSafetyReview, ClipReady, false},
		{ClipSynthesizing, ClipReady, true},
		{ClipSynthesizing, ClipGeneratingScript, false},
		{ClipReady, ClipApproved, true},
		{ClipReady, ClipRejected, true},
		{ClipReady, ClipFailed, false},
		{ClipApproved, ClipRejected, false},
		{ClipRejected, ClipApproved, false},
		{ClipFailed, ClipGeneratingScript, false},
		{ClipSafetyFailed, ClipGeneratingScript, false},
	}

	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected allowed=%v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestClipStatus_Terminal(t *testing.T) {
	for _, status := range []ClipStatus{ClipReady, ClipApproved, ClipRejected, ClipFailed, ClipSafetyFailed} {
		if !status.IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range []ClipStatus{ClipPending, ClipGeneratingScript, ClipSafetyReview, ClipSynthesizing} {
		if status.IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}

	// Ready ends the pipeline run but the clip itself still accepts the
	// parent's verdict.
	if !ClipReady.IsRunTerminal() {
		t.Error("ready should end the run")
	}
	if ClipApproved.IsRunTerminal() || ClipRejected.IsRunTerminal() {
		t.Error("approval outcomes are not run events")
	}
}

func TestClip_Transition(t *testing.T) {
	now := time.Now()
	clip := NewClip("clip-1", ClipRequest{ChildID: "child-1", CharacterID: "frog", ScenarioType: "bedtime"}, now)

	if clip.Status != ClipPending {
		t.Fatalf("New clip must be pending, got %s", clip.Status)
	}

	later := now.Add(time.Second)
	if err := clip.Transition(ClipGeneratingScript, later); err != nil {
		t.Fatal("Valid transition failed:", err)
	}
	if clip.Status != ClipGeneratingScript || !clip.UpdatedAt.Equal(later) {
		t.Errorf("Transition did not apply: status=%s updated=%v", clip.Status, clip.UpdatedAt)
	}

	err := clip.Transition(ClipReady, later)
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("Expected a state error, got %v", err)
	}
	if stateErr.From != ClipGeneratingScript || stateErr.To != ClipReady {
		t.Errorf("State error does not describe the edge: %v", stateErr)
	}
	if clip.Status != ClipGeneratingScript {
		t.Errorf("Refused transition must not mutate the clip, got %s", clip.Status)
	}
}

func TestSafetyResult_FailedFindings(t *testing.T) {
	result := SafetyResult{
		Verdict: SafetyRejected,
		Findings: []SafetyFinding{
			{RuleID: "age_appropriate_language", Pass: true},
			{RuleID: "emotional_safety", Pass: false, Note: "too scary"},
			{RuleID: "positive_framing", Pass: false, Note: "ends on a warning"},
		},
	}
	if result.Approved() {
		t.Error("Rejected verdict must not report approved")
	}
	failed := result.FailedFindings()
	if len(failed) != 2 {
		t.Fatalf("Expected 2 failed findings, got %d", len(failed))
	}
	if failed[0].RuleID != "emotional_safety" || failed[1].RuleID != "positive_framing" {
		t.Errorf("Failed findings out of order: %+v", failed)
	}
}

func TestProviderError_Classification(t *testing.T) {
	cause := errors.New("rate limited")
	transient := NewTransientError("synthesize", cause)
	if !IsTransient(transient) {
		t.Error("Transient error not classified as transient")
	}
	if !errors.Is(transient, cause) {
		t.Error("ProviderError must unwrap to its cause")
	}
	if IsTransient(NewPermanentError("synthesize", cause)) {
		t.Error("Permanent error classified as transient")
	}
	if IsTransient(errors.New("plain")) {
		t.Error("Plain error classified as transient")
	}
}
