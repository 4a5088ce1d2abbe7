package domain

import "time"

type ClipStatus string

const (
	ClipPending          ClipStatus = "pending"
	ClipGeneratingScript ClipStatus = "generating_script"
	ClipSafetyReview     ClipStatus = "safety_review"
	ClipSynthesizing     ClipStatus = "synthesizing"
	ClipReady            ClipStatus = "ready"
	ClipApproved         ClipStatus = "approved"
	ClipRejected         ClipStatus = "rejected"
	ClipFailed           ClipStatus = "failed"
	ClipSafetyFailed     ClipStatus = "safety_failed"
)

// validTransitions is the full automatic state machine plus the two
// parent-driven transitions out of ready. Terminal statuses have no entry.
var validTransitions = map[ClipStatus][]ClipStatus{
	ClipPending:          {ClipGeneratingScript, ClipFailed},
	ClipGeneratingScript: {ClipSafetyReview, ClipFailed},
	ClipSafetyReview:     {ClipGeneratingScript, ClipSynthesizing, ClipSafetyFailed, ClipFailed},
	ClipSynthesizing:     {ClipReady, ClipFailed},
	ClipReady:            {ClipApproved, ClipRejected},
}

func (s ClipStatus) IsTerminal() bool {
	switch s {
	case ClipReady, ClipApproved, ClipRejected, ClipFailed, ClipSafetyFailed:
		return true
	}
	return false
}

// Terminal for the pipeline run and its progress stream: ready is final for
// the run even though approval can still move the clip afterwards.
func (s ClipStatus) IsRunTerminal() bool {
	return s == ClipReady || s == ClipFailed || s == ClipSafetyFailed
}

func (s ClipStatus) CanTransitionTo(next ClipStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type SafetyVerdict string

const (
	SafetyApproved SafetyVerdict = "approved"
	SafetyRejected SafetyVerdict = "rejected"
)

type SafetyFinding struct {
	RuleID string `json:"rule_id"`
	Pass   bool   `json:"pass"`
	Note   string `json:"note"`
}

// SafetyResult is the outcome of one safety evaluation. A single failing
// finding rejects the whole script.
type SafetyResult struct {
	Verdict  SafetyVerdict   `json:"verdict"`
	Findings []SafetyFinding `json:"findings"`
	Feedback string          `json:"feedback,omitempty"`
}

func (r SafetyResult) Approved() bool {
	return r.Verdict == SafetyApproved
}

// FailedFindings returns the findings that caused a rejection, used to build
// revision constraints for the next script attempt.
func (r SafetyResult) FailedFindings() []SafetyFinding {
	var failed []SafetyFinding
	for _, f := range r.Findings {
		if !f.Pass {
			failed = append(failed, f)
		}
	}
	return failed
}

type SceneDescription struct {
	Setting       string   `json:"setting"`
	Mood          string   `json:"mood"`
	AmbientSounds []string `json:"ambient_sounds"`
}

type Emotion string

const (
	EmotionWarmGreeting Emotion = "warm_greeting"
	EmotionEnthusiastic Emotion = "enthusiastic"
	EmotionEncouraging  Emotion = "encouraging"
	EmotionGentle       Emotion = "gentle"
)

type SpeechSegment struct {
	Text         string  `json:"text"`
	Emotion      Emotion `json:"emotion"`
	PauseAfterMs int     `json:"pause_after_ms"`
}

// VoiceParameters is the complete synthesis request handed to the speech
// provider: the character's tuned voice plus the segmented, emotion-tagged
// script.
type VoiceParameters struct {
	BaseVoiceID string          `json:"base_voice_id"`
	Pitch       float64         `json:"pitch"`
	Speed       float64         `json:"speed"`
	Warmth      float64         `json:"warmth"`
	Segments    []SpeechSegment `json:"segments"`
}

// ClipRequest seeds a new Clip; it is never persisted on its own.
type ClipRequest struct {
	ChildID      string
	CharacterID  string
	ScenarioType string
	ParentNote   string
}

// Clip is the persisted unit of work for one parent request. It is mutated
// only by the pipeline orchestrator, strictly forward through the status
// machine apart from the bounded script/safety revision loop.
type Clip struct {
	ID           string     `json:"id"`
	ChildID      string     `json:"child_id"`
	CharacterID  string     `json:"character_id"`
	ScenarioType string     `json:"scenario_type"`
	ParentNote   string     `json:"parent_note,omitempty"`
	Status       ClipStatus `json:"status"`

	Script           string            `json:"script,omitempty"`
	SafetyStatus     SafetyVerdict     `json:"safety_status,omitempty"`
	SafetyFindings   []SafetyFinding   `json:"safety_findings,omitempty"`
	SafetyFeedback   string            `json:"safety_feedback,omitempty"`
	SceneDescription *SceneDescription `json:"scene_description,omitempty"`
	VoiceParameters  *VoiceParameters  `json:"voice_parameters,omitempty"`

	AudioReference  string  `json:"audio_reference,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`

	RevisionCount    int    `json:"revision_count"`
	FailureReason    string `json:"failure_reason,omitempty"`
	FailureDetail    string `json:"failure_detail,omitempty"`
	ReviewerNote     string `json:"reviewer_note,omitempty"`
	GenerationTimeMs int64  `json:"generation_time_ms,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClip(id string, req ClipRequest, now time.Time) *Clip {
	return &Clip{
		ID:           id,
		ChildID:      req.ChildID,
		CharacterID:  req.CharacterID,
		ScenarioType: req.ScenarioType,
		ParentNote:   req.ParentNote,
		Status:       ClipPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Transition moves the clip to next after validating the edge. The caller
// persists the clip afterwards; UpdatedAt is bumped here.
func (c *Clip) Transition(next ClipStatus, now time.Time) error {
	if !c.Status.CanTransitionTo(next) {
		return &StateError{ClipID: c.ID, From: c.Status, To: next}
	}
	c.Status = next
	c.UpdatedAt = now
	return nil
}
