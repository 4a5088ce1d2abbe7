package domain

import (
	"errors"
	"fmt"
)

var (
	ErrClipNotFound      = errors.New("clip not found")
	ErrCharacterNotFound = errors.New("character not found")
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrChildNotFound     = errors.New("child not found")
)

type FailureKind string

const (
	FailureTransient FailureKind = "transient"
	FailurePermanent FailureKind = "permanent"
)

// ProviderError classifies a capability-provider failure. Transient failures
// (timeouts, rate limits, transport) are retried by the orchestrator within
// its backoff budget; permanent ones surface immediately.
type ProviderError struct {
	Kind FailureKind
	Op   string
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s provider failure: %v", e.Op, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewTransientError(op string, err error) *ProviderError {
	return &ProviderError{Kind: FailureTransient, Op: op, Err: err}
}

func NewPermanentError(op string, err error) *ProviderError {
	return &ProviderError{Kind: FailurePermanent, Op: op, Err: err}
}

func IsTransient(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Kind == FailureTransient
}

// StateError reports a status transition the clip machine does not allow.
type StateError struct {
	ClipID string
	From   ClipStatus
	To     ClipStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("clip %s: invalid transition %s -> %s", e.ClipID, e.From, e.To)
}
