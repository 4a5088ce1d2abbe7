package services

import (
	"context"
	"testing"
	"time"

	"storyspark-api/domain"
)

func hubEvent(clipID string, status domain.ClipStatus, terminal bool) domain.ProgressEvent {
	return domain.ProgressEvent{
		ClipID:   clipID,
		Stage:    "test",
		Status:   status,
		Terminal: terminal,
		At:       time.Now(),
	}
}

func TestProgressHub_OrderedDelivery(t *testing.T) {
	hub := NewProgressHub()
	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	sequence := []domain.ClipStatus{domain.ClipGeneratingScript, domain.ClipSafetyReview, domain.ClipSynthesizing, domain.ClipReady}
	for i, status := range sequence {
		hub.Publish(hubEvent("clip-1", status, i == len(sequence)-1))
	}

	received := drainEvents(t, events)
	if len(received) != len(sequence) {
		t.Fatalf("Expected %d events, got %d", len(sequence), len(received))
	}
	for i, status := range sequence {
		if received[i].Status != status {
			t.Errorf("Event %d: expected %s, got %s", i, status, received[i].Status)
		}
	}
}

func TestProgressHub_ReplayForLateSubscriber(t *testing.T) {
	hub := NewProgressHub()

	hub.Publish(hubEvent("clip-1", domain.ClipGeneratingScript, false))
	hub.Publish(hubEvent("clip-1", domain.ClipSafetyReview, false))

	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	hub.Publish(hubEvent("clip-1", domain.ClipSynthesizing, false))
	hub.Publish(hubEvent("clip-1", domain.ClipReady, true))

	received := drainEvents(t, events)
	if len(received) != 4 {
		t.Fatalf("Expected replay plus live events (4), got %d", len(received))
	}
	if received[0].Status != domain.ClipGeneratingScript {
		t.Errorf("Replay must start from the first event, got %s", received[0].Status)
	}
}

func TestProgressHub_SubscribeAfterTerminal(t *testing.T) {
	hub := NewProgressHub()
	hub.Publish(hubEvent("clip-1", domain.ClipGeneratingScript, false))
	hub.Publish(hubEvent("clip-1", domain.ClipFailed, true))

	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	received := drainEvents(t, events)
	if len(received) != 2 {
		t.Fatalf("Expected the full replay of a finished run, got %d events", len(received))
	}
	if !received[len(received)-1].Terminal {
		t.Error("Replay must end with the terminal event")
	}
}

func TestProgressHub_IndependentSubscribers(t *testing.T) {
	hub := NewProgressHub()
	first, cancelFirst := hub.Subscribe(context.Background(), "clip-1")
	second, cancelSecond := hub.Subscribe(context.Background(), "clip-1")
	defer cancelFirst()
	defer cancelSecond()

	hub.Publish(hubEvent("clip-1", domain.ClipGeneratingScript, false))
	hub.Publish(hubEvent("clip-1", domain.ClipReady, true))

	if got := len(drainEvents(t, first)); got != 2 {
		t.Errorf("First subscriber expected 2 events, got %d", got)
	}
	if got := len(drainEvents(t, second)); got != 2 {
		t.Errorf("Second subscriber expected 2 events, got %d", got)
	}
}

func TestProgressHub_RunsAreIsolated(t *testing.T) {
	hub := NewProgressHub()
	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	hub.Publish(hubEvent("clip-2", domain.ClipGeneratingScript, false))
	hub.Publish(hubEvent("clip-1", domain.ClipReady, true))

	received := drainEvents(t, events)
	if len(received) != 1 || received[0].ClipID != "clip-1" {
		t.Errorf("Subscriber must only see its clip's events, got %+v", received)
	}
}

func TestProgressHub_CancelStopsDelivery(t *testing.T) {
	hub := NewProgressHub()
	events, cancel := hub.Subscribe(context.Background(), "clip-1")

	hub.Publish(hubEvent("clip-1", domain.ClipGeneratingScript, false))
	cancel()
	hub.Publish(hubEvent("clip-1", domain.ClipReady, true))

	received := drainEvents(t, events)
	if len(received) != 1 {
		t.Errorf("Expected delivery to stop after cancel, got %d events", len(received))
	}
	// A second cancel is a no-op, not a panic.
	cancel()
}

func TestProgressHub_PublishAfterTerminalIsDropped(t *testing.T) {
	hub := NewProgressHub()
	hub.Publish(hubEvent("clip-1", domain.ClipFailed, true))
	hub.Publish(hubEvent("clip-1", domain.ClipReady, false))

	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	received := drainEvents(t, events)
	if len(received) != 1 || received[0].Status != domain.ClipFailed {
		t.Errorf("Events after the terminal one must be dropped, got %+v", received)
	}
}

func TestProgressHub_ForgetDropsFinishedRuns(t *testing.T) {
	hub := NewProgressHub()
	hub.Publish(hubEvent("clip-1", domain.ClipReady, true))
	hub.Forget("clip-1")

	events, cancel := hub.Subscribe(context.Background(), "clip-1")
	defer cancel()

	// The log is gone; the new subscription starts an empty, live run.
	select {
	case _, ok := <-events:
		if ok {
			t.Error("Expected no replay after Forget")
		}
	default:
	}
}
