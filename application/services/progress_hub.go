package services

import (
	"context"
	"sync"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/domain"
)

const subscriberBuffer = 64

// progressHub is the single-producer, multi-consumer event log behind
// SubscribeProgress. Each clip run appends events in transition order;
// subscribers get a replay of everything published so far and then live
// events until the run's terminal event.
type progressHub struct {
	mu   sync.Mutex
	runs map[string]*clipRun
}

type clipRun struct {
	events []domain.ProgressEvent
	subs   map[int]chan domain.ProgressEvent
	nextID int
	done   bool
}

type ProgressHub interface {
	outbound.ProgressSinkPort
	Subscribe(ctx context.Context, clipID string) (<-chan domain.ProgressEvent, func())
	// Forget drops a finished run's log once nobody can subscribe anymore.
	Forget(clipID string)
}

func NewProgressHub() ProgressHub {
	return &progressHub{
		runs: make(map[string]*clipRun),
	}
}

func (h *progressHub) Publish(event domain.ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	run := h.run(event.ClipID)
	if run.done {
		return
	}
	run.events = append(run.events, event)

	for id, sub := range run.subs {
		select {
		case sub <- event:
		default:
			// Subscriber stopped draining; drop it rather than stall the
			// pipeline.
			close(sub)
			delete(run.subs, id)
		}
	}

	if event.Terminal {
		run.done = true
		for id, sub := range run.subs {
			close(sub)
			delete(run.subs, id)
		}
	}
}

func (h *progressHub) Subscribe(ctx context.Context, clipID string) (<-chan domain.ProgressEvent, func()) {
	h.mu.Lock()

	run := h.run(clipID)
	ch := make(chan domain.ProgressEvent, subscriberBuffer+len(run.events))
	for _, event := range run.events {
		ch <- event
	}

	if run.done {
		close(ch)
		h.mu.Unlock()
		return ch, func() {}
	}

	id := run.nextID
	run.nextID++
	run.subs[id] = ch
	h.mu.Unlock()

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			h.mu.Lock()
			defer h.mu.Unlock()
			if sub, ok := run.subs[id]; ok {
				close(sub)
				delete(run.subs, id)
			}
		})
	}

	if ctx.Done() != nil {
		go func() {
			select {
			case <-ctx.Done():
				cancel()
			case <-stop:
			}
		}()
	}

	return ch, cancel
}

func (h *progressHub) Forget(clipID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if run, ok := h.runs[clipID]; ok && run.done {
		delete(h.runs, clipID)
	}
}

// run returns the clip's log, creating it on first touch. Callers hold the
// lock.
func (h *progressHub) run(clipID string) *clipRun {
	run, ok := h.runs[clipID]
	if !ok {
		run = &clipRun{subs: make(map[int]chan domain.ProgressEvent)}
		h.runs[clipID] = run
	}
	return run
}
