package workers

import (
	"context"
	"log/slog"
	"sync"
	"taskroom/contract"
	"taskroom/domain/event"
	"time"
)

var _ contract.Worker = (*EventFanout)(nil)

// EventFanout broadcasts snapshot events to the registered sessions.
//
// Delivery is best-effort and fire-and-forget: no acknowledgment is
// awaited and there are no retries. Each sink gets its own timeout
// context so one stalled connection cannot hold back the others, but the
// fanout waits for the whole batch before taking the next event, which
// keeps per-session snapshot ordering intact.
type EventFanout struct {
	log         *slog.Logger
	registry    contract.IRegistry
	events      chan event.DomainEvent
	telemetry   chan event.DomainEvent
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, registry contract.IRegistry,
	events, telemetry chan event.DomainEvent, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		registry:    registry,
		events:      events,
		telemetry:   telemetry,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return ctx.Err()
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Event channel closed")
				return nil
			}
			w.Fanout(ctx, evt)
			select {
			case w.telemetry <- evt:
			default:
				w.log.Debug("Telemetry event lost")
			}
		}
	}
}

// Fanout delivers one event to every session its audience selects.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	sessions := w.registry.Sessions()

	var wg sync.WaitGroup
	for sessionID, sink := range sessions {
		if !delivers(evt.Audience(), sessionID == evt.Origin()) {
			continue
		}

		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, evt); err != nil {
				w.log.Debug("Sink delivery failed", "event", evt.Name(), "error", err)
			}
		}(sink)
	}
	wg.Wait()
}

func delivers(audience event.Audience, isOrigin bool) bool {
	switch audience {
	case event.AudienceSender:
		return isOrigin
	case event.AudienceOthers:
		return !isOrigin
	default:
		return true
	}
}
