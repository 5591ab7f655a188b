package workers

import (
	"context"
	"log/slog"
	"sync"
	"taskroom/contract"
	"taskroom/domain"
	"taskroom/domain/event"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

// recordingSink collects consumed events behind a mutex so tests can
// assert on delivery from the fanout goroutines.
type recordingSink struct {
	mu     sync.Mutex
	events []event.DomainEvent
	err    error
}

func (s *recordingSink) Consume(_ context.Context, evt event.DomainEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
	return s.err
}

func (s *recordingSink) Received() []event.DomainEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]event.DomainEvent(nil), s.events...)
}

// fakeRegistry is a fixed session map, enough for driving Fanout directly.
type fakeRegistry struct {
	sessions map[uuid.UUID]contract.EventSink
}

func (r *fakeRegistry) Subscribe(id uuid.UUID, sink contract.EventSink) { r.sessions[id] = sink }
func (r *fakeRegistry) Unsubscribe(id uuid.UUID)                        { delete(r.sessions, id) }
func (r *fakeRegistry) Sessions() map[uuid.UUID]contract.EventSink {
	return r.sessions
}

func TestEventFanout_AudienceAll_ReachesEverySession(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	senderID, otherID := uuid.New(), uuid.New()
	sender, other := &recordingSink{}, &recordingSink{}
	registry := &fakeRegistry{sessions: map[uuid.UUID]contract.EventSink{
		senderID: sender,
		otherID:  other,
	}}
	fanout := NewEventFanout(log, registry, nil, nil, time.Second)

	// When a publish snapshot goes out
	evt := event.MessagesUpdated{SessionID: senderID}
	fanout.Fanout(context.Background(), evt)

	// Then both the sender and the other session received it
	req.Len(sender.Received(), 1)
	req.Len(other.Received(), 1)
}

func TestEventFanout_AudienceSender_IsBackfillOnly(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	senderID, otherID := uuid.New(), uuid.New()
	sender, other := &recordingSink{}, &recordingSink{}
	registry := &fakeRegistry{sessions: map[uuid.UUID]contract.EventSink{
		senderID: sender,
		otherID:  other,
	}}
	fanout := NewEventFanout(log, registry, nil, nil, time.Second)

	evt := event.RoomJoined{SessionID: senderID, State: event.RoomState{
		Users: []domain.User{{ID: 1, Name: "alice"}},
	}}
	fanout.Fanout(context.Background(), evt)

	req.Len(sender.Received(), 1)
	req.Empty(other.Received())
}

func TestEventFanout_AudienceOthers_SkipsTheOrigin(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	senderID, otherID := uuid.New(), uuid.New()
	sender, other := &recordingSink{}, &recordingSink{}
	registry := &fakeRegistry{sessions: map[uuid.UUID]contract.EventSink{
		senderID: sender,
		otherID:  other,
	}}
	fanout := NewEventFanout(log, registry, nil, nil, time.Second)

	evt := event.ParticipantExited{SessionID: senderID, ParticipantName: "alice"}
	fanout.Fanout(context.Background(), evt)

	req.Empty(sender.Received())
	req.Len(other.Received(), 1)
}

func TestEventFanout_FailingSink_DoesNotBlockTheOthers(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	brokenID, healthyID := uuid.New(), uuid.New()
	broken := &recordingSink{err: context.DeadlineExceeded}
	healthy := &recordingSink{}
	registry := &fakeRegistry{sessions: map[uuid.UUID]contract.EventSink{
		brokenID:  broken,
		healthyID: healthy,
	}}
	fanout := NewEventFanout(log, registry, nil, nil, 20*time.Millisecond)

	// When delivery to one sink fails
	fanout.Fanout(context.Background(), event.MessagesUpdated{SessionID: uuid.New()})

	// Then the healthy sink still got the event, no retry for the broken one
	req.Len(healthy.Received(), 1)
	req.Len(broken.Received(), 1)
}

func TestEventFanout_Run_DrainsEventsAndTees(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	sessionID := uuid.New()
	sink := &recordingSink{}
	registry := &fakeRegistry{sessions: map[uuid.UUID]contract.EventSink{sessionID: sink}}

	events := make(chan event.DomainEvent, 1)
	telemetry := make(chan event.DomainEvent, 1)
	fanout := NewEventFanout(log, registry, events, telemetry, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = fanout.Run(ctx)
		close(done)
	}()

	events <- event.MessagesUpdated{SessionID: sessionID}

	// The sink receives the event and a copy reaches the telemetry tee
	req.Eventually(func() bool { return len(sink.Received()) == 1 },
		time.Second, 10*time.Millisecond)
	select {
	case evt := <-telemetry:
		req.Equal("publish", evt.Name())
	case <-time.After(time.Second):
		req.Fail("telemetry copy never arrived")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("fanout did not stop on context cancellation")
	}
}
