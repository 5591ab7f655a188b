package runtime

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"taskroom/contract"
	"taskroom/domain"
	"taskroom/domain/event"
	"taskroom/moderation"
	"taskroom/observability"
	"taskroom/runtime/workers"
	"time"

	"github.com/google/uuid"
)

//go:embed censored/*
var censoredFolder embed.FS

var _ contract.IOrchestrator = (*Orchestrator)(nil)

// Orchestrator wires the event router: a single buffered inbound queue,
// the moderation stage, the one-and-only room worker, and the snapshot
// fanout. Multiple connections dispatch concurrently but every mutation
// funnels through the same queue, so the store is accessed from exactly
// one logical thread of control and needs no locking of its own.
type Orchestrator struct {
	mu              sync.Mutex
	log             *slog.Logger
	room            *domain.Room
	supervisor      contract.ISupervisor
	registry        contract.IRegistry
	monitor         *observability.Monitor
	inbound         chan domain.Command
	moderated       chan domain.Command
	domainEvents    chan event.DomainEvent
	telemetryEvents chan event.DomainEvent
	sinkTimeout     time.Duration
	metricInterval  time.Duration
	charReplacement rune
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IRegistry, room *domain.Room, bufferSize int,
	sinkTimeout, metricInterval time.Duration, charReplacement rune) *Orchestrator {
	return &Orchestrator{
		log:             log,
		room:            room,
		supervisor:      supervisor,
		registry:        registry,
		monitor:         observability.NewMonitor(),
		inbound:         make(chan domain.Command, bufferSize),
		moderated:       make(chan domain.Command, bufferSize),
		domainEvents:    make(chan event.DomainEvent, bufferSize),
		telemetryEvents: make(chan event.DomainEvent, bufferSize),
		sinkTimeout:     sinkTimeout,
		metricInterval:  metricInterval,
		charReplacement: charReplacement,
	}
}

// Dispatch enqueues one inbound command. Never blocks the caller: when
// the queue is saturated the command is dropped, clients resend on their
// own timeline.
func (o *Orchestrator) Dispatch(cmd domain.Command) {
	select {
	case o.inbound <- cmd:
	default:
		o.log.Warn("Command queue full, dropping command")
	}
}

// RegisterParticipant makes a session reachable by broadcasts. Done at
// connection time, before the enter command is dispatched, so the
// back-fill always finds its sink.
func (o *Orchestrator) RegisterParticipant(sessionID uuid.UUID, sink contract.EventSink) {
	o.registry.Subscribe(sessionID, sink)
}

func (o *Orchestrator) UnregisterParticipant(sessionID uuid.UUID) {
	o.registry.Unsubscribe(sessionID)
}

// Start prepares the workers (I/O and automaton build happen before the
// lock) and launches the supervisor in the background.
func (o *Orchestrator) Start(ctx context.Context) error {
	moderationWorker, err := o.prepareModeration("censored", o.charReplacement)
	if err != nil {
		return err
	}

	roomWorker := workers.NewRoomWorker(o.room, o.moderated, o.domainEvents, o.log)
	fanoutWorker := workers.NewEventFanout(o.log, o.registry, o.domainEvents, o.telemetryEvents, o.sinkTimeout)
	telemetryWorker := workers.NewTelemetryWorker(o.log, o.monitor, o.metricInterval, o.telemetryEvents)

	o.mu.Lock()
	o.supervisor.Add(moderationWorker, roomWorker, fanoutWorker, telemetryWorker)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	go o.supervisor.Run(ctx)
	return nil
}

// prepareModeration loads the censored word lists and builds the
// Aho-Corasick automaton.
func (o *Orchestrator) prepareModeration(path string, charReplacement rune) (contract.Worker, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll(path)
	if err != nil {
		return nil, err
	}

	o.log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	o.log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	moderator, err := moderation.NewModerator(data.Words, charReplacement, o.log)
	if err != nil {
		return nil, err
	}

	return workers.NewModerationWorker(moderator, o.inbound, o.moderated, o.log), nil
}

// Stop initiates a graceful shutdown by canceling the supervised context;
// workers drain and exit on their own.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
