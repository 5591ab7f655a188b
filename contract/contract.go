//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"taskroom/domain"
	"taskroom/domain/event"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

type IRegistry interface {
	Subscribe(sessionID uuid.UUID, sink EventSink)
	Unsubscribe(sessionID uuid.UUID)
	Sessions() map[uuid.UUID]EventSink
}

type IOrchestrator interface {
	Dispatch(cmd domain.Command)
	RegisterParticipant(sessionID uuid.UUID, sink EventSink)
	UnregisterParticipant(sessionID uuid.UUID)
	Start(ctx context.Context) error
	Stop()
}
