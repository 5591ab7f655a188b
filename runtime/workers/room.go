package workers

import (
	"context"
	"log/slog"
	"taskroom/contract"
	"taskroom/domain"
	"taskroom/domain/event"
)

var _ contract.Worker = (*RoomWorker)(nil)

// RoomWorker is the serialization point of the whole server: it is the
// only goroutine allowed to touch the Room, and it drains the single
// command queue one command at a time. Every handler runs to completion
// before the next command is applied, which is what makes each mutation
// appear atomic to every broadcast.
type RoomWorker struct {
	room     *domain.Room
	commands chan domain.Command
	events   chan event.DomainEvent
	log      *slog.Logger
}

func NewRoomWorker(room *domain.Room, commands chan domain.Command,
	events chan event.DomainEvent, log *slog.Logger) *RoomWorker {
	return &RoomWorker{room: room, commands: commands, events: events, log: log}
}

func (w *RoomWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case cmd, ok := <-w.commands:
			if !ok {
				w.log.Debug("Command channel closed")
				return nil
			}
			for _, evt := range w.Apply(cmd) {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case w.events <- evt:
				}
			}
		}
	}
}

// Apply mutates the Room for one command and returns the resulting
// broadcasts, each carrying a full-collection snapshot taken while no
// other mutation can interleave.
func (w *RoomWorker) Apply(cmd domain.Command) []event.DomainEvent {
	switch c := cmd.(type) {
	case domain.EnterCommand:
		w.room.RegisterOrFindUser(c.Name)
		users := w.room.UsersSnapshot()
		// The joiner gets the whole state before any further mutation
		// can occur; everyone else only needs the updated user list.
		return []event.DomainEvent{
			event.RoomJoined{SessionID: c.SessionID, State: event.RoomState{
				Users:    users,
				Messages: w.room.MessagesSnapshot(),
				Tasks:    w.room.TasksSnapshot(),
			}},
			event.UsersUpdated{SessionID: c.SessionID, Users: users},
		}

	case domain.ExitCommand:
		return []event.DomainEvent{
			event.ParticipantExited{SessionID: c.SessionID, ParticipantName: c.Name},
		}

	case domain.PublishCommand:
		author, _ := w.room.FindUserByName(c.Name)
		w.room.PostMessage(c.Body, c.SendAt, author)
		return []event.DomainEvent{
			event.MessagesUpdated{SessionID: c.SessionID, Messages: w.room.MessagesSnapshot()},
		}

	case domain.RegisterTaskCommand:
		assignee, _ := w.room.FindUserByID(c.AssigneeID)
		w.room.RegisterTask(c.MessageID, assignee, c.StartDate, c.Duration)
		return []event.DomainEvent{
			event.TasksUpdated{SessionID: c.SessionID, Kind: "registerTask", Tasks: w.room.TasksSnapshot()},
		}

	case domain.DeleteTaskCommand:
		// Deleting an unknown id is a benign no-op; the full list is
		// rebroadcast either way, the last snapshot wins client-side.
		w.room.RemoveTask(c.MessageID)
		return []event.DomainEvent{
			event.TasksUpdated{SessionID: c.SessionID, Kind: "deleteTask", Tasks: w.room.TasksSnapshot()},
		}

	case domain.UpdateTaskCommand:
		updated := w.room.UpdateTask(c.MessageID, domain.TaskPatch{
			AssigneeID: c.AssigneeID,
			StartDay:   c.StartDate,
			Duration:   c.Duration,
			IsDone:     c.IsDone,
		})
		if !updated {
			// Lost race against a concurrent delete: silently dropped,
			// never surfaced as an error.
			return nil
		}
		return []event.DomainEvent{
			event.TasksUpdated{SessionID: c.SessionID, Kind: "updateTask", Tasks: w.room.TasksSnapshot()},
		}

	default:
		w.log.Warn("Unknown command type dropped")
		return nil
	}
}
