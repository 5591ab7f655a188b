package workers

import (
	"io"
	"log/slog"
	"taskroom/domain"
	"taskroom/domain/event"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRoomWorker() *RoomWorker {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRoomWorker(domain.NewRoom(), nil, nil, logger)
}

func TestRoomWorker_Enter_BackfillsJoinerAndNotifiesOthers(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()
	sessionID := uuid.New()

	// When a participant enters
	events := worker.Apply(domain.EnterCommand{SessionID: sessionID, Name: "alice"})

	// Then the joiner gets the whole state and others get the user list
	req.Len(events, 2)

	joined, ok := events[0].(event.RoomJoined)
	req.True(ok)
	req.Equal("enter", joined.Name())
	req.Equal(event.AudienceSender, joined.Audience())
	req.Equal(sessionID, joined.Origin())
	req.Len(joined.State.Users, 1)
	req.Equal("alice", joined.State.Users[0].Name)
	req.Empty(joined.State.Messages)
	req.Empty(joined.State.Tasks)

	updated, ok := events[1].(event.UsersUpdated)
	req.True(ok)
	req.Equal("enter", updated.Name())
	req.Equal(event.AudienceOthers, updated.Audience())
	req.Len(updated.Users, 1)
}

func TestRoomWorker_Enter_SameNameReusesTheUser(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()

	worker.Apply(domain.EnterCommand{SessionID: uuid.New(), Name: "alice"})
	events := worker.Apply(domain.EnterCommand{SessionID: uuid.New(), Name: "alice"})

	joined := events[0].(event.RoomJoined)
	req.Len(joined.State.Users, 1)
	req.Equal(1, joined.State.Users[0].ID)
}

func TestRoomWorker_Exit_RelaysTheNameToOthers(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()
	sessionID := uuid.New()

	events := worker.Apply(domain.ExitCommand{SessionID: sessionID, Name: "alice"})

	req.Len(events, 1)
	exited, ok := events[0].(event.ParticipantExited)
	req.True(ok)
	req.Equal("exit", exited.Name())
	req.Equal(event.AudienceOthers, exited.Audience())
	req.Equal(event.ExitPayload{Name: "alice"}, exited.Payload())
}

func TestRoomWorker_Publish_BroadcastsTheFullMessageList(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()
	worker.Apply(domain.EnterCommand{SessionID: uuid.New(), Name: "alice"})

	events := worker.Apply(domain.PublishCommand{
		SessionID: uuid.New(), Name: "alice", Body: "hello", SendAt: "10:00",
	})

	req.Len(events, 1)
	messages, ok := events[0].(event.MessagesUpdated)
	req.True(ok)
	req.Equal("publish", messages.Name())
	req.Equal(event.AudienceAll, messages.Audience())
	req.Len(messages.Messages, 1)
	req.Equal("hello", messages.Messages[0].Body)
	req.Equal("alice", messages.Messages[0].User.Name)
	req.Equal("10:00", messages.Messages[0].SendAt)
}

func TestRoomWorker_Publish_UnknownAuthor_StillStoresTheMessage(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()

	events := worker.Apply(domain.PublishCommand{
		SessionID: uuid.New(), Name: "ghost", Body: "boo", SendAt: "10:00",
	})

	req.Len(events, 1)
	messages := events[0].(event.MessagesUpdated)
	req.Len(messages.Messages, 1)
	req.Nil(messages.Messages[0].User)
}

func TestRoomWorker_RegisterTask_BroadcastsToEveryone(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()
	worker.Apply(domain.EnterCommand{SessionID: uuid.New(), Name: "alice"})
	worker.Apply(domain.PublishCommand{SessionID: uuid.New(), Name: "alice", Body: "todo", SendAt: "10:00"})

	events := worker.Apply(domain.RegisterTaskCommand{
		SessionID: uuid.New(), MessageID: 1, AssigneeID: 1, StartDate: 1, Duration: 2,
	})

	req.Len(events, 1)
	tasks, ok := events[0].(event.TasksUpdated)
	req.True(ok)
	req.Equal("registerTask", tasks.Name())
	req.Equal(event.AudienceAll, tasks.Audience())
	req.Len(tasks.Tasks, 1)
	req.False(tasks.Tasks[0].IsDone)
}

func TestRoomWorker_DeleteTask_UnknownId_StillRebroadcasts(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()

	// The collection is empty and the id unknown, the list goes out anyway
	events := worker.Apply(domain.DeleteTaskCommand{SessionID: uuid.New(), MessageID: 42})

	req.Len(events, 1)
	tasks := events[0].(event.TasksUpdated)
	req.Equal("deleteTask", tasks.Name())
	req.Empty(tasks.Tasks)
}

func TestRoomWorker_UpdateTask_UnknownId_EmitsNothing(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()

	events := worker.Apply(domain.UpdateTaskCommand{
		SessionID: uuid.New(), MessageID: 42, AssigneeID: 1, StartDate: 2, Duration: 2,
	})

	req.Nil(events)
}

func TestRoomWorker_UpdateTask_BroadcastsTheNewPlacement(t *testing.T) {
	req := require.New(t)
	worker := newRoomWorker()
	worker.Apply(domain.EnterCommand{SessionID: uuid.New(), Name: "alice"})
	worker.Apply(domain.PublishCommand{SessionID: uuid.New(), Name: "alice", Body: "todo", SendAt: "10:00"})
	worker.Apply(domain.RegisterTaskCommand{SessionID: uuid.New(), MessageID: 1, AssigneeID: 1, StartDate: 1, Duration: 2})

	events := worker.Apply(domain.UpdateTaskCommand{
		SessionID: uuid.New(), MessageID: 1, AssigneeID: 1,
		StartDate: 4, Duration: 3, IsDone: true,
	})

	req.Len(events, 1)
	tasks := events[0].(event.TasksUpdated)
	req.Equal("updateTask", tasks.Name())
	req.Equal(4, tasks.Tasks[0].StartDate)
	req.Equal(3, tasks.Tasks[0].Duration)
	req.True(tasks.Tasks[0].IsDone)
}
