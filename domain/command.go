package domain

import (
	"github.com/google/uuid"
)

// Command is one inbound named event, already validated at the transport
// boundary. The session id identifies the sender so broadcasts can target
// "everyone", "everyone else" or "sender only".
type Command interface {
	Session() uuid.UUID
}

type EnterCommand struct {
	SessionID uuid.UUID
	Name      string
}

func (c EnterCommand) Session() uuid.UUID { return c.SessionID }

// ExitCommand is a pass-through: the store is not touched, the payload is
// relayed to everyone else as-is.
type ExitCommand struct {
	SessionID uuid.UUID
	Name      string
}

func (c ExitCommand) Session() uuid.UUID { return c.SessionID }

type PublishCommand struct {
	SessionID uuid.UUID
	Name      string
	Body      string
	SendAt    string
}

func (c PublishCommand) Session() uuid.UUID { return c.SessionID }

type RegisterTaskCommand struct {
	SessionID  uuid.UUID
	MessageID  int
	AssigneeID int
	StartDate  int
	Duration   int
}

func (c RegisterTaskCommand) Session() uuid.UUID { return c.SessionID }

type DeleteTaskCommand struct {
	SessionID uuid.UUID
	MessageID int
}

func (c DeleteTaskCommand) Session() uuid.UUID { return c.SessionID }

type UpdateTaskCommand struct {
	SessionID  uuid.UUID
	MessageID  int
	AssigneeID int
	StartDate  int
	Duration   int
	IsDone     bool
}

func (c UpdateTaskCommand) Session() uuid.UUID { return c.SessionID }
