package event

import (
	"taskroom/domain"

	"github.com/google/uuid"
)

// Audience selects which registered sessions receive a broadcast.
type Audience int

const (
	// AudienceAll delivers to every session, sender included.
	AudienceAll Audience = iota
	// AudienceOthers delivers to every session except the sender.
	AudienceOthers
	// AudienceSender delivers to the sender only (back-fill).
	AudienceSender
)

// DomainEvent is one outbound named event carrying a full-collection
// snapshot (never a delta): the last snapshot wins on the client side,
// so no ordering or merge logic is needed there.
type DomainEvent interface {
	Name() string
	Audience() Audience
	Origin() uuid.UUID
	Payload() any
}

// RoomState back-fills a newly joined client with everything at once,
// before any further mutation can reach it.
type RoomState struct {
	Users    []domain.User            `json:"users"`
	Messages []domain.MessageSnapshot `json:"messages"`
	Tasks    []domain.TaskSnapshot    `json:"tasks"`
}

type RoomJoined struct {
	SessionID uuid.UUID
	State     RoomState
}

func (e RoomJoined) Name() string       { return "enter" }
func (e RoomJoined) Audience() Audience { return AudienceSender }
func (e RoomJoined) Origin() uuid.UUID  { return e.SessionID }
func (e RoomJoined) Payload() any       { return e.State }

type UsersUpdated struct {
	SessionID uuid.UUID
	Users     []domain.User
}

func (e UsersUpdated) Name() string       { return "enter" }
func (e UsersUpdated) Audience() Audience { return AudienceOthers }
func (e UsersUpdated) Origin() uuid.UUID  { return e.SessionID }
func (e UsersUpdated) Payload() any       { return e.Users }

type ExitPayload struct {
	Name string `json:"name"`
}

// ParticipantExited relays the raw exit payload to everyone else.
type ParticipantExited struct {
	SessionID       uuid.UUID
	ParticipantName string
}

func (e ParticipantExited) Name() string       { return "exit" }
func (e ParticipantExited) Audience() Audience { return AudienceOthers }
func (e ParticipantExited) Origin() uuid.UUID  { return e.SessionID }
func (e ParticipantExited) Payload() any       { return ExitPayload{Name: e.ParticipantName} }

type MessagesUpdated struct {
	SessionID uuid.UUID
	Messages  []domain.MessageSnapshot
}

func (e MessagesUpdated) Name() string       { return "publish" }
func (e MessagesUpdated) Audience() Audience { return AudienceAll }
func (e MessagesUpdated) Origin() uuid.UUID  { return e.SessionID }
func (e MessagesUpdated) Payload() any       { return e.Messages }

// TasksUpdated broadcasts the full task list after a task mutation.
// Kind is the outbound event name: registerTask, deleteTask or updateTask.
type TasksUpdated struct {
	SessionID uuid.UUID
	Kind      string
	Tasks     []domain.TaskSnapshot
}

func (e TasksUpdated) Name() string       { return e.Kind }
func (e TasksUpdated) Audience() Audience { return AudienceAll }
func (e TasksUpdated) Origin() uuid.UUID  { return e.SessionID }
func (e TasksUpdated) Payload() any       { return e.Tasks }
