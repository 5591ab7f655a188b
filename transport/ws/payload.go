// Package ws binds the event protocol to websocket connections: JSON
// envelopes carrying a named event both ways. Inbound payloads are
// validated here, before a command is ever built, so the dispatch loop
// only sees well-formed commands and a malformed frame can never corrupt
// the store for other clients.
package ws

import (
	"encoding/json"
	"fmt"
	"taskroom/domain"
	"taskroom/errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Envelope is the wire frame: {"event": <name>, "data": <payload>}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type EnterRequest struct {
	Name string `json:"name" validate:"required"`
}

type ExitRequest struct {
	Name string `json:"name" validate:"required"`
}

type PublishRequest struct {
	Name    string `json:"name" validate:"required"`
	Message string `json:"message" validate:"required"`
	SendAt  string `json:"sendAt" validate:"required"`
}

type RegisterTaskRequest struct {
	MessageID  int `json:"messageId" validate:"required,gt=0"`
	AssigneeID int `json:"assigneeId" validate:"gte=0"`
	StartDate  int `json:"startDate" validate:"min=1,max=7"`
	Duration   int `json:"duration" validate:"min=1,max=7"`
}

type DeleteTaskRequest struct {
	MessageID int `json:"messageId" validate:"required,gt=0"`
}

type UpdateTaskRequest struct {
	MessageID  int  `json:"messageId" validate:"required,gt=0"`
	AssigneeID int  `json:"assigneeId" validate:"gte=0"`
	StartDate  int  `json:"startDate" validate:"min=1,max=7"`
	Duration   int  `json:"duration" validate:"min=1,max=7"`
	IsDone     bool `json:"isDone"`
}

func decode[T any](raw json.RawMessage) (T, error) {
	var req T
	if err := json.Unmarshal(raw, &req); err != nil {
		return req, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	if err := validate.Struct(req); err != nil {
		return req, fmt.Errorf("%w: %v", errors.ErrInvalidPayload, err)
	}
	return req, nil
}

// ToCommand maps one validated inbound envelope to its command.
func ToCommand(sessionID uuid.UUID, env Envelope) (domain.Command, error) {
	switch env.Event {
	case "enter":
		req, err := decode[EnterRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.EnterCommand{SessionID: sessionID, Name: req.Name}, nil

	case "exit":
		req, err := decode[ExitRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.ExitCommand{SessionID: sessionID, Name: req.Name}, nil

	case "publish":
		req, err := decode[PublishRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.PublishCommand{
			SessionID: sessionID,
			Name:      req.Name,
			Body:      req.Message,
			SendAt:    req.SendAt,
		}, nil

	case "registerTask":
		req, err := decode[RegisterTaskRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.RegisterTaskCommand{
			SessionID:  sessionID,
			MessageID:  req.MessageID,
			AssigneeID: req.AssigneeID,
			StartDate:  req.StartDate,
			Duration:   req.Duration,
		}, nil

	case "deleteTask":
		req, err := decode[DeleteTaskRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.DeleteTaskCommand{SessionID: sessionID, MessageID: req.MessageID}, nil

	case "updateTask":
		req, err := decode[UpdateTaskRequest](env.Data)
		if err != nil {
			return nil, err
		}
		return domain.UpdateTaskCommand{
			SessionID:  sessionID,
			MessageID:  req.MessageID,
			AssigneeID: req.AssigneeID,
			StartDate:  req.StartDate,
			Duration:   req.Duration,
			IsDone:     req.IsDone,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, env.Event)
	}
}
