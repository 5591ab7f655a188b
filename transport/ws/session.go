package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"taskroom/contract"
	"taskroom/domain/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var _ contract.EventSink = (*Session)(nil)

// Session is one connected client. It implements contract.EventSink so
// the fanout can deliver snapshot events straight to the connection, and
// it owns an outbound queue so a slow socket never blocks the fanout
// beyond its timeout.
type Session struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
	log  *slog.Logger
}

func NewSession(conn *websocket.Conn, bufferSize int, log *slog.Logger) *Session {
	return &Session{
		id:   uuid.New(),
		conn: conn,
		send: make(chan []byte, bufferSize),
		log:  log,
	}
}

func (s *Session) ID() uuid.UUID { return s.id }

type outboundFrame struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Consume envelope-encodes the event and queues it for the write pump.
// Blocks only until the fanout's sink timeout fires.
func (s *Session) Consume(ctx context.Context, e event.DomainEvent) error {
	frame, err := json.Marshal(outboundFrame{Event: e.Name(), Data: e.Payload()})
	if err != nil {
		return err
	}
	select {
	case s.send <- frame:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// WritePump is the single writer on the connection; gorilla connections
// support one concurrent writer only.
func (s *Session) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-s.send:
			if !ok {
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.log.Debug("Write failed, closing session", "session", s.id, "error", err)
				return
			}
		}
	}
}
