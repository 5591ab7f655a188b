package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"taskroom/contract"

	"github.com/gorilla/websocket"
)

// Server upgrades HTTP requests to websocket sessions and pumps inbound
// frames into the orchestrator's dispatch queue.
type Server struct {
	log                  *slog.Logger
	orchestrator         contract.IOrchestrator
	connectionBufferSize int
	upgrader             websocket.Upgrader
}

func NewServer(log *slog.Logger, orchestrator contract.IOrchestrator, connectionBufferSize int) *Server {
	return &Server{
		log:                  log,
		orchestrator:         orchestrator,
		connectionBufferSize: connectionBufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  32 * 1024,
			WriteBufferSize: 32 * 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					return true
				}
				// Basic same-origin check; good enough for a LAN tool.
				host := strings.TrimSpace(r.Host)
				return strings.Contains(origin, "://"+host)
			},
		},
	}
}

// Handle runs one connection: register the session before any command can
// be dispatched (so the enter back-fill always finds its sink), then read
// frames until the client goes away. A rejected frame is logged and
// dropped; the connection stays open.
func (s *Server) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}

	session := NewSession(conn, s.connectionBufferSize, s.log)
	s.orchestrator.RegisterParticipant(session.ID(), session)
	s.log.Info("Session connected", "session", session.ID())

	ctx, cancel := context.WithCancel(r.Context())
	defer func() {
		cancel()
		s.orchestrator.UnregisterParticipant(session.ID())
		_ = conn.Close()
		s.log.Info("Session disconnected", "session", session.ID())
	}()

	go session.WritePump(ctx)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("Read failed", "session", session.ID(), "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Debug("Malformed frame dropped", "session", session.ID(), "error", err)
			continue
		}

		cmd, err := ToCommand(session.ID(), env)
		if err != nil {
			s.log.Debug("Rejected frame", "event", env.Event, "error", err)
			continue
		}

		s.orchestrator.Dispatch(cmd)
	}
}
