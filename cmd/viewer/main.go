// Command viewer is a read-only terminal client: it joins the room,
// receives the back-fill plus every snapshot broadcast, and renders the
// current users, messages and tasks as tables.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"taskroom/domain"
	"taskroom/domain/event"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	ServerURL string `envconfig:"VIEWER_SERVER_URL" default:"ws://localhost:8080/ws"`
	Name      string `envconfig:"VIEWER_NAME" default:"viewer"`
	// VIEWER_COLOURS enables colorized user names for better readability
	Colours bool `envconfig:"VIEWER_COLOURS" default:"true"`
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type boardState struct {
	users    []domain.User
	messages []domain.MessageSnapshot
	tasks    []domain.TaskSnapshot
}

func main() {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Config error: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(cfg.ServerURL, nil)
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.ServerURL, err)
	}
	defer conn.Close()

	enter := fmt.Sprintf(`{"event":"enter","data":{"name":%q}}`, cfg.Name)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(enter)); err != nil {
		log.Fatalf("Failed to join: %v", err)
	}

	fmt.Printf("Viewer connected to %s as %q\n", cfg.ServerURL, cfg.Name)

	var state boardState
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("Connection lost: %v", err)
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			continue
		}
		if apply(&state, env) {
			render(state, cfg.Colours)
		}
	}
}

// apply folds one snapshot broadcast into the local state. The enter
// event carries either the full back-fill object (to the joiner) or the
// bare user list (relayed joins).
func apply(state *boardState, env envelope) bool {
	switch env.Event {
	case "enter":
		if len(env.Data) > 0 && env.Data[0] == '{' {
			var full event.RoomState
			if err := json.Unmarshal(env.Data, &full); err != nil {
				return false
			}
			state.users = full.Users
			state.messages = full.Messages
			state.tasks = full.Tasks
			return true
		}
		return json.Unmarshal(env.Data, &state.users) == nil
	case "publish":
		return json.Unmarshal(env.Data, &state.messages) == nil
	case "registerTask", "deleteTask", "updateTask":
		return json.Unmarshal(env.Data, &state.tasks) == nil
	case "exit":
		var payload struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(env.Data, &payload); err == nil {
			fmt.Printf("-- %s left the room --\n", payload.Name)
		}
		return false
	default:
		return false
	}
}

func render(state boardState, colours bool) {
	fmt.Print("\033[H\033[2J")

	users := tablewriter.NewWriter(os.Stdout)
	users.SetHeader([]string{"ID", "Name", "Color"})
	for _, u := range state.users {
		users.Append([]string{strconv.Itoa(u.ID), paint(u.Name, u.Color, colours), u.Color})
	}
	users.Render()

	messages := tablewriter.NewWriter(os.Stdout)
	messages.SetHeader([]string{"ID", "Author", "Message", "Sent at"})
	for _, m := range state.messages {
		author := ""
		if m.User != nil {
			author = paint(m.User.Name, m.User.Color, colours)
		}
		messages.Append([]string{strconv.Itoa(m.ID), author, m.Body, m.SendAt})
	}
	messages.Render()

	tasks := tablewriter.NewWriter(os.Stdout)
	tasks.SetHeader([]string{"Message", "Assignee", "Days", "Done"})
	for _, t := range state.tasks {
		assignee := ""
		if t.Assignee != nil {
			assignee = paint(t.Assignee.Name, t.Assignee.Color, colours)
		}
		days := fmt.Sprintf("%d-%d", t.StartDate, t.StartDate+t.Duration-1)
		tasks.Append([]string{strconv.Itoa(t.MessageID), assignee, days, strconv.FormatBool(t.IsDone)})
	}
	tasks.Render()
}

func paint(name, hex string, colours bool) string {
	if !colours || hex == "" {
		return name
	}
	return color.HEX(strings.TrimPrefix(hex, "#")).Sprint(name)
}
