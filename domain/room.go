package domain

import (
	"github.com/samber/lo"
)

// Room is the authoritative in-memory store: one shared namespace in which
// every connected client sees the same users, messages and tasks.
// Insertion order is preserved and used as broadcast order.
//
// Room is not safe for concurrent use. All mutations must come from the
// single dispatch worker (see runtime/workers), which is what makes every
// mutation appear atomic to observers.
type Room struct {
	directory *Directory
	users     []*User
	messages  []*Message
	tasks     []*Task
}

func NewRoom() *Room {
	return &Room{directory: NewDirectory()}
}

// RegisterOrFindUser returns the existing user on a case-sensitive exact
// name match, otherwise creates one with the next id and palette color.
// It never fails.
func (r *Room) RegisterOrFindUser(name string) *User {
	if user, ok := lo.Find(r.users, func(u *User) bool { return u.Name == name }); ok {
		return user
	}
	user := r.directory.NewUser(name)
	r.users = append(r.users, user)
	return user
}

func (r *Room) FindUserByName(name string) (*User, bool) {
	return lo.Find(r.users, func(u *User) bool { return u.Name == name })
}

func (r *Room) FindUserByID(id int) (*User, bool) {
	return lo.Find(r.users, func(u *User) bool { return u.ID == id })
}

func (r *Room) findTask(messageID int) (*Task, bool) {
	return lo.Find(r.tasks, func(t *Task) bool { return t.MessageID == messageID })
}

func (r *Room) findMessage(id int) (*Message, bool) {
	return lo.Find(r.messages, func(m *Message) bool { return m.ID == id })
}

// PostMessage appends an immutable message with the next message id.
// A nil author is tolerated: the protocol resolves authors by name and a
// publish from an unseen name still records the message.
func (r *Room) PostMessage(body, sentAt string, author *User) *Message {
	message := &Message{
		ID:     r.directory.NextMessageID(),
		Body:   body,
		Author: author,
		SentAt: sentAt,
	}
	r.messages = append(r.messages, message)
	return message
}

// RegisterTask places a new task on the chart. The message must exist and
// must not already carry a task; otherwise the call is a silent no-op.
// The placement is clamped into the chart window and isDone starts false.
func (r *Room) RegisterTask(messageID int, assignee *User, startDay, duration int) *Task {
	if _, ok := r.findMessage(messageID); !ok {
		return nil
	}
	if _, ok := r.findTask(messageID); ok {
		return nil
	}
	task := &Task{MessageID: messageID, Assignee: assignee}
	task.place(startDay, duration)
	r.tasks = append(r.tasks, task)
	return task
}

// RemoveTask removes the task carrying messageID.
// Removing an unknown id leaves the collection unchanged.
func (r *Room) RemoveTask(messageID int) bool {
	before := len(r.tasks)
	r.tasks = lo.Filter(r.tasks, func(t *Task, _ int) bool { return t.MessageID != messageID })
	return len(r.tasks) != before
}

// UpdateTask overwrites the mutable fields of the task carrying messageID.
// An unknown id is silently dropped (benign race with a concurrent delete).
// An unresolvable assignee id keeps the previous assignee rather than
// nulling it out.
func (r *Room) UpdateTask(messageID int, patch TaskPatch) bool {
	task, ok := r.findTask(messageID)
	if !ok {
		return false
	}
	if assignee, found := r.FindUserByID(patch.AssigneeID); found {
		task.Assignee = assignee
	}
	task.place(patch.StartDay, patch.Duration)
	task.IsDone = patch.IsDone
	return true
}

// UsersSnapshot copies the user collection in insertion order.
func (r *Room) UsersSnapshot() []User {
	return lo.Map(r.users, func(u *User, _ int) User { return *u })
}

// MessagesSnapshot copies the message collection into its wire form.
func (r *Room) MessagesSnapshot() []MessageSnapshot {
	return lo.Map(r.messages, func(m *Message, _ int) MessageSnapshot { return m.snapshot() })
}

// TasksSnapshot copies the task collection into its wire form.
func (r *Room) TasksSnapshot() []TaskSnapshot {
	return lo.Map(r.tasks, func(t *Task, _ int) TaskSnapshot { return t.snapshot() })
}
