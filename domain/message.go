// Package domain contains core concepts of the shared task board.
// This file defines Message entities. Messages are immutable and
// append-only; they are never deleted.
package domain

// Message represents an immutable chat entry.
// SentAt is supplied by the sender and kept as an opaque string.
type Message struct {
	ID     int
	Body   string
	Author *User
	SentAt string
}

// MessageSnapshot is the wire form of a Message, with the author
// embedded by value so a broadcast can never observe a later mutation.
type MessageSnapshot struct {
	ID     int    `json:"id"`
	Body   string `json:"message"`
	User   *User  `json:"user"`
	SendAt string `json:"sendAt"`
}

func (m *Message) snapshot() MessageSnapshot {
	s := MessageSnapshot{ID: m.ID, Body: m.Body, SendAt: m.SentAt}
	if m.Author != nil {
		author := *m.Author
		s.User = &author
	}
	return s
}
