// Package domain contains core concepts of the shared task board.
// This file defines User entities. Users are created on first enter
// and never deleted; their identity is looked up by name afterwards.
package domain

// User represents a connected participant.
// Tasks and messages hold a reference to the same User instance,
// so a color change is visible through every reference.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
