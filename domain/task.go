package domain

import "taskroom/gantt"

// Task is a message placed on the 7-day chart. The message id acts as
// the task's own identity: at most one task exists per message.
type Task struct {
	MessageID int
	Assignee  *User
	StartDay  int
	Duration  int
	IsDone    bool
}

// TaskPatch carries the mutable fields of an updateTask intent.
// The assignee is referenced by id and re-resolved by the store.
type TaskPatch struct {
	AssigneeID int
	StartDay   int
	Duration   int
	IsDone     bool
}

// TaskSnapshot is the wire form of a Task with the assignee embedded by value.
type TaskSnapshot struct {
	MessageID int   `json:"messageId"`
	Assignee  *User `json:"assignee"`
	StartDate int   `json:"startDate"`
	Duration  int   `json:"duration"`
	IsDone    bool  `json:"isDone"`
}

func (t *Task) snapshot() TaskSnapshot {
	s := TaskSnapshot{
		MessageID: t.MessageID,
		StartDate: t.StartDay,
		Duration:  t.Duration,
		IsDone:    t.IsDone,
	}
	if t.Assignee != nil {
		assignee := *t.Assignee
		s.Assignee = &assignee
	}
	return s
}

// place clamps a candidate placement into the chart window.
// Duration is clamped first, then the start day against the remaining room,
// so startDay+duration-1 <= TotalDays always holds afterwards.
func (t *Task) place(startDay, duration int) {
	t.Duration = gantt.ClampDuration(duration, gantt.TotalDays)
	t.StartDay = gantt.ClampStartDay(startDay, t.Duration, gantt.TotalDays)
}
