// Package gesture implements the client-side drag and resize state
// machines. A gesture spans pointer-down to pointer-up; every move only
// updates local tentative state, and exactly one intent is emitted on
// completion when the committed value differs from the pre-gesture one.
//
// The package is decoupled from any UI runtime: pointer move/up delivery
// is granted through a PointerCapture capability whose release is
// guaranteed on completion, cancellation and teardown.
package gesture

import (
	"taskroom/gantt"
)

// TaskState is the pre-gesture view of the task under the pointer.
type TaskState struct {
	MessageID  int
	AssigneeID int
	StartDate  int
	Duration   int
	IsDone     bool
}

// Intent is the single outbound message emitted at gesture completion,
// carrying the full committed patch.
type Intent struct {
	MessageID  int
	AssigneeID int
	StartDate  int
	Duration   int
	IsDone     bool
}

// PointerCapture grants transient pointer subscriptions for the duration
// of one gesture. The returned release must unregister both callbacks and
// must be safe to call more than once.
type PointerCapture interface {
	Capture(onMove func(x float64), onUp func()) (release func())
}

type mode int

const (
	idle mode = iota
	dragging
	resizing
)

// Controller runs the two mutually exclusive gesture machines
// (Idle -> Dragging -> Idle, Idle -> Resizing -> Idle) for one chart.
// Pointer-move handling is cheap and idempotent: it recomputes the
// tentative value from the captured start position every time.
type Controller struct {
	pointer        PointerCapture
	emit           func(Intent)
	containerWidth float64
	totalDays      int

	mode      mode
	release   func()
	task      TaskState
	startX    float64
	tentative TaskState
}

func NewController(pointer PointerCapture, containerWidth float64, emit func(Intent)) *Controller {
	return &Controller{
		pointer:        pointer,
		emit:           emit,
		containerWidth: containerWidth,
		totalDays:      gantt.TotalDays,
	}
}

// BeginDrag enters the Dragging state, capturing the pointer position and
// the task's pre-gesture start day. A no-op while another gesture is active.
func (c *Controller) BeginDrag(task TaskState, x float64) {
	if c.mode != idle {
		return
	}
	c.begin(dragging, task, x)
}

// BeginResize enters the Resizing state, capturing the pointer position
// and the task's pre-gesture duration. A no-op while a gesture is active.
func (c *Controller) BeginResize(task TaskState, x float64) {
	if c.mode != idle {
		return
	}
	c.begin(resizing, task, x)
}

func (c *Controller) begin(m mode, task TaskState, x float64) {
	c.mode = m
	c.task = task
	c.tentative = task
	c.startX = x
	c.release = c.pointer.Capture(c.handleMove, c.handleUp)
}

// Tentative exposes the local-only visual state of the active gesture.
// It is never sent over the wire mid-gesture.
func (c *Controller) Tentative() (startDate, duration int) {
	return c.tentative.StartDate, c.tentative.Duration
}

// Active reports whether a gesture is in flight.
func (c *Controller) Active() bool {
	return c.mode != idle
}

func (c *Controller) handleMove(x float64) {
	deltaDays := gantt.DeltaToDays(x-c.startX, c.containerWidth, c.totalDays)
	switch c.mode {
	case dragging:
		// Duration stays fixed; the start day is clamped so the task
		// never extends past the last day.
		c.tentative.StartDate = gantt.ClampStartDay(
			c.task.StartDate+deltaDays, c.task.Duration, c.totalDays)
	case resizing:
		// Start day stays fixed; a candidate that would leave the
		// window is rejected and the last valid value is kept.
		candidate := gantt.ClampDuration(c.task.Duration+deltaDays, c.totalDays)
		if gantt.FitsWindow(c.task.StartDate, candidate, c.totalDays) {
			c.tentative.Duration = candidate
		}
	}
}

func (c *Controller) handleUp() {
	changed := c.tentative.StartDate != c.task.StartDate ||
		c.tentative.Duration != c.task.Duration
	committed := c.tentative
	c.teardown()
	if changed && c.emit != nil {
		c.emit(Intent{
			MessageID:  committed.MessageID,
			AssigneeID: committed.AssigneeID,
			StartDate:  committed.StartDate,
			Duration:   committed.Duration,
			IsDone:     committed.IsDone,
		})
	}
}

// Cancel tears the active gesture down without emitting an intent.
// Used when the owning component unmounts mid-gesture.
func (c *Controller) Cancel() {
	c.teardown()
}

func (c *Controller) teardown() {
	if c.release != nil {
		c.release()
		c.release = nil
	}
	c.mode = idle
}
