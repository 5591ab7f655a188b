// Package gantt holds the pure geometry of the 7-day chart: converting
// pointer deltas to day offsets and clamping placements into the window.
// It has no state and no I/O and is callable concurrently.
package gantt

import "math"

const (
	// TotalDays is the width of the chart window.
	TotalDays = 7
	// MinStartDay is the first valid day of the window.
	MinStartDay = 1
	// MinDuration is the smallest valid task duration.
	MinDuration = 1
	// DefaultDuration is the duration of a freshly dropped task.
	DefaultDuration = 2
)

// DeltaToDays snaps a horizontal pointer delta (in pixels) to a whole
// number of days, given the pixel width of the chart container.
// A non-positive width or day count yields zero.
func DeltaToDays(deltaX, containerWidth float64, totalDays int) int {
	if containerWidth <= 0 || totalDays <= 0 {
		return 0
	}
	dayWidth := containerWidth / float64(totalDays)
	return int(math.Round(deltaX / dayWidth))
}

// ClampDuration bounds a candidate duration to [MinDuration, totalDays].
func ClampDuration(candidate, totalDays int) int {
	if candidate < MinDuration {
		return MinDuration
	}
	if candidate > totalDays {
		return totalDays
	}
	return candidate
}

// MaxStartDay is the latest start day that keeps a task of the given
// duration inside the window.
func MaxStartDay(duration, totalDays int) int {
	return totalDays + 1 - duration
}

// ClampStartDay bounds a candidate start day to [MinStartDay, MaxStartDay]
// so the task never extends past the last day.
func ClampStartDay(candidate, duration, totalDays int) int {
	if candidate < MinStartDay {
		return MinStartDay
	}
	if max := MaxStartDay(duration, totalDays); candidate > max {
		return max
	}
	return candidate
}

// EndDay is the last day covered by a placement.
func EndDay(startDay, duration int) int {
	return startDay + duration - 1
}

// FitsWindow reports whether the placement stays inside the window.
func FitsWindow(startDay, duration, totalDays int) bool {
	return EndDay(startDay, duration) <= totalDays
}
