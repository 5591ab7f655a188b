package gesture

import "taskroom/gantt"

// DropIntent builds the registerTask intent for a message dropped onto the
// chart: the task starts on day 1 with the default duration and is not done.
func DropIntent(messageID, assigneeID int) Intent {
	return Intent{
		MessageID:  messageID,
		AssigneeID: assigneeID,
		StartDate:  gantt.MinStartDay,
		Duration:   gantt.DefaultDuration,
	}
}
