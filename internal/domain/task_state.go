package domain

// TaskState describes the progress of a task such as a wizard card or a
// resource transfer. The zero value means no state has been assigned.
type TaskState int

const (
	TaskStateNone TaskState = iota
	TaskStateInitialize
	TaskStateIncomplete
	TaskStateComplete
	TaskStateError
	TaskStateCanceled
	TaskStatePaused
	TaskStateStopped
)

var taskStateNames = map[TaskState]string{
	TaskStateNone:       "",
	TaskStateInitialize: "initialize",
	TaskStateIncomplete: "incomplete",
	TaskStateComplete:   "complete",
	TaskStateError:      "error",
	TaskStateCanceled:   "canceled",
	TaskStatePaused:     "paused",
	TaskStateStopped:    "stopped",
}

func (s TaskState) String() string {
	return taskStateNames[s]
}

// ParseTaskState converts a wire name back into a TaskState.
func ParseTaskState(name string) (TaskState, bool) {
	for state, n := range taskStateNames {
		if n == name {
			return state, true
		}
	}
	return TaskStateNone, false
}
