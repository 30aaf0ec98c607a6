package scheduling

import (
	"fmt"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
)

// The four error kinds below are expected, user-facing conditions. Callers
// match them with errors.As and map them to user messages; none of them
// should be logged as unexpected failures.

// MalformedScheduleError reports a schedule payload that does not match its
// declared event type. Callers should treat the project as unbookable and
// surface a data-integrity warning.
type MalformedScheduleError struct {
	EventType model.EventType
	Reason    string
}

func (e *MalformedScheduleError) Error() string {
	return fmt.Sprintf("malformed %q schedule: %s", e.EventType, e.Reason)
}

// UnknownSlotError reports a scheduleId with no matching slot, typically a
// stale link after a schedule edit.
type UnknownSlotError struct {
	ScheduleID string
}

func (e *UnknownSlotError) Error() string {
	return fmt.Sprintf("no slot with scheduleId %q", e.ScheduleID)
}

// ProjectCancelledError reports a signup attempt against a cancelled project
type ProjectCancelledError struct {
	ProjectID string
}

func (e *ProjectCancelledError) Error() string {
	return fmt.Sprintf("project %s has been cancelled", e.ProjectID)
}

// CapacityExceededError reports a slot without room for the requested number
// of volunteers
type CapacityExceededError struct {
	ScheduleID string
	Requested  int
	Remaining  int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("slot %q is full: requested %d, remaining %d", e.ScheduleID, e.Requested, e.Remaining)
}
