package scheduling

import (
	"fmt"
	"time"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
)

// ResolveStatus computes the project's lifecycle status from its schedule and
// the supplied clock. Status is a pure projection and is never persisted as
// ground truth; an explicit cancellation overrides everything else.
//
// The effective window runs from the earliest slot start to the latest slot
// end. Both bounds are inclusive: a project is in progress at the exact
// instant it starts and at the exact instant it ends. Schedules with no slots
// have no window and report upcoming indefinitely.
func ResolveStatus(project *model.Project, now time.Time) (model.ProjectStatus, error) {
	if project.Cancelled() {
		return model.StatusCancelled, nil
	}

	start, end, ok, err := scheduleWindow(project.Schedule)
	if err != nil {
		return "", err
	}
	if !ok {
		return model.StatusUpcoming, nil
	}

	switch {
	case now.Before(start):
		return model.StatusUpcoming, nil
	case now.After(end):
		return model.StatusCompleted, nil
	default:
		return model.StatusInProgress, nil
	}
}

// scheduleWindow derives the overall time window of a schedule. The third
// return value is false when the schedule has no slots at all.
func scheduleWindow(schedule model.Schedule) (start, end time.Time, ok bool, err error) {
	if verr := schedule.Validate(); verr != nil {
		return time.Time{}, time.Time{}, false, &MalformedScheduleError{EventType: schedule.EventType, Reason: verr.Error()}
	}

	// SameDayMultiArea carries an explicit overall window on its single date
	if schedule.EventType == model.EventTypeSameDayMultiArea {
		ma := schedule.MultiArea
		if len(ma.Roles) == 0 {
			return time.Time{}, time.Time{}, false, nil
		}
		start, err = parseDateTime(schedule.EventType, ma.Date, ma.OverallStart)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		end, err = parseDateTime(schedule.EventType, ma.Date, ma.OverallEnd)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		return start, end, true, nil
	}

	slots, err := EnumerateSlots(schedule)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if len(slots) == 0 {
		return time.Time{}, time.Time{}, false, nil
	}

	for i, slot := range slots {
		slotStart, perr := parseDateTime(schedule.EventType, slot.Date, slot.StartTime)
		if perr != nil {
			return time.Time{}, time.Time{}, false, perr
		}
		slotEnd, perr := parseDateTime(schedule.EventType, slot.Date, slot.EndTime)
		if perr != nil {
			return time.Time{}, time.Time{}, false, perr
		}
		if i == 0 || slotStart.Before(start) {
			start = slotStart
		}
		if i == 0 || slotEnd.After(end) {
			end = slotEnd
		}
	}

	return start, end, true, nil
}

// parseDateTime combines a schedule date and clock time into a UTC instant
func parseDateTime(eventType model.EventType, date, clock string) (time.Time, error) {
	t, err := time.Parse(model.DateLayout+" "+model.ClockLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, &MalformedScheduleError{
			EventType: eventType,
			Reason:    fmt.Sprintf("unparseable slot time %q %q", date, clock),
		}
	}
	return t, nil
}
