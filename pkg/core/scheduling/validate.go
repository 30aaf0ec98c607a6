package scheduling

import (
	"fmt"
	"time"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
)

// ValidateSchedule runs the creation-time checks the core elsewhere assumes
// as preconditions: the payload matches its event type, every slot has a
// parseable date and time range with the end after the start, a positive
// capacity, and multi-area role names are unique. EnumerateSlots,
// ResolveStatus and AggregateCapacity do not re-validate these.
func ValidateSchedule(schedule model.Schedule) error {
	slots, err := EnumerateSlots(schedule)
	if err != nil {
		return err
	}
	if len(slots) == 0 {
		return fmt.Errorf("schedule has no bookable slots")
	}

	seen := make(map[string]bool, len(slots))
	for _, slot := range slots {
		if seen[slot.ScheduleID] {
			// Only reachable for multi-area schedules with repeated role
			// names; multi-day ids are positional and cannot collide
			return fmt.Errorf("duplicate role name %q", slot.ScheduleID)
		}
		seen[slot.ScheduleID] = true

		if slot.Capacity < 1 {
			return fmt.Errorf("slot %q must have a positive volunteer capacity, got %d", slot.ScheduleID, slot.Capacity)
		}

		start, end, err := slotWindow(schedule.EventType, slot)
		if err != nil {
			return err
		}
		if !end.After(start) {
			return fmt.Errorf("slot %q must end after it starts (%s-%s)", slot.ScheduleID, slot.StartTime, slot.EndTime)
		}
	}

	if schedule.EventType == model.EventTypeSameDayMultiArea {
		if err := validateOverallWindow(schedule.MultiArea); err != nil {
			return err
		}
	}

	return nil
}

func slotWindow(eventType model.EventType, slot SlotDescriptor) (time.Time, time.Time, error) {
	start, err := parseDateTime(eventType, slot.Date, slot.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDateTime(eventType, slot.Date, slot.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// validateOverallWindow checks that the declared overall window is a valid
// range containing every role's time range
func validateOverallWindow(ma *model.MultiAreaSchedule) error {
	overallStart, err := parseDateTime(model.EventTypeSameDayMultiArea, ma.Date, ma.OverallStart)
	if err != nil {
		return err
	}
	overallEnd, err := parseDateTime(model.EventTypeSameDayMultiArea, ma.Date, ma.OverallEnd)
	if err != nil {
		return err
	}
	if !overallEnd.After(overallStart) {
		return fmt.Errorf("overall window must end after it starts (%s-%s)", ma.OverallStart, ma.OverallEnd)
	}

	for _, role := range ma.Roles {
		roleStart, err := parseDateTime(model.EventTypeSameDayMultiArea, ma.Date, role.StartTime)
		if err != nil {
			return err
		}
		roleEnd, err := parseDateTime(model.EventTypeSameDayMultiArea, ma.Date, role.EndTime)
		if err != nil {
			return err
		}
		if roleStart.Before(overallStart) || roleEnd.After(overallEnd) {
			return fmt.Errorf("role %q (%s-%s) falls outside the overall window %s-%s",
				role.Name, role.StartTime, role.EndTime, ma.OverallStart, ma.OverallEnd)
		}
	}

	return nil
}
