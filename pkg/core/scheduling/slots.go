package scheduling

import (
	"fmt"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
)

// OneTimeScheduleID is the fixed scheduleId of a one-time project's single slot
const OneTimeScheduleID = "oneTime"

// MultiDayScheduleID builds the scheduleId for a multi-day slot from its date
// and its zero-based position within that day's slot list. The index is
// positional: reordering a day's slots changes their addressing.
func MultiDayScheduleID(date string, slotIndex int) string {
	return fmt.Sprintf("%s-%d", date, slotIndex)
}

// SlotDescriptor describes one bookable unit of a project
type SlotDescriptor struct {
	ScheduleID string
	Date       string
	StartTime  string
	EndTime    string
	Capacity   int
}

// EnumerateSlots lists every bookable unit of the schedule in declaration
// order. It returns a MalformedScheduleError when the payload does not match
// the declared event type.
func EnumerateSlots(schedule model.Schedule) ([]SlotDescriptor, error) {
	if err := schedule.Validate(); err != nil {
		return nil, &MalformedScheduleError{EventType: schedule.EventType, Reason: err.Error()}
	}

	switch schedule.EventType {
	case model.EventTypeOneTime:
		ot := schedule.OneTime
		return []SlotDescriptor{{
			ScheduleID: OneTimeScheduleID,
			Date:       ot.Date,
			StartTime:  ot.StartTime,
			EndTime:    ot.EndTime,
			Capacity:   ot.Volunteers,
		}}, nil

	case model.EventTypeMultiDay:
		var slots []SlotDescriptor
		for _, day := range schedule.MultiDay.Days {
			for i, slot := range day.Slots {
				slots = append(slots, SlotDescriptor{
					ScheduleID: MultiDayScheduleID(day.Date, i),
					Date:       day.Date,
					StartTime:  slot.StartTime,
					EndTime:    slot.EndTime,
					Capacity:   slot.Volunteers,
				})
			}
		}
		return slots, nil

	case model.EventTypeSameDayMultiArea:
		ma := schedule.MultiArea
		var slots []SlotDescriptor
		for _, role := range ma.Roles {
			slots = append(slots, SlotDescriptor{
				ScheduleID: role.Name,
				Date:       ma.Date,
				StartTime:  role.StartTime,
				EndTime:    role.EndTime,
				Capacity:   role.Volunteers,
			})
		}
		return slots, nil
	}

	// Unreachable after Validate, kept for exhaustiveness
	return nil, &MalformedScheduleError{EventType: schedule.EventType, Reason: "unknown event type"}
}
