package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
)

// maxRecurrenceDays caps expansion so an unbounded rule cannot produce an
// endless schedule
const maxRecurrenceDays = 52

// BuildMultiDaySchedule expands a recurrence rule into a concrete multi-day
// schedule: one day per occurrence date within the next year, each with a
// single slot using the given time range and capacity. Recurrence is an
// authoring convenience only; the stored schedule is always the expanded day
// list, so the core never needs a recurrence engine at read time.
func BuildMultiDaySchedule(rruleStr, startTime, endTime string, volunteers int, from time.Time) (model.Schedule, error) {
	opt, err := rrule.StrToROption(rruleStr)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("invalid recurrence rule: %w", err)
	}
	// Anchor the rule at the caller's clock so expansion is deterministic
	if opt.Dtstart.IsZero() {
		opt.Dtstart = from
	}
	rule, err := rrule.NewRRule(*opt)
	if err != nil {
		return model.Schedule{}, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	// Bounded window keeps rules without COUNT/UNTIL finite
	occurrences := rule.Between(from, from.AddDate(1, 0, 0), true)
	if len(occurrences) == 0 {
		return model.Schedule{}, fmt.Errorf("recurrence rule %q has no occurrences in the next year", rruleStr)
	}
	if len(occurrences) > maxRecurrenceDays {
		occurrences = occurrences[:maxRecurrenceDays]
	}

	days := make([]model.ScheduleDay, len(occurrences))
	for i, occ := range occurrences {
		days[i] = model.ScheduleDay{
			Date: occ.Format(model.DateLayout),
			Slots: []model.SessionSlot{
				{StartTime: startTime, EndTime: endTime, Volunteers: volunteers},
			},
		}
	}

	schedule := model.NewMultiDaySchedule(model.MultiDaySchedule{Days: days})
	if err := scheduling.ValidateSchedule(schedule); err != nil {
		return model.Schedule{}, err
	}

	return schedule, nil
}
