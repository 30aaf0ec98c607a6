package model

import "fmt"

// DateLayout and ClockLayout are the wire formats for schedule dates and
// times ("2025-06-01", "09:00")
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// OneTimeSchedule is a single bookable slot on one date
type OneTimeSchedule struct {
	Date       string `json:"date" yaml:"date" validate:"required"`
	StartTime  string `json:"startTime" yaml:"startTime" validate:"required"`
	EndTime    string `json:"endTime" yaml:"endTime" validate:"required"`
	Volunteers int    `json:"volunteers" yaml:"volunteers" validate:"required,min=1"`
}

// SessionSlot is one bookable time range within a multi-day schedule's day
type SessionSlot struct {
	StartTime  string `json:"startTime" yaml:"startTime" validate:"required"`
	EndTime    string `json:"endTime" yaml:"endTime" validate:"required"`
	Volunteers int    `json:"volunteers" yaml:"volunteers" validate:"required,min=1"`
}

// ScheduleDay groups the ordered slots of one date in a multi-day schedule.
// Slot order is part of the addressing scheme: a slot's scheduleId is
// "<date>-<index>" with index taken from its position in Slots.
type ScheduleDay struct {
	Date  string        `json:"date" yaml:"date" validate:"required"`
	Slots []SessionSlot `json:"slots" yaml:"slots" validate:"dive"`
}

// MultiDaySchedule is a list of days, each with its own slots
type MultiDaySchedule struct {
	Days []ScheduleDay `json:"days" yaml:"days" validate:"dive"`
}

// RoleSlot is one parallel volunteer role within a same-day multi-area
// schedule. Role names are the scheduleIds and must be unique per project;
// uniqueness is enforced at creation time.
type RoleSlot struct {
	Name       string `json:"name" yaml:"name" validate:"required"`
	StartTime  string `json:"startTime" yaml:"startTime" validate:"required"`
	EndTime    string `json:"endTime" yaml:"endTime" validate:"required"`
	Volunteers int    `json:"volunteers" yaml:"volunteers" validate:"required,min=1"`
}

// MultiAreaSchedule is a set of parallel roles on a single date
type MultiAreaSchedule struct {
	Date         string     `json:"date" yaml:"date" validate:"required"`
	OverallStart string     `json:"overallStart" yaml:"overallStart" validate:"required"`
	OverallEnd   string     `json:"overallEnd" yaml:"overallEnd" validate:"required"`
	Roles        []RoleSlot `json:"roles" yaml:"roles" validate:"dive"`
}

// Schedule is a tagged union: EventType declares the shape and exactly one
// payload pointer is set. Use the New*Schedule constructors to build legal
// values; Validate rejects anything else.
type Schedule struct {
	EventType EventType          `json:"eventType" yaml:"eventType" validate:"required"`
	OneTime   *OneTimeSchedule   `json:"oneTime,omitempty" yaml:"oneTime,omitempty"`
	MultiDay  *MultiDaySchedule  `json:"multiDay,omitempty" yaml:"multiDay,omitempty"`
	MultiArea *MultiAreaSchedule `json:"sameDayMultiArea,omitempty" yaml:"sameDayMultiArea,omitempty"`
}

// NewOneTimeSchedule builds a one-time schedule
func NewOneTimeSchedule(s OneTimeSchedule) Schedule {
	return Schedule{EventType: EventTypeOneTime, OneTime: &s}
}

// NewMultiDaySchedule builds a multi-day schedule
func NewMultiDaySchedule(s MultiDaySchedule) Schedule {
	return Schedule{EventType: EventTypeMultiDay, MultiDay: &s}
}

// NewMultiAreaSchedule builds a same-day multi-area schedule
func NewMultiAreaSchedule(s MultiAreaSchedule) Schedule {
	return Schedule{EventType: EventTypeSameDayMultiArea, MultiArea: &s}
}

// Validate checks that the payload matches the declared event type and that
// no other payload is set
func (s *Schedule) Validate() error {
	if !s.EventType.IsValid() {
		return fmt.Errorf("unknown event type %q", s.EventType)
	}

	populated := 0
	if s.OneTime != nil {
		populated++
	}
	if s.MultiDay != nil {
		populated++
	}
	if s.MultiArea != nil {
		populated++
	}
	if populated != 1 {
		return fmt.Errorf("schedule must carry exactly one payload, has %d", populated)
	}

	var ok bool
	switch s.EventType {
	case EventTypeOneTime:
		ok = s.OneTime != nil
	case EventTypeMultiDay:
		ok = s.MultiDay != nil
	case EventTypeSameDayMultiArea:
		ok = s.MultiArea != nil
	}
	if !ok {
		return fmt.Errorf("schedule payload does not match declared event type %q", s.EventType)
	}

	return nil
}
