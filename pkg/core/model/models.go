package model

import "time"

// EventType discriminates the three schedule shapes a project can have
type EventType string

const (
	EventTypeOneTime          EventType = "oneTime"
	EventTypeMultiDay         EventType = "multiDay"
	EventTypeSameDayMultiArea EventType = "sameDayMultiArea"
)

func (e EventType) IsValid() bool {
	return e == EventTypeOneTime || e == EventTypeMultiDay || e == EventTypeSameDayMultiArea
}

// ProjectStatus is derived from the schedule and the current time, never
// stored as ground truth. Cancelled is the only status set by an explicit
// action and it is terminal.
type ProjectStatus string

const (
	StatusUpcoming   ProjectStatus = "upcoming"
	StatusInProgress ProjectStatus = "in-progress"
	StatusCompleted  ProjectStatus = "completed"
	StatusCancelled  ProjectStatus = "cancelled"
)

// SignupStatus tracks a signup through its lifecycle
type SignupStatus string

const (
	SignupPending  SignupStatus = "pending"
	SignupApproved SignupStatus = "approved"
	SignupRejected SignupStatus = "rejected"
	SignupAttended SignupStatus = "attended"
)

func (s SignupStatus) IsValid() bool {
	switch s {
	case SignupPending, SignupApproved, SignupRejected, SignupAttended:
		return true
	}
	return false
}

// Visibility gates which callers may list a project. It has no effect on
// capacity accounting.
type Visibility string

const (
	VisibilityPublic       Visibility = "public"
	VisibilityUnlisted     Visibility = "unlisted"
	VisibilityOrganization Visibility = "organization_only"
)

func (v Visibility) IsValid() bool {
	return v == VisibilityPublic || v == VisibilityUnlisted || v == VisibilityOrganization
}

// Project represents a volunteer project and owns its schedule by value
type Project struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Visibility  Visibility `json:"visibility"`
	Schedule    Schedule   `json:"schedule"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Cancelled reports whether the project has been explicitly cancelled
func (p *Project) Cancelled() bool {
	return p.CancelledAt != nil
}

// Signup references a project and a bookable unit within it by scheduleId.
// Exactly one of UserID and AnonymousID is set.
type Signup struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	ScheduleID  string       `json:"scheduleId"`
	UserID      string       `json:"userId,omitempty"`
	AnonymousID string       `json:"anonymousId,omitempty"`
	Status      SignupStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Identity returns whichever identity reference is set on the signup
func (s *Signup) Identity() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.AnonymousID
}
