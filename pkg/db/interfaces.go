package db

import (
	"context"
	"errors"
	"time"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
)

// ProjectStore defines the interface for project persistence
type ProjectStore interface {
	GetProject(ctx context.Context, id string) (*model.Project, error)
	ListProjects(ctx context.Context, visibilities []model.Visibility) ([]model.Project, error)
	InsertProject(ctx context.Context, project *model.Project) error
	CancelProject(ctx context.Context, id string, cancelledAt time.Time) error
}

// SignupStore defines the interface for signup persistence
type SignupStore interface {
	GetSignupsForProject(ctx context.Context, projectID string) ([]model.Signup, error)
	InsertSignup(ctx context.Context, signup *model.Signup) error
	UpdateSignupStatus(ctx context.Context, id string, status model.SignupStatus) error
	DeleteSignup(ctx context.Context, id string) error

	// ReserveSignup atomically re-checks the slot's occupancy against the
	// given capacity and inserts the signup in the same transaction. It
	// returns scheduling.CapacityExceededError when the slot filled up since
	// the caller's snapshot. This is the strongly-consistent check-and-insert
	// the pure admission check depends on.
	ReserveSignup(ctx context.Context, signup *model.Signup, capacity int, policy scheduling.CapacityPolicy) error
}

// Store combines project and signup persistence.
// postgres.DB implements this interface.
type Store interface {
	ProjectStore
	SignupStore
}

// ErrNotFound is returned by stores when a project or signup does not exist
var ErrNotFound = errors.New("record not found")
