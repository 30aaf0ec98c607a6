package services

import (
	"context"
	"time"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// mockStore implements a test double for db.Store
type mockStore struct {
	projects map[string]*model.Project
	signups  map[string][]model.Signup

	insertedProjects []*model.Project
	reserved         []*model.Signup
	statusUpdates    map[string]model.SignupStatus
	deleted          []string

	getProjectErr error
	getSignupsErr error
	insertErr     error
	reserveErr    error
}

func newMockStore() *mockStore {
	return &mockStore{
		projects:      make(map[string]*model.Project),
		signups:       make(map[string][]model.Signup),
		statusUpdates: make(map[string]model.SignupStatus),
	}
}

func (m *mockStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	if m.getProjectErr != nil {
		return nil, m.getProjectErr
	}
	project, ok := m.projects[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	return project, nil
}

func (m *mockStore) ListProjects(ctx context.Context, visibilities []model.Visibility) ([]model.Project, error) {
	var projects []model.Project
	for _, p := range m.projects {
		if len(visibilities) == 0 {
			projects = append(projects, *p)
			continue
		}
		for _, v := range visibilities {
			if p.Visibility == v {
				projects = append(projects, *p)
				break
			}
		}
	}
	return projects, nil
}

func (m *mockStore) InsertProject(ctx context.Context, project *model.Project) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.projects[project.ID] = project
	m.insertedProjects = append(m.insertedProjects, project)
	return nil
}

func (m *mockStore) CancelProject(ctx context.Context, id string, cancelledAt time.Time) error {
	project, ok := m.projects[id]
	if !ok {
		return db.ErrNotFound
	}
	if project.CancelledAt == nil {
		project.CancelledAt = &cancelledAt
	}
	return nil
}

func (m *mockStore) GetSignupsForProject(ctx context.Context, projectID string) ([]model.Signup, error) {
	if m.getSignupsErr != nil {
		return nil, m.getSignupsErr
	}
	return m.signups[projectID], nil
}

func (m *mockStore) InsertSignup(ctx context.Context, signup *model.Signup) error {
	m.signups[signup.ProjectID] = append(m.signups[signup.ProjectID], *signup)
	return nil
}

func (m *mockStore) UpdateSignupStatus(ctx context.Context, id string, status model.SignupStatus) error {
	m.statusUpdates[id] = status
	for projectID, signups := range m.signups {
		for i := range signups {
			if signups[i].ID == id {
				m.signups[projectID][i].Status = status
				return nil
			}
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) DeleteSignup(ctx context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	for projectID, signups := range m.signups {
		for i := range signups {
			if signups[i].ID == id {
				m.signups[projectID] = append(signups[:i], signups[i+1:]...)
				return nil
			}
		}
	}
	return db.ErrNotFound
}

func (m *mockStore) ReserveSignup(ctx context.Context, signup *model.Signup, capacity int, policy scheduling.CapacityPolicy) error {
	if m.reserveErr != nil {
		return m.reserveErr
	}

	confirmed := 0
	for _, s := range m.signups[signup.ProjectID] {
		if s.ScheduleID == signup.ScheduleID && policy.Consumes(s.Status) {
			confirmed++
		}
	}
	consuming := 0
	if policy.Consumes(signup.Status) {
		consuming = 1
	}
	if confirmed+consuming > capacity {
		return &scheduling.CapacityExceededError{
			ScheduleID: signup.ScheduleID,
			Requested:  1,
			Remaining:  capacity - confirmed,
		}
	}

	m.signups[signup.ProjectID] = append(m.signups[signup.ProjectID], *signup)
	m.reserved = append(m.reserved, signup)
	return nil
}

// oneTimeTestProject builds a simple one-time project for tests
func oneTimeTestProject(id string, volunteers int) *model.Project {
	return &model.Project{
		ID:         id,
		Title:      "Beach Cleanup",
		Visibility: model.VisibilityPublic,
		Schedule: model.NewOneTimeSchedule(model.OneTimeSchedule{
			Date:       "2025-06-01",
			StartTime:  "09:00",
			EndTime:    "12:00",
			Volunteers: volunteers,
		}),
		CreatedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}
