package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// ProjectOverview is a project stamped with its resolved status, slot list
// and per-slot capacity tallies
type ProjectOverview struct {
	Project  *model.Project
	Status   model.ProjectStatus
	Slots    []scheduling.SlotDescriptor
	Capacity map[string]scheduling.SlotCapacity
}

// GetProjectOverview loads a project and its signups and computes everything
// a listing or detail view needs: derived status, the slot list, and
// confirmed/remaining counts per slot. Signups referencing slots that no
// longer exist are logged and skipped.
func GetProjectOverview(ctx context.Context, store db.Store, logger *zap.Logger, projectID string, now time.Time, policy scheduling.CapacityPolicy) (*ProjectOverview, error) {
	project, err := store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}

	signups, err := store.GetSignupsForProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	return buildOverview(project, signups, logger, now, policy)
}

// ListActiveProjects returns overviews for all projects with the given
// visibilities that are upcoming or in progress. Cancelled and completed
// projects are filtered out.
func ListActiveProjects(ctx context.Context, store db.Store, logger *zap.Logger, now time.Time, visibilities []model.Visibility, policy scheduling.CapacityPolicy) ([]ProjectOverview, error) {
	projects, err := store.ListProjects(ctx, visibilities)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	var active []ProjectOverview
	for i := range projects {
		project := &projects[i]

		status, err := scheduling.ResolveStatus(project, now)
		if err != nil {
			// Unrenderable project data should not take the listing down
			logger.Warn("Skipping project with malformed schedule",
				zap.String("project_id", project.ID),
				zap.Error(err))
			continue
		}
		if status != model.StatusUpcoming && status != model.StatusInProgress {
			continue
		}

		signups, err := store.GetSignupsForProject(ctx, project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch signups for project %s: %w", project.ID, err)
		}

		overview, err := buildOverview(project, signups, logger, now, policy)
		if err != nil {
			logger.Warn("Skipping project with malformed schedule",
				zap.String("project_id", project.ID),
				zap.Error(err))
			continue
		}
		active = append(active, *overview)
	}

	logger.Debug("Listed active projects",
		zap.Int("total", len(projects)),
		zap.Int("active", len(active)))

	return active, nil
}

func buildOverview(project *model.Project, signups []model.Signup, logger *zap.Logger, now time.Time, policy scheduling.CapacityPolicy) (*ProjectOverview, error) {
	status, err := scheduling.ResolveStatus(project, now)
	if err != nil {
		return nil, err
	}

	slots, err := scheduling.EnumerateSlots(project.Schedule)
	if err != nil {
		return nil, err
	}

	capacity, stale := scheduling.AggregateCapacity(slots, signups, policy)
	for _, s := range stale {
		logger.Warn("Signup references a slot that no longer exists",
			zap.String("project_id", project.ID),
			zap.String("signup_id", s.ID),
			zap.String("schedule_id", s.ScheduleID))
	}

	return &ProjectOverview{
		Project:  project,
		Status:   status,
		Slots:    slots,
		Capacity: capacity,
	}, nil
}
