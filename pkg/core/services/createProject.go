package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// CreateProjectInput describes a new project. The schedule must already be a
// well-formed tagged union; use the model.New*Schedule constructors or
// BuildMultiDaySchedule.
type CreateProjectInput struct {
	Title       string           `validate:"required"`
	Description string
	Visibility  model.Visibility `validate:"required"`
	Schedule    model.Schedule
}

// CreateProject validates and persists a new project. Validation covers the
// struct fields, the schedule payload's shape, slot time ranges, positive
// capacities, and role-name uniqueness for multi-area schedules.
func CreateProject(ctx context.Context, store db.ProjectStore, logger *zap.Logger, input CreateProjectInput) (*model.Project, error) {
	if err := validate.Struct(&input); err != nil {
		return nil, fmt.Errorf("project validation failed: %w", err)
	}
	if !input.Visibility.IsValid() {
		return nil, fmt.Errorf("unknown visibility %q", input.Visibility)
	}

	if err := scheduling.ValidateSchedule(input.Schedule); err != nil {
		return nil, fmt.Errorf("schedule validation failed: %w", err)
	}

	project := &model.Project{
		ID:          uuid.New().String(),
		Title:       input.Title,
		Description: input.Description,
		Visibility:  input.Visibility,
		Schedule:    input.Schedule,
		CreatedAt:   time.Now().UTC(),
	}

	logger.Info("Creating project",
		zap.String("project_id", project.ID),
		zap.String("title", project.Title),
		zap.String("event_type", string(project.Schedule.EventType)))

	if err := store.InsertProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to insert project: %w", err)
	}

	slots, _ := scheduling.EnumerateSlots(project.Schedule)
	logger.Info("Project created successfully",
		zap.String("project_id", project.ID),
		zap.Int("slot_count", len(slots)))

	return project, nil
}
