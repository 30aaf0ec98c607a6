package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// SignupRequest describes a signup attempt for one slot. Exactly one of
// UserID and AnonymousID must be set.
type SignupRequest struct {
	ProjectID   string
	ScheduleID  string
	UserID      string
	AnonymousID string
}

// SignupResult is the outcome of an admitted signup
type SignupResult struct {
	Signup *model.Signup
	// RemainingAfter is the slot's remaining capacity including this signup
	RemainingAfter int
}

// RequestSignup runs the full signup flow: load the project and its signups,
// resolve status, tally capacity, check admission, then reserve through the
// store's atomic check-and-insert. The pure admission check gives fast,
// user-facing rejections; the reserve re-checks under a lock so a concurrent
// request cannot take the last spot between snapshot and insert.
//
// Admission failures surface as the scheduling error types
// (UnknownSlotError, ProjectCancelledError, CapacityExceededError); callers
// map those to user messages.
func RequestSignup(ctx context.Context, store db.Store, logger *zap.Logger, req SignupRequest, now time.Time, autoApprove bool, policy scheduling.CapacityPolicy) (*SignupResult, error) {
	if (req.UserID == "") == (req.AnonymousID == "") {
		return nil, fmt.Errorf("exactly one of UserID and AnonymousID must be set")
	}

	overview, err := GetProjectOverview(ctx, store, logger, req.ProjectID, now, policy)
	if err != nil {
		return nil, err
	}

	var slotCapacity *scheduling.SlotCapacity
	if c, ok := overview.Capacity[req.ScheduleID]; ok {
		slotCapacity = &c
	}

	admission, err := scheduling.CheckAdmission(req.ProjectID, req.ScheduleID, overview.Status, slotCapacity, 1)
	if err != nil {
		return nil, err
	}

	status := model.SignupPending
	if autoApprove {
		status = model.SignupApproved
	}

	signup := &model.Signup{
		ID:          uuid.New().String(),
		ProjectID:   req.ProjectID,
		ScheduleID:  req.ScheduleID,
		UserID:      req.UserID,
		AnonymousID: req.AnonymousID,
		Status:      status,
		CreatedAt:   now.UTC(),
	}

	logger.Info("Reserving signup",
		zap.String("project_id", req.ProjectID),
		zap.String("schedule_id", req.ScheduleID),
		zap.String("signup_id", signup.ID),
		zap.String("status", string(status)))

	if err := store.ReserveSignup(ctx, signup, slotCapacity.Capacity, policy); err != nil {
		return nil, err
	}

	return &SignupResult{
		Signup:         signup,
		RemainingAfter: admission.RemainingAfter,
	}, nil
}
