package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// Signup lifecycle: pending -> approved | rejected, approved -> attended
// (after check-in). Cancellation deletes the record outright.

// ApproveSignup moves a pending signup to approved
func ApproveSignup(ctx context.Context, store db.SignupStore, logger *zap.Logger, projectID, signupID string) error {
	return transitionSignup(ctx, store, logger, projectID, signupID, model.SignupApproved, model.SignupPending)
}

// RejectSignup moves a pending signup to rejected
func RejectSignup(ctx context.Context, store db.SignupStore, logger *zap.Logger, projectID, signupID string) error {
	return transitionSignup(ctx, store, logger, projectID, signupID, model.SignupRejected, model.SignupPending)
}

// CheckInSignup marks an approved signup as attended
func CheckInSignup(ctx context.Context, store db.SignupStore, logger *zap.Logger, projectID, signupID string) error {
	return transitionSignup(ctx, store, logger, projectID, signupID, model.SignupAttended, model.SignupApproved)
}

// CancelSignup deletes a signup, releasing any capacity it consumed
func CancelSignup(ctx context.Context, store db.SignupStore, logger *zap.Logger, projectID, signupID string) error {
	signup, err := findSignup(ctx, store, projectID, signupID)
	if err != nil {
		return err
	}

	if err := store.DeleteSignup(ctx, signup.ID); err != nil {
		return fmt.Errorf("failed to delete signup: %w", err)
	}

	logger.Info("Signup cancelled",
		zap.String("project_id", projectID),
		zap.String("signup_id", signupID),
		zap.String("schedule_id", signup.ScheduleID))

	return nil
}

func transitionSignup(ctx context.Context, store db.SignupStore, logger *zap.Logger, projectID, signupID string, to model.SignupStatus, allowedFrom ...model.SignupStatus) error {
	signup, err := findSignup(ctx, store, projectID, signupID)
	if err != nil {
		return err
	}

	legal := false
	for _, from := range allowedFrom {
		if signup.Status == from {
			legal = true
			break
		}
	}
	if !legal {
		return fmt.Errorf("cannot move signup %s from %q to %q", signupID, signup.Status, to)
	}

	if err := store.UpdateSignupStatus(ctx, signupID, to); err != nil {
		return fmt.Errorf("failed to update signup status: %w", err)
	}

	logger.Info("Signup status updated",
		zap.String("project_id", projectID),
		zap.String("signup_id", signupID),
		zap.String("from", string(signup.Status)),
		zap.String("to", string(to)))

	return nil
}

func findSignup(ctx context.Context, store db.SignupStore, projectID, signupID string) (*model.Signup, error) {
	signups, err := store.GetSignupsForProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signups: %w", err)
	}

	for i := range signups {
		if signups[i].ID == signupID {
			return &signups[i], nil
		}
	}

	return nil, db.ErrNotFound
}
