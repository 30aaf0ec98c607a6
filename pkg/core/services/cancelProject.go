package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/db"
)

// CancelProject marks a project as cancelled. The derived status becomes
// cancelled for every subsequent read and new signups are refused; existing
// signup records are left in place for the organizer's records.
func CancelProject(ctx context.Context, store db.ProjectStore, logger *zap.Logger, projectID string, now time.Time) error {
	if err := store.CancelProject(ctx, projectID, now.UTC()); err != nil {
		return fmt.Errorf("failed to cancel project: %w", err)
	}

	logger.Info("Project cancelled",
		zap.String("project_id", projectID),
		zap.Time("cancelled_at", now.UTC()))

	return nil
}
