package scheduling

import (
	"fmt"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
)

// AdmissionResult reports a successful admission decision
type AdmissionResult struct {
	// RemainingAfter is the slot's remaining capacity once the requested
	// signups are admitted
	RemainingAfter int
}

// CheckAdmission decides whether a signup request for one slot may proceed
// given the project's resolved status and the slot's aggregated capacity. A
// nil slotCapacity means scheduleID matched no current slot.
//
// This is a pure decision over a capacity snapshot; it performs no write.
// Admitting for real requires the store's atomic reserve so a concurrent
// signup cannot take the last spot between check and insert.
func CheckAdmission(projectID, scheduleID string, status model.ProjectStatus, slotCapacity *SlotCapacity, requested int) (*AdmissionResult, error) {
	if requested < 1 {
		return nil, fmt.Errorf("requested count must be at least 1, got %d", requested)
	}

	if status == model.StatusCancelled {
		return nil, &ProjectCancelledError{ProjectID: projectID}
	}

	if slotCapacity == nil {
		return nil, &UnknownSlotError{ScheduleID: scheduleID}
	}

	if slotCapacity.Remaining < requested {
		return nil, &CapacityExceededError{
			ScheduleID: scheduleID,
			Requested:  requested,
			Remaining:  slotCapacity.Remaining,
		}
	}

	return &AdmissionResult{RemainingAfter: slotCapacity.Remaining - requested}, nil
}
