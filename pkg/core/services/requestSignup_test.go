package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/riddhimanrana/lets-assist-core/pkg/core/model"
	"github.com/riddhimanrana/lets-assist-core/pkg/core/scheduling"
)

var testNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func TestRequestSignup_Admitted(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1"}
	result, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Signup.ID)
	assert.Equal(t, model.SignupPending, result.Signup.Status)
	assert.Equal(t, 4, result.RemainingAfter)
	require.Len(t, mock.reserved, 1)
}

func TestRequestSignup_AutoApprove(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1"}
	result, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, true, scheduling.CapacityPolicy{})
	require.NoError(t, err)

	assert.Equal(t, model.SignupApproved, result.Signup.Status)
}

func TestRequestSignup_AnonymousIdentity(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, AnonymousID: "anon-1"}
	result, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})
	require.NoError(t, err)
	assert.Equal(t, "anon-1", result.Signup.Identity())
}

func TestRequestSignup_IdentityRequired(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)

	tests := []struct {
		name string
		req  SignupRequest
	}{
		{"neither identity", SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID}},
		{"both identities", SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1", AnonymousID: "anon-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequestSignup(context.Background(), mock, zap.NewNop(), tt.req, testNow, false, scheduling.CapacityPolicy{})
			assert.Error(t, err)
		})
	}
}

func TestRequestSignup_UnknownSlot(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)

	req := SignupRequest{ProjectID: "p1", ScheduleID: "2025-06-01-0", UserID: "u1"}
	_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})

	var unknown *scheduling.UnknownSlotError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "2025-06-01-0", unknown.ScheduleID)
	assert.Empty(t, mock.reserved)
}

func TestRequestSignup_CancelledProject(t *testing.T) {
	mock := newMockStore()
	project := oneTimeTestProject("p1", 5)
	cancelledAt := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	project.CancelledAt = &cancelledAt
	mock.projects["p1"] = project

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1"}
	_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})

	var cancelled *scheduling.ProjectCancelledError
	require.True(t, errors.As(err, &cancelled))
	assert.Empty(t, mock.reserved)
}

func TestRequestSignup_SlotFull(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 2)
	mock.signups["p1"] = []model.Signup{
		{ID: "s1", ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1", Status: model.SignupApproved},
		{ID: "s2", ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u2", Status: model.SignupApproved},
	}

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u3"}
	_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})

	var full *scheduling.CapacityExceededError
	require.True(t, errors.As(err, &full))
	assert.Equal(t, 0, full.Remaining)
}

func TestRequestSignup_RaceLostAtReserve(t *testing.T) {
	// Snapshot says there is room but the store's atomic reserve reports the
	// slot filled in between
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 5)
	mock.reserveErr = &scheduling.CapacityExceededError{
		ScheduleID: scheduling.OneTimeScheduleID,
		Requested:  1,
		Remaining:  0,
	}

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u1"}
	_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, true, scheduling.CapacityPolicy{})

	var full *scheduling.CapacityExceededError
	require.True(t, errors.As(err, &full))
}

func TestRequestSignup_FillsSlotSequentially(t *testing.T) {
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 2)

	users := []string{"u1", "u2"}
	for _, user := range users {
		req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: user}
		_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, true, scheduling.CapacityPolicy{})
		require.NoError(t, err)
	}

	req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: "u3"}
	_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, true, scheduling.CapacityPolicy{})

	var full *scheduling.CapacityExceededError
	require.True(t, errors.As(err, &full))
}

func TestRequestSignup_PendingDoesNotConsume(t *testing.T) {
	// Without auto-approval, pending signups leave capacity untouched so the
	// organizer decides who gets the spots
	mock := newMockStore()
	mock.projects["p1"] = oneTimeTestProject("p1", 1)

	for _, user := range []string{"u1", "u2", "u3"} {
		req := SignupRequest{ProjectID: "p1", ScheduleID: scheduling.OneTimeScheduleID, UserID: user}
		_, err := RequestSignup(context.Background(), mock, zap.NewNop(), req, testNow, false, scheduling.CapacityPolicy{})
		require.NoError(t, err)
	}

	assert.Len(t, mock.reserved, 3)
}
