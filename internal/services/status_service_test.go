package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/models"
)

func TestTransitionScenario(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	// SUBMITTED -> SCREENING succeeds with one audit record.
	updated, err := svc.Transition(ctx, app.ID, models.StatusScreening, "r1", "ok")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScreening, updated.Status)
	require.Len(t, updated.StatusHistory, 1)
	assert.Equal(t, models.StatusSubmitted, updated.StatusHistory[0].FromStatus)
	assert.Equal(t, models.StatusScreening, updated.StatusHistory[0].ToStatus)
	assert.Equal(t, "r1", updated.StatusHistory[0].ChangedBy)

	// SCREENING -> HIRED skips stages and is rejected with the allowed list.
	_, err = svc.Transition(ctx, app.ID, models.StatusHired, "r1", "")
	var invalid *apperrors.InvalidTransitionError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, []string{"INTERVIEW_SCHEDULED", "REJECTED"}, invalid.Allowed)

	// SCREENING -> REJECTED succeeds; two audit records total.
	updated, err = svc.Transition(ctx, app.ID, models.StatusRejected, "r1", "no fit")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, "no fit", updated.StatusHistory[1].Notes)

	// REJECTED is terminal.
	_, err = svc.Transition(ctx, app.ID, models.StatusScreening, "r1", "")
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, apperrors.TransitionTerminalState, invalid.Kind)
}

func TestAuditTrailGrowthAndChain(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	path := []models.ApplicationStatus{
		models.StatusScreening,
		models.StatusInterviewScheduled,
		models.StatusInterviewed,
		models.StatusOfferExtended,
		models.StatusHired,
	}
	for _, next := range path {
		_, err := svc.Transition(ctx, app.ID, next, "system", "")
		require.NoError(t, err)
	}

	history, err := svc.History(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, history, len(path))

	// Record 1 starts at the creation status; each record's to_status is the
	// next record's from_status; changed_at never decreases.
	assert.Equal(t, models.StatusSubmitted, history[0].FromStatus)
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i-1].ToStatus, history[i].FromStatus)
		assert.False(t, history[i].ChangedAt.Before(history[i-1].ChangedAt))
	}
	assert.Equal(t, models.StatusHired, history[len(history)-1].ToStatus)
}

func TestIdempotentRejectionCausesNoWrites(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	var before models.Application
	require.NoError(t, db.First(&before, "id = ?", app.ID).Error)

	for i := 0; i < 2; i++ {
		_, err := svc.Transition(ctx, app.ID, models.StatusHired, "r1", "")
		var invalid *apperrors.InvalidTransitionError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, apperrors.TransitionIllegal, invalid.Kind)
	}

	var after models.Application
	require.NoError(t, db.First(&after, "id = ?", app.ID).Error)
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)

	var count int64
	require.NoError(t, db.Model(&models.StatusHistory{}).
		Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestTransitionUnknownApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())

	_, err := svc.Transition(context.Background(), uuid.New(), models.StatusScreening, "r1", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransitionSoftDeletedApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)

	require.NoError(t, db.Delete(&models.Application{}, "id = ?", app.ID).Error)

	_, err := svc.Transition(context.Background(), app.ID, models.StatusScreening, "r1", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The soft delete left the audit trail untouched.
	var count int64
	require.NoError(t, db.Model(&models.StatusHistory{}).
		Where("application_id = ?", app.ID).Count(&count).Error)
	assert.Zero(t, count)
}

// TestConcurrentTransitionConflict replays the lost-update race: two callers
// read the same snapshot before either commits. The version check lets
// exactly one through; the loser gets Conflict and writes nothing.
func TestConcurrentTransitionConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	var first, second models.Application
	require.NoError(t, db.First(&first, "id = ?", app.ID).Error)
	require.NoError(t, db.First(&second, "id = ?", app.ID).Error)

	updated, err := svc.transitionLoaded(ctx, &first, models.StatusScreening, "r1", "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusScreening, updated.Status)

	_, err = svc.transitionLoaded(ctx, &second, models.StatusRejected, "r2", "")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	// Exactly one audit record; the chain is intact.
	history, err := svc.History(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusSubmitted, history[0].FromStatus)
	assert.Equal(t, models.StatusScreening, history[0].ToStatus)

	var current models.Application
	require.NoError(t, db.First(&current, "id = ?", app.ID).Error)
	assert.Equal(t, models.StatusScreening, current.Status)
	assert.Equal(t, 2, current.Version)
}

func TestTransitionRefreshesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)

	var before models.Application
	require.NoError(t, db.First(&before, "id = ?", app.ID).Error)

	updated, err := svc.Transition(context.Background(), app.ID, models.StatusScreening, "r1", "")
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(before.UpdatedAt) || updated.UpdatedAt.Equal(before.UpdatedAt))
	assert.Equal(t, 2, updated.Version)
}

func TestHistoryUnknownApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewStatusService(db, testLogger())

	_, err := svc.History(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
