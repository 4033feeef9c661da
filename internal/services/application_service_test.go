package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/models"
)

func TestCreateApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	candidate := seedCandidate(t, db)
	job := seedJob(t, db)
	ctx := context.Background()

	app, err := svc.Create(ctx, &dtos.ApplicationCreateRequest{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		CoverLetter: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSubmitted, app.Status)
	assert.Equal(t, 1, app.Version)
	assert.False(t, app.SubmittedAt.IsZero())

	// Same pair again is a duplicate.
	_, err = svc.Create(ctx, &dtos.ApplicationCreateRequest{
		CandidateID: candidate.ID,
		JobID:       job.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateApplicationUnknownReferences(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	candidate := seedCandidate(t, db)
	job := seedJob(t, db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &dtos.ApplicationCreateRequest{
		CandidateID: uuid.New(),
		JobID:       job.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Create(ctx, &dtos.ApplicationCreateRequest{
		CandidateID: candidate.ID,
		JobID:       uuid.New(),
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetApplicationIncludesOrderedHistory(t *testing.T) {
	db := newTestDB(t)
	apps := NewApplicationService(db, testLogger())
	status := NewStatusService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	_, err := status.Transition(ctx, app.ID, models.StatusScreening, "r1", "")
	require.NoError(t, err)
	_, err = status.Transition(ctx, app.ID, models.StatusInterviewScheduled, "r1", "")
	require.NoError(t, err)

	loaded, err := apps.Get(ctx, app.ID)
	require.NoError(t, err)
	require.Len(t, loaded.StatusHistory, 2)
	assert.Equal(t, models.StatusSubmitted, loaded.StatusHistory[0].FromStatus)
	assert.Equal(t, models.StatusInterviewScheduled, loaded.StatusHistory[1].ToStatus)
	assert.NotEmpty(t, loaded.Candidate.Email)
	assert.NotEmpty(t, loaded.Job.Title)
}

func TestSoftDeleteHidesApplication(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	app := seedApplication(t, db, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, app.ID))

	_, err := svc.Get(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Deleting again is not-found: the row is already invisible.
	assert.ErrorIs(t, svc.Delete(ctx, app.ID), apperrors.ErrNotFound)
}

func TestListApplicationsFiltersAndPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	status := NewStatusService(db, testLogger())
	job := seedJob(t, db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		seedApplication(t, db, job)
	}
	screened := seedApplication(t, db, job)
	_, err := status.Transition(ctx, screened.ID, models.StatusScreening, "r1", "")
	require.NoError(t, err)

	apps, meta, err := svc.List(ctx, &dtos.ApplicationListQuery{
		JobID:  job.ID.String(),
		Status: "SCREENING",
	})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, screened.ID, apps[0].ID)
	assert.EqualValues(t, 1, meta.Total)

	// Multi-status filter.
	apps, meta, err = svc.List(ctx, &dtos.ApplicationListQuery{
		Status: "SUBMITTED,SCREENING",
	})
	require.NoError(t, err)
	assert.Len(t, apps, 4)
	assert.EqualValues(t, 4, meta.Total)

	// Pagination caps the page size and reports totals.
	apps, meta, err = svc.List(ctx, &dtos.ApplicationListQuery{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, apps, 2)
	assert.EqualValues(t, 4, meta.Total)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestListApplicationsDateRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	job := seedJob(t, db)
	ctx := context.Background()

	seedApplicationAt(t, db, job, models.StatusSubmitted, time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	seedApplicationAt(t, db, job, models.StatusSubmitted, time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))

	apps, _, err := svc.List(ctx, &dtos.ApplicationListQuery{
		AppliedFrom: "2026-08-01",
		AppliedTo:   "2026-08-31",
	})
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC), apps[0].SubmittedAt.UTC())
}

func TestListApplicationsRejectsMalformedDates(t *testing.T) {
	db := newTestDB(t)
	svc := NewApplicationService(db, testLogger())
	ctx := context.Background()

	_, _, err := svc.List(ctx, &dtos.ApplicationListQuery{AppliedFrom: "not-a-date"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applied_from")

	_, _, err = svc.List(ctx, &dtos.ApplicationListQuery{AppliedTo: "2026-13-99"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applied_to")
}
