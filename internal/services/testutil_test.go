package services

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/database"
	"github.com/openrecruit/ats-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ats_test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCandidate(t *testing.T, db *gorm.DB) *models.Candidate {
	t.Helper()

	candidate := &models.Candidate{
		Email:    fmt.Sprintf("%s@example.com", uuid.NewString()[:8]),
		FullName: "Test Candidate",
	}
	require.NoError(t, db.Create(candidate).Error)
	return candidate
}

func seedJob(t *testing.T, db *gorm.DB) *models.Job {
	t.Helper()

	job := &models.Job{
		Title:          "Backend Engineer",
		Department:     "Engineering",
		Description:    "Build and run services",
		Location:       "Remote",
		EmploymentType: "Full-time",
		Status:         models.JobStatusOpen,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// seedApplication creates a fresh SUBMITTED application with its own
// candidate, attached to job (or a new job when nil).
func seedApplication(t *testing.T, db *gorm.DB, job *models.Job) *models.Application {
	t.Helper()

	if job == nil {
		job = seedJob(t, db)
	}
	candidate := seedCandidate(t, db)

	app := &models.Application{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		Status:      models.StatusSubmitted,
		Version:     1,
		SubmittedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

// seedApplicationAt is seedApplication with explicit status and submission time.
func seedApplicationAt(t *testing.T, db *gorm.DB, job *models.Job, status models.ApplicationStatus, submittedAt time.Time) *models.Application {
	t.Helper()

	app := seedApplication(t, db, job)
	require.NoError(t, db.Model(app).Updates(map[string]any{
		"status":       status,
		"submitted_at": submittedAt,
	}).Error)
	app.Status = status
	app.SubmittedAt = submittedAt
	return app
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
