package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/models"
)

// ApplicationService handles application CRUD. Status changes never go
// through here; that is StatusService's job.
type ApplicationService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewApplicationService(db *gorm.DB, log *zap.Logger) *ApplicationService {
	return &ApplicationService{db: db, log: log}
}

// Create submits a new application in the initial SUBMITTED status. The
// candidate and job must exist and not be deleted, and the pair must not
// already have a live application.
func (s *ApplicationService) Create(ctx context.Context, req *dtos.ApplicationCreateRequest) (*models.Application, error) {
	var candidate models.Candidate
	if err := s.db.WithContext(ctx).First(&candidate, "id = ?", req.CandidateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", req.CandidateID, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load candidate", Err: err}
	}

	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", req.JobID, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load job", Err: err}
	}

	var existing int64
	err := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("candidate_id = ? AND job_id = ?", req.CandidateID, req.JobID).
		Count(&existing).Error
	if err != nil {
		return nil, &apperrors.StorageError{Op: "check duplicate application", Err: err}
	}
	if existing > 0 {
		return nil, fmt.Errorf("candidate has already applied to this job: %w", apperrors.ErrDuplicate)
	}

	app := &models.Application{
		CandidateID: req.CandidateID,
		JobID:       req.JobID,
		Status:      models.StatusSubmitted,
		CoverLetter: req.CoverLetter,
		ResumeData:  req.ResumeData,
		Score:       req.Score,
		Version:     1,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "create application", Err: err}
	}

	s.log.Info("application created",
		zap.String("application_id", app.ID.String()),
		zap.String("candidate_id", req.CandidateID.String()),
		zap.String("job_id", req.JobID.String()),
	)
	return app, nil
}

// Get returns an application with its candidate, job and full ordered
// status history.
func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := s.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Job").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC, created_at ASC")
		}).
		First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load application", Err: err}
	}
	return &app, nil
}

// List searches applications with filters, sorting and pagination.
func (s *ApplicationService) List(ctx context.Context, query *dtos.ApplicationListQuery) ([]models.Application, *dtos.PaginationMeta, error) {
	q := s.db.WithContext(ctx).Model(&models.Application{})

	if query.JobID != "" {
		q = q.Where("job_id = ?", query.JobID)
	}
	if query.CandidateID != "" {
		q = q.Where("candidate_id = ?", query.CandidateID)
	}
	if query.Status != "" {
		statuses := strings.Split(query.Status, ",")
		for i := range statuses {
			statuses[i] = strings.TrimSpace(statuses[i])
		}
		q = q.Where("status IN ?", statuses)
	}
	if query.AppliedFrom != "" {
		from, err := time.Parse("2006-01-02", query.AppliedFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid applied_from date %q: %w", query.AppliedFrom, err)
		}
		q = q.Where("submitted_at >= ?", from)
	}
	if query.AppliedTo != "" {
		to, err := time.Parse("2006-01-02", query.AppliedTo)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid applied_to date %q: %w", query.AppliedTo, err)
		}
		q = q.Where("submitted_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, &apperrors.StorageError{Op: "count applications", Err: err}
	}

	sortBy := query.SortBy
	if sortBy == "" {
		sortBy = "submitted_at"
	}
	order := query.Order
	if order == "" {
		order = "desc"
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 50
	}

	var apps []models.Application
	err := q.Preload("Candidate").Preload("Job").
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&apps).Error
	if err != nil {
		return nil, nil, &apperrors.StorageError{Op: "list applications", Err: err}
	}

	meta := &dtos.PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
	return apps, meta, nil
}

// Delete soft-deletes an application. Once marked, every lifecycle and read
// path treats it as not-found; the audit trail stays in place untouched.
func (s *ApplicationService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Application{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StorageError{Op: "delete application", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("application %s: %w", id, apperrors.ErrNotFound)
	}
	s.log.Info("application soft-deleted", zap.String("application_id", id.String()))
	return nil
}
