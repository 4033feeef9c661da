package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/models"
)

type JobService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewJobService(db *gorm.DB, log *zap.Logger) *JobService {
	return &JobService{db: db, log: log}
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobCreateRequest) (*models.Job, error) {
	status := models.JobStatusOpen
	if req.Status != "" {
		status = models.JobStatus(req.Status)
	}

	job := &models.Job{
		Title:          req.Title,
		Department:     req.Department,
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		Status:         status,
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "create job", Err: err}
	}
	s.log.Info("job created", zap.String("job_id", job.ID.String()), zap.String("title", job.Title))
	return job, nil
}

func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load job", Err: err}
	}
	return &job, nil
}

func (s *JobService) List(ctx context.Context, query *dtos.JobListQuery) ([]models.Job, *dtos.PaginationMeta, error) {
	q := s.db.WithContext(ctx).Model(&models.Job{})
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}
	if query.Department != "" {
		q = q.Where("department = ?", query.Department)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, nil, &apperrors.StorageError{Op: "count jobs", Err: err}
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	perPage := query.PerPage
	if perPage < 1 {
		perPage = 50
	}

	var jobs []models.Job
	err := q.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&jobs).Error
	if err != nil {
		return nil, nil, &apperrors.StorageError{Op: "list jobs", Err: err}
	}

	meta := &dtos.PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
	return jobs, meta, nil
}

func (s *JobService) Update(ctx context.Context, id uuid.UUID, req *dtos.JobUpdateRequest) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.EmploymentType != nil {
		updates["employment_type"] = *req.EmploymentType
	}
	if req.SalaryMin != nil {
		updates["salary_min"] = *req.SalaryMin
	}
	if req.SalaryMax != nil {
		updates["salary_max"] = *req.SalaryMax
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.RequiredSkills != nil {
		job.RequiredSkills = *req.RequiredSkills
		if err := s.db.WithContext(ctx).Model(job).Update("required_skills", job.RequiredSkills).Error; err != nil {
			return nil, &apperrors.StorageError{Op: "update job", Err: err}
		}
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
			return nil, &apperrors.StorageError{Op: "update job", Err: err}
		}
	}
	return s.Get(ctx, id)
}

func (s *JobService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StorageError{Op: "delete job", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("job %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
