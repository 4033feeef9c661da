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

type CandidateService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewCandidateService(db *gorm.DB, log *zap.Logger) *CandidateService {
	return &CandidateService{db: db, log: log}
}

func (s *CandidateService) Create(ctx context.Context, req *dtos.CandidateCreateRequest) (*models.Candidate, error) {
	var existing int64
	err := s.db.WithContext(ctx).Model(&models.Candidate{}).
		Where("email = ?", req.Email).
		Count(&existing).Error
	if err != nil {
		return nil, &apperrors.StorageError{Op: "check candidate email", Err: err}
	}
	if existing > 0 {
		return nil, fmt.Errorf("candidate with email %s already exists: %w", req.Email, apperrors.ErrDuplicate)
	}

	candidate := &models.Candidate{
		Email:     req.Email,
		FullName:  req.FullName,
		Phone:     req.Phone,
		ResumeURL: req.ResumeURL,
		Skills:    req.Skills,
	}
	if err := s.db.WithContext(ctx).Create(candidate).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "create candidate", Err: err}
	}
	s.log.Info("candidate created", zap.String("candidate_id", candidate.ID.String()))
	return candidate, nil
}

func (s *CandidateService) Get(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := s.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("candidate %s: %w", id, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load candidate", Err: err}
	}
	return &candidate, nil
}

func (s *CandidateService) List(ctx context.Context, page, perPage int) ([]models.Candidate, *dtos.PaginationMeta, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Candidate{}).Count(&total).Error; err != nil {
		return nil, nil, &apperrors.StorageError{Op: "count candidates", Err: err}
	}

	var candidates []models.Candidate
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&candidates).Error
	if err != nil {
		return nil, nil, &apperrors.StorageError{Op: "list candidates", Err: err}
	}

	meta := &dtos.PaginationMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int((total + int64(perPage) - 1) / int64(perPage)),
	}
	return candidates, meta, nil
}

func (s *CandidateService) Update(ctx context.Context, id uuid.UUID, req *dtos.CandidateUpdateRequest) (*models.Candidate, error) {
	candidate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.ResumeURL != nil {
		updates["resume_url"] = *req.ResumeURL
	}
	if req.Skills != nil {
		candidate.Skills = *req.Skills
		if err := s.db.WithContext(ctx).Model(candidate).Update("skills", candidate.Skills).Error; err != nil {
			return nil, &apperrors.StorageError{Op: "update candidate", Err: err}
		}
	}
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(candidate).Updates(updates).Error; err != nil {
			return nil, &apperrors.StorageError{Op: "update candidate", Err: err}
		}
	}
	return s.Get(ctx, id)
}

func (s *CandidateService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Candidate{}, "id = ?", id)
	if res.Error != nil {
		return &apperrors.StorageError{Op: "delete candidate", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("candidate %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}
