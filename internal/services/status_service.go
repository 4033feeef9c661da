package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/models"
)

// StatusService executes status transitions as single atomic units of work:
// load, validate against the policy, then commit the new status together with
// exactly one audit record, or nothing at all.
type StatusService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewStatusService(db *gorm.DB, log *zap.Logger) *StatusService {
	return &StatusService{db: db, log: log}
}

// Transition moves an application to newStatus on behalf of changedBy.
//
// Error kinds:
//   - apperrors.ErrNotFound if the id is unknown or soft-deleted
//   - *apperrors.InvalidTransitionError if the policy rejects the change
//   - apperrors.ErrConflict if a concurrent transition won the version check;
//     the caller must re-fetch and decide, nothing is retried here
//   - *apperrors.StorageError for any other persistence failure
//
// On success the returned application carries its full ordered history.
func (s *StatusService) Transition(ctx context.Context, appID uuid.UUID, newStatus models.ApplicationStatus, changedBy, notes string) (*models.Application, error) {
	var app models.Application
	if err := s.db.WithContext(ctx).First(&app, "id = ?", appID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Soft-deleted rows are filtered out by gorm.DeletedAt, so
			// they surface here as not-found. Expected outcome, not an error.
			s.log.Debug("transition target not found", zap.String("application_id", appID.String()))
			return nil, fmt.Errorf("application %s: %w", appID, apperrors.ErrNotFound)
		}
		return nil, &apperrors.StorageError{Op: "load application", Err: err}
	}

	return s.transitionLoaded(ctx, &app, newStatus, changedBy, notes)
}

// transitionLoaded runs the validate-and-commit half of Transition against an
// already-loaded snapshot. The snapshot's Version is what the compare-and-swap
// checks, so a stale snapshot loses cleanly with ErrConflict.
func (s *StatusService) transitionLoaded(ctx context.Context, app *models.Application, newStatus models.ApplicationStatus, changedBy, notes string) (*models.Application, error) {
	if err := ValidateTransition(app.Status, newStatus); err != nil {
		s.log.Debug("transition rejected by policy",
			zap.String("application_id", app.ID.String()),
			zap.String("current_status", string(app.Status)),
			zap.String("requested_status", string(newStatus)),
		)
		return nil, err
	}

	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Compare-and-swap on the version column. Two callers racing from
		// the same snapshot both pass validation, but only the first UPDATE
		// matches; the loser sees zero rows and aborts with no writes.
		res := tx.Model(&models.Application{}).
			Where("id = ? AND version = ?", app.ID, app.Version).
			Updates(map[string]any{
				"status":     newStatus,
				"version":    app.Version + 1,
				"updated_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrConflict
		}

		entry := models.StatusHistory{
			ApplicationID: app.ID,
			FromStatus:    app.Status,
			ToStatus:      newStatus,
			ChangedBy:     changedBy,
			Notes:         notes,
			ChangedAt:     now,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.log.Info("transition lost version check to concurrent update",
				zap.String("application_id", app.ID.String()),
				zap.Int("version", app.Version),
			)
			return nil, fmt.Errorf("application %s: %w", app.ID, apperrors.ErrConflict)
		}
		s.log.Error("transition commit failed",
			zap.String("application_id", app.ID.String()),
			zap.Error(err),
		)
		return nil, &apperrors.StorageError{Op: "commit transition", Err: err}
	}

	s.log.Info("application status changed",
		zap.String("application_id", app.ID.String()),
		zap.String("from_status", string(app.Status)),
		zap.String("to_status", string(newStatus)),
		zap.String("changed_by", changedBy),
	)

	var updated models.Application
	if err := s.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("changed_at ASC, created_at ASC")
		}).
		First(&updated, "id = ?", app.ID).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "reload application", Err: err}
	}
	return &updated, nil
}

// AllowedNext returns the legal next statuses from current. Exposed here so
// the API layer has one engine entry point for transition discovery.
func (s *StatusService) AllowedNext(current models.ApplicationStatus) []models.ApplicationStatus {
	return AllowedNextStatuses(current)
}

// History returns the full audit trail for an application, oldest first.
func (s *StatusService) History(ctx context.Context, appID uuid.UUID) ([]models.StatusHistory, error) {
	var exists int64
	if err := s.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", appID).Count(&exists).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "load application", Err: err}
	}
	if exists == 0 {
		return nil, fmt.Errorf("application %s: %w", appID, apperrors.ErrNotFound)
	}

	var history []models.StatusHistory
	if err := s.db.WithContext(ctx).
		Where("application_id = ?", appID).
		Order("changed_at ASC, created_at ASC").
		Find(&history).Error; err != nil {
		return nil, &apperrors.StorageError{Op: "load status history", Err: err}
	}
	return history, nil
}
