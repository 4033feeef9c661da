package services

import (
	"github.com/openrecruit/ats-backend/internal/apperrors"
	"github.com/openrecruit/ats-backend/internal/models"
)

// Status transition policy.
//
// Pure functions over the status graph in models: no storage, no side
// effects. StatusService consults these before touching the database, and
// handlers use AllowedNextStatuses for discovery endpoints.

// ValidateTransition decides whether current -> proposed is a legal status
// change. It returns nil for a legal edge, otherwise an
// *apperrors.InvalidTransitionError describing the rejection:
//
//  1. proposed equals current            -> no-change rejection
//  2. current is HIRED or REJECTED      -> terminal-state rejection
//  3. edge missing from the status graph -> illegal-transition rejection,
//     carrying the full allowed-next list
func ValidateTransition(current, proposed models.ApplicationStatus) error {
	allowed := models.AllowedNext(current)

	if current == proposed {
		return apperrors.NewNoChangeError(string(current), statusStrings(allowed))
	}

	if current.Terminal() {
		return apperrors.NewTerminalStateError(string(current), string(proposed))
	}

	for _, next := range allowed {
		if next == proposed {
			return nil
		}
	}
	return apperrors.NewIllegalTransitionError(string(current), string(proposed), statusStrings(allowed))
}

// AllowedNextStatuses returns the legal next statuses from current, empty for
// terminal states.
func AllowedNextStatuses(current models.ApplicationStatus) []models.ApplicationStatus {
	return models.AllowedNext(current)
}

func statusStrings(statuses []models.ApplicationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
