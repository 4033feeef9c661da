package models

// ApplicationStatus is the pipeline stage of a job application.
//
// Flow: SUBMITTED -> SCREENING -> INTERVIEW_SCHEDULED -> INTERVIEWED -> OFFER_EXTENDED -> HIRED
// REJECTED is reachable from every non-terminal stage.
type ApplicationStatus string

const (
	StatusSubmitted          ApplicationStatus = "SUBMITTED"
	StatusScreening          ApplicationStatus = "SCREENING"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusInterviewed        ApplicationStatus = "INTERVIEWED"
	StatusOfferExtended      ApplicationStatus = "OFFER_EXTENDED"
	StatusHired              ApplicationStatus = "HIRED"
	StatusRejected           ApplicationStatus = "REJECTED"
)

// JobStatus is the lifecycle state of a job posting.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusOpen      JobStatus = "OPEN"
	JobStatusClosed    JobStatus = "CLOSED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

// allStatuses is the fixed pipeline order. Analytics and validation both
// depend on this order, so new statuses must be inserted in flow position.
var allStatuses = []ApplicationStatus{
	StatusSubmitted,
	StatusScreening,
	StatusInterviewScheduled,
	StatusInterviewed,
	StatusOfferExtended,
	StatusHired,
	StatusRejected,
}

// statusTransitions is the single source of truth for legal status changes.
// Invariants: every non-terminal status has an edge to REJECTED, no status
// has an edge to itself, and terminal statuses have no outgoing edges.
var statusTransitions = map[ApplicationStatus][]ApplicationStatus{
	StatusSubmitted:          {StatusScreening, StatusRejected},
	StatusScreening:          {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusInterviewed, StatusRejected},
	StatusInterviewed:        {StatusOfferExtended, StatusRejected},
	StatusOfferExtended:      {StatusHired, StatusRejected},
	StatusHired:              {},
	StatusRejected:           {},
}

// AllStatuses returns every application status in pipeline order.
func AllStatuses() []ApplicationStatus {
	out := make([]ApplicationStatus, len(allStatuses))
	copy(out, allStatuses)
	return out
}

// Valid reports whether s is one of the enumerated statuses.
func (s ApplicationStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Terminal reports whether s has no legal outgoing transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusHired || s == StatusRejected
}

// AllowedNext returns the statuses reachable from current in one transition.
// Terminal statuses return an empty slice. The result is a copy; callers may
// mutate it freely.
func AllowedNext(current ApplicationStatus) []ApplicationStatus {
	allowed := statusTransitions[current]
	out := make([]ApplicationStatus, len(allowed))
	copy(out, allowed)
	return out
}
