package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Candidate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email     string   `gorm:"uniqueIndex;not null" json:"email"`
	FullName  string   `gorm:"not null" json:"full_name"`
	Phone     string   `json:"phone"`
	ResumeURL string   `json:"resume_url"`
	Skills    []string `gorm:"serializer:json" json:"skills"`

	// 'omitempty' prevents infinite loops when fetching a Candidate -> Applications -> Candidate -> ...
	Applications []Application `json:"applications,omitempty"`
}

func (c *Candidate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Job struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Title          string    `gorm:"not null;index" json:"title"`
	Department     string    `gorm:"not null;index" json:"department"`
	Description    string    `gorm:"type:text;not null" json:"description"`
	RequiredSkills []string  `gorm:"serializer:json" json:"required_skills"`
	Location       string    `gorm:"not null" json:"location"`
	EmploymentType string    `gorm:"not null" json:"employment_type"`
	SalaryMin      *int      `json:"salary_min"`
	SalaryMax      *int      `json:"salary_max"`
	Status         JobStatus `gorm:"type:varchar(50);default:'OPEN';index" json:"status"`

	Applications []Application `json:"applications,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// Application links one candidate to one job. At most one non-deleted
// application exists per (candidate, job) pair, enforced by uq_candidate_job.
type Application struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Foreign Keys
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_candidate_job" json:"candidate_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:uq_candidate_job" json:"job_id"`

	// Associations: GORM needs Preload() to fill these
	Candidate Candidate `json:"candidate,omitempty"`
	Job       Job       `json:"job,omitempty"`

	Status      ApplicationStatus `gorm:"type:varchar(50);not null;default:'SUBMITTED';index" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	ResumeData  map[string]any    `gorm:"serializer:json" json:"resume_data"`
	Score       *int              `json:"score"`

	// Version is the optimistic lock counter. Every status transition must
	// bump it inside the same UPDATE that checks it.
	Version int `gorm:"not null;default:1" json:"-"`

	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`

	// Append-only audit trail, ordered by changed_at ascending.
	StatusHistory []StatusHistory `gorm:"constraint:OnDelete:CASCADE" json:"status_history,omitempty"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.SubmittedAt.IsZero() {
		a.SubmittedAt = time.Now().UTC()
	}
	return nil
}

// IsTerminal reports whether the application has reached HIRED or REJECTED.
func (a *Application) IsTerminal() bool {
	return a.Status.Terminal()
}

// StatusHistory is one immutable audit record for a single status transition.
// Rows are only ever inserted; they disappear solely via the FK cascade when
// the parent application is hard-deleted. There is no soft delete here.
type StatusHistory struct {
	ID            uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uuid.UUID         `gorm:"type:uuid;not null;index:idx_status_history_app_date" json:"application_id"`
	FromStatus    ApplicationStatus `gorm:"type:varchar(50);not null" json:"from_status"`
	ToStatus      ApplicationStatus `gorm:"type:varchar(50);not null;index" json:"to_status"`

	// ChangedBy is a free-text actor: a user id, an email, or "system".
	ChangedBy string `gorm:"not null" json:"changed_by"`
	Notes     string `gorm:"type:text" json:"notes"`

	ChangedAt time.Time `gorm:"not null;index:idx_status_history_app_date" json:"changed_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *StatusHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.ChangedAt.IsZero() {
		h.ChangedAt = time.Now().UTC()
	}
	return nil
}
