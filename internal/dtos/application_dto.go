package dtos

import "github.com/google/uuid"

type ApplicationCreateRequest struct {
	CandidateID uuid.UUID      `json:"candidate_id" binding:"required"`
	JobID       uuid.UUID      `json:"job_id" binding:"required"`
	CoverLetter string         `json:"cover_letter"`
	ResumeData  map[string]any `json:"resume_data"`
	Score       *int           `json:"score" binding:"omitempty,min=0,max=100"`
}

type StatusChangeRequest struct {
	NewStatus string `json:"new_status" binding:"required"`
	ChangedBy string `json:"changed_by" binding:"required"`
	Notes     string `json:"notes"`
}

// ApplicationListQuery is bound from query parameters on GET /applications.
// Status accepts a single value or a comma-separated list.
type ApplicationListQuery struct {
	Page    int `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage int `form:"per_page,default=50" binding:"omitempty,min=1,max=100"`

	JobID       string `form:"job_id" binding:"omitempty,uuid"`
	CandidateID string `form:"candidate_id" binding:"omitempty,uuid"`
	Status      string `form:"status"`

	AppliedFrom string `form:"applied_from" binding:"omitempty,datetime=2006-01-02"`
	AppliedTo   string `form:"applied_to" binding:"omitempty,datetime=2006-01-02"`

	SortBy string `form:"sort_by,default=submitted_at" binding:"omitempty,oneof=submitted_at updated_at"`
	Order  string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}
