package dtos

type JobCreateRequest struct {
	Title          string `json:"title" binding:"required"`
	Department     string `json:"department" binding:"required"`
	Description    string `json:"description" binding:"required"`
	Location       string `json:"location" binding:"required"`
	EmploymentType string `json:"employment_type" binding:"required"`

	// Optional fields
	RequiredSkills []string `json:"required_skills"`
	SalaryMin      *int     `json:"salary_min"`
	SalaryMax      *int     `json:"salary_max"`
	Status         string   `json:"status" binding:"omitempty,oneof=DRAFT OPEN CLOSED CANCELLED"` // Defaults to "OPEN" if empty
}

type JobUpdateRequest struct {
	Title          *string   `json:"title"`
	Department     *string   `json:"department"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	EmploymentType *string   `json:"employment_type"`
	RequiredSkills *[]string `json:"required_skills"`
	SalaryMin      *int      `json:"salary_min"`
	SalaryMax      *int      `json:"salary_max"`
	Status         *string   `json:"status" binding:"omitempty,oneof=DRAFT OPEN CLOSED CANCELLED"`
}

type JobListQuery struct {
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page,default=50" binding:"omitempty,min=1,max=100"`
	Status     string `form:"status" binding:"omitempty,oneof=DRAFT OPEN CLOSED CANCELLED"`
	Department string `form:"department"`
}
