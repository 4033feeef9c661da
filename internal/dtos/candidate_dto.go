package dtos

type CandidateCreateRequest struct {
	Email     string   `json:"email" binding:"required,email"`
	FullName  string   `json:"full_name" binding:"required"`
	Phone     string   `json:"phone"`
	ResumeURL string   `json:"resume_url"`
	Skills    []string `json:"skills"`
}

type CandidateUpdateRequest struct {
	FullName  *string   `json:"full_name"`
	Phone     *string   `json:"phone"`
	ResumeURL *string   `json:"resume_url"`
	Skills    *[]string `json:"skills"`
}
