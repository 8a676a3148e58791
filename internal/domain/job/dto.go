package job

import (
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// CreateJobRequest - recruiter publishes a job posting
type CreateJobRequest struct {
	RecruiterID  string `json:"-"` // from JWT
	CompanyID    string `json:"-"` // from JWT
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Location     string `json:"location"`
	SalaryMin    *int64 `json:"salary_min,omitempty"`
	SalaryMax    *int64 `json:"salary_max,omitempty"`
}

func (r *CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.Slug) {
		errs = append(errs, validator.ValidationError{
			Field:   "slug",
			Message: "slug is required",
		})
	} else if !validator.IsValidSlug(r.Slug) {
		errs = append(errs, validator.ValidationError{
			Field:   "slug",
			Message: "slug must be lowercase letters, digits and dashes",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if validator.IsEmpty(r.Location) {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location is required",
		})
	}
	if r.SalaryMin != nil && *r.SalaryMin < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_min",
			Message: "salary_min cannot be negative",
		})
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMax < *r.SalaryMin {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_max",
			Message: "salary_max must be at least salary_min",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateJobRequest - partial update of a posting
type UpdateJobRequest struct {
	JobID        string  `json:"-"` // from URL
	CompanyID    string  `json:"-"` // from JWT
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	Requirements *string `json:"requirements,omitempty"`
	Location     *string `json:"location,omitempty"`
	SalaryMin    *int64  `json:"salary_min,omitempty"`
	SalaryMax    *int64  `json:"salary_max,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title cannot be empty",
		})
	}
	if r.SalaryMin != nil && *r.SalaryMin < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_min",
			Message: "salary_min cannot be negative",
		})
	}
	if r.SalaryMin != nil && r.SalaryMax != nil && *r.SalaryMax < *r.SalaryMin {
		errs = append(errs, validator.ValidationError{
			Field:   "salary_max",
			Message: "salary_max cannot be below salary_min",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// JobResponse is the JSON shape of a job posting.
type JobResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Slug         string  `json:"slug"`
	Description  string  `json:"description"`
	Requirements string  `json:"requirements"`
	Location     string  `json:"location"`
	SalaryMin    *int64  `json:"salary_min,omitempty"`
	SalaryMax    *int64  `json:"salary_max,omitempty"`
	IsActive     bool    `json:"is_active"`
	CompanyName  string  `json:"company_name,omitempty"`
	CompanyLogo  *string `json:"company_logo,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

func NewJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Title:        j.Title,
		Slug:         j.Slug,
		Description:  j.Description,
		Requirements: j.Requirements,
		Location:     j.Location,
		SalaryMin:    j.SalaryMin,
		SalaryMax:    j.SalaryMax,
		IsActive:     j.IsActive,
		CreatedAt:    j.CreatedAt.Format(time.RFC3339),
	}
}

func NewJobListingResponse(j JobWithCompany) JobResponse {
	resp := NewJobResponse(j.Job)
	resp.CompanyName = j.CompanyName
	resp.CompanyLogo = j.CompanyLogo
	return resp
}
