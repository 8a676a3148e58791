package job

import "time"

// Job represents a job posting owned by a recruiter's company.
type Job struct {
	ID          string
	CompanyID   string
	RecruiterID string

	Title        string
	Slug         string
	Description  string
	Requirements string
	Location     string
	SalaryMin    *int64 // whole Rupiah
	SalaryMax    *int64
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobWithCompany carries the company display fields for public listings.
type JobWithCompany struct {
	Job
	CompanyName string
	CompanyLogo *string
}
