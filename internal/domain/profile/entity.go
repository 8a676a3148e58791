package profile

import "time"

// JobseekerProfile is the submitted result of the jobseeker wizard.
type JobseekerProfile struct {
	ID     string
	UserID string

	FirstName string
	LastName  string
	Phone     string
	Address   string
	City      string
	IDNumber  string // NIK
	BirthDate *time.Time

	Summary   *string
	Skills    []string
	PhotoURL  *string
	CVURL     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts for display and email templates.
func (p JobseekerProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// RecruiterProfile is the submitted result of the recruiter wizard.
// The company is embedded: a recruiter registers their company in the
// same flow.
type RecruiterProfile struct {
	ID     string
	UserID string

	FirstName string
	LastName  string
	Position  string
	Phone     string

	CompanyID       string
	CompanyName     string
	CompanyIndustry string
	CompanyAddress  string
	CompanyCity     string
	CompanyLogoURL  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p RecruiterProfile) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
