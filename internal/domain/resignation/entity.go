package resignation

import "time"

// Status represents the recruiter decision state of a resignation
// request. A request only ever moves PENDING -> APPROVED or
// PENDING -> REJECTED.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Resignation is a jobseeker's request to leave an accepted position.
// One request per application.
type Resignation struct {
	ID            string
	ApplicationID string
	JobseekerID   string

	Reason    string
	LetterURL string
	Status    Status

	RecruiterNotes *string
	ProcessedBy    *string
	ProcessedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResignationWithDetails carries joined display fields for listings and
// the company ownership check.
type ResignationWithDetails struct {
	Resignation
	JobTitle      string
	JobSlug       string
	CompanyID     string
	CompanyName   string
	JobseekerName string
}

// Stats are derived counts over a company's resignation requests,
// recomputed per request.
type Stats struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
}
