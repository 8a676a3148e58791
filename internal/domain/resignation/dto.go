package resignation

import (
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// SubmitRequest - jobseeker asks to leave an accepted position
type SubmitRequest struct {
	ApplicationID string `json:"application_id"`
	JobseekerID   string `json:"-"` // from JWT
	Reason        string `json:"reason"`
	LetterURL     string `json:"letter_url"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApplicationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "application_id",
			Message: "application_id is required",
		})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if validator.IsEmpty(r.LetterURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "letter_url",
			Message: "a resignation letter is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Decision values for DecideRequest.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// DecideRequest - recruiter approves or rejects a pending resignation
type DecideRequest struct {
	ResignationID  string  `json:"-"` // from URL
	RecruiterID    string  `json:"-"` // from JWT
	CompanyID      string  `json:"-"` // from JWT
	Decision       string  `json:"decision"`
	RecruiterNotes *string `json:"recruiter_notes,omitempty"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be APPROVE or REJECT",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResignationResponse is the JSON shape of a resignation request with
// its joined display fields.
type ResignationResponse struct {
	ID             string  `json:"id"`
	ApplicationID  string  `json:"application_id"`
	JobseekerID    string  `json:"jobseeker_id"`
	JobseekerName  string  `json:"jobseeker_name,omitempty"`
	JobTitle       string  `json:"job_title,omitempty"`
	CompanyName    string  `json:"company_name,omitempty"`
	Reason         string  `json:"reason"`
	LetterURL      string  `json:"letter_url"`
	Status         string  `json:"status"`
	RecruiterNotes *string `json:"recruiter_notes,omitempty"`
	ProcessedAt    *string `json:"processed_at,omitempty"`
	SubmittedAt    string  `json:"submitted_at"`
}

func NewResignationResponse(d ResignationWithDetails) ResignationResponse {
	resp := ResignationResponse{
		ID:             d.ID,
		ApplicationID:  d.ApplicationID,
		JobseekerID:    d.JobseekerID,
		JobseekerName:  d.JobseekerName,
		JobTitle:       d.JobTitle,
		CompanyName:    d.CompanyName,
		Reason:         d.Reason,
		LetterURL:      d.LetterURL,
		Status:         string(d.Status),
		RecruiterNotes: d.RecruiterNotes,
		SubmittedAt:    d.CreatedAt.Format(time.RFC3339),
	}
	if d.ProcessedAt != nil {
		processedAt := d.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	return resp
}

// StatsResponse is the JSON shape of the company resignation counters.
type StatsResponse struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// ListResponse bundles a company's resignation requests with counters,
// the way the recruiter dashboard consumes them.
type ListResponse struct {
	Resignations []ResignationResponse `json:"resignations"`
	Stats        StatsResponse         `json:"stats"`
}

func NewListResponse(items []ResignationWithDetails, stats Stats) ListResponse {
	resp := ListResponse{
		Resignations: make([]ResignationResponse, 0, len(items)),
		Stats: StatsResponse{
			Total:    stats.Total,
			Pending:  stats.Pending,
			Approved: stats.Approved,
			Rejected: stats.Rejected,
		},
	}
	for _, item := range items {
		resp.Resignations = append(resp.Resignations, NewResignationResponse(item))
	}
	return resp
}
