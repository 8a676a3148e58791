package application

import (
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// ApplyRequest - jobseeker applies to a job posting
type ApplyRequest struct {
	JobID       string  `json:"job_id"`
	JobseekerID string  `json:"-"` // from JWT
	CVURL       string  `json:"cv_url"`
	CoverLetter *string `json:"cover_letter,omitempty"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if validator.IsEmpty(r.CVURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "cv_url",
			Message: "cv_url is required; upload the CV first",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateStatusRequest - recruiter moves an application through the pipeline
type UpdateStatusRequest struct {
	ApplicationID  string  `json:"-"` // from URL
	CompanyID      string  `json:"-"` // from JWT
	Status         string  `json:"status"`
	RecruiterNotes *string `json:"recruiter_notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is required",
		})
	} else if _, ok := statusRank[Status(r.Status)]; !ok && Status(r.Status) != StatusRejected {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status is not a valid recruiter action",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ApplicationResponse is the JSON shape returned to clients.
type ApplicationResponse struct {
	ID             string   `json:"id"`
	JobID          string   `json:"job_id"`
	JobTitle       string   `json:"job_title,omitempty"`
	JobSlug        string   `json:"job_slug,omitempty"`
	CompanyName    string   `json:"company_name,omitempty"`
	JobseekerName  string   `json:"jobseeker_name,omitempty"`
	Status         string   `json:"status"`
	CVURL          string   `json:"cv_url"`
	CoverLetter    *string  `json:"cover_letter,omitempty"`
	RecruiterNotes *string  `json:"recruiter_notes,omitempty"`
	AppliedAt      string   `json:"applied_at"`
	MatchScore     *int     `json:"match_score,omitempty"`
	MatchHighlight []string `json:"match_highlights,omitempty"`
	Recommended    *bool    `json:"recommended,omitempty"`
}

func NewApplicationResponse(d ApplicationWithDetails) ApplicationResponse {
	return ApplicationResponse{
		ID:             d.ID,
		JobID:          d.JobID,
		JobTitle:       d.JobTitle,
		JobSlug:        d.JobSlug,
		CompanyName:    d.CompanyName,
		JobseekerName:  d.JobseekerName,
		Status:         string(d.Status),
		CVURL:          d.CVURL,
		CoverLetter:    d.CoverLetter,
		RecruiterNotes: d.RecruiterNotes,
		AppliedAt:      d.AppliedAt.Format(time.RFC3339),
	}
}

// NewScoredApplicationResponse attaches the advisory match fields only
// when the scorer produced a result.
func NewScoredApplicationResponse(s ScoredApplication) ApplicationResponse {
	resp := NewApplicationResponse(s.ApplicationWithDetails)
	if s.Match.Score > 0 || len(s.Match.Highlights) > 0 {
		score := s.Match.Score
		recommended := s.Match.Recommended
		resp.MatchScore = &score
		resp.MatchHighlight = s.Match.Highlights
		resp.Recommended = &recommended
	}
	return resp
}
