package contract

import (
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// WorkerEntry is one row of a batch submission form.
type WorkerEntry struct {
	ApplicationID string  `json:"application_id"`
	JobseekerID   string  `json:"jobseeker_id"`
	JobTitle      string  `json:"job_title"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD
	EndDate       string  `json:"end_date"`   // YYYY-MM-DD
	Salary        int64   `json:"salary"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateBatchRequest - recruiter submits accepted applicants as a batch
type CreateBatchRequest struct {
	RecruiterID     string        `json:"-"` // from JWT
	CompanyID       string        `json:"-"` // from JWT
	Workers         []WorkerEntry `json:"workers"`
	RecruiterDocURL *string       `json:"recruiter_doc_url,omitempty"`
}

func (r *CreateBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Workers) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workers",
			Message: "at least one worker is required",
		})
		return errs
	}

	for i, w := range r.Workers {
		field := func(name string) string {
			return "workers[" + validator.Itoa(i) + "]." + name
		}

		if validator.IsEmpty(w.ApplicationID) {
			errs = append(errs, validator.ValidationError{
				Field:   field("application_id"),
				Message: "application_id is required",
			})
		}
		if validator.IsEmpty(w.JobseekerID) {
			errs = append(errs, validator.ValidationError{
				Field:   field("jobseeker_id"),
				Message: "jobseeker_id is required",
			})
		}
		if validator.IsEmpty(w.JobTitle) {
			errs = append(errs, validator.ValidationError{
				Field:   field("job_title"),
				Message: "job_title is required",
			})
		}

		start, startOK := validator.IsValidDate(w.StartDate)
		if !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   field("start_date"),
				Message: "start_date is required in YYYY-MM-DD format",
			})
		}
		end, endOK := validator.IsValidDate(w.EndDate)
		if !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   field("end_date"),
				Message: "end_date is required in YYYY-MM-DD format",
			})
		}
		if startOK && endOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   field("end_date"),
				Message: "end_date must be on or after start_date",
			})
		}

		if w.Salary <= 0 {
			errs = append(errs, validator.ValidationError{
				Field:   field("salary"),
				Message: "salary must be a positive amount in Rupiah",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Decision values for DecideBatchRequest.
const (
	DecisionApprove = "APPROVE"
	DecisionReject  = "REJECT"
)

// DecideBatchRequest - admin approves or rejects a pending batch
type DecideBatchRequest struct {
	BatchID             string  `json:"-"` // from URL
	AdminID             string  `json:"-"` // from JWT
	Decision            string  `json:"decision"`
	AdminNotes          string  `json:"admin_notes"`
	AdminResponseDocURL *string `json:"admin_response_doc_url,omitempty"`
}

func (r *DecideBatchRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Decision != DecisionApprove && r.Decision != DecisionReject {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be APPROVE or REJECT",
		})
	}

	if r.Decision == DecisionReject && validator.IsEmpty(r.AdminNotes) {
		errs = append(errs, validator.ValidationError{
			Field:   "admin_notes",
			Message: "admin_notes is required when rejecting",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// TerminateWorkerRequest - recruiter ends an active contract early
type TerminateWorkerRequest struct {
	WorkerID  string `json:"worker_id"`
	CompanyID string `json:"-"` // from JWT
	Reason    string `json:"reason"`
}

func (r *TerminateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// WorkerResponse is the JSON shape of a worker including the derived
// employment status at response time.
type WorkerResponse struct {
	ID                string  `json:"id"`
	ApplicationID     string  `json:"application_id"`
	JobseekerID       string  `json:"jobseeker_id"`
	JobseekerName     string  `json:"jobseeker_name,omitempty"`
	JobTitle          string  `json:"job_title"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	Salary            int64   `json:"salary"`
	Notes             *string `json:"notes,omitempty"`
	EmploymentStatus  string  `json:"employment_status"`
	TerminatedAt      *string `json:"terminated_at,omitempty"`
	TerminationReason *string `json:"termination_reason,omitempty"`
}

// BatchResponse is the JSON shape of a batch with its workers.
type BatchResponse struct {
	ID                  string           `json:"id"`
	RecruiterID         string           `json:"recruiter_id"`
	Status              string           `json:"status"`
	RecruiterDocURL     *string          `json:"recruiter_doc_url,omitempty"`
	AdminResponseDocURL *string          `json:"admin_response_doc_url,omitempty"`
	AdminNotes          *string          `json:"admin_notes,omitempty"`
	ProcessedAt         *string          `json:"processed_at,omitempty"`
	Workers             []WorkerResponse `json:"workers"`
	CreatedAt           string           `json:"created_at"`
	UpdatedAt           string           `json:"updated_at"`
}

// NewWorkerResponse derives the employment status against now.
func NewWorkerResponse(w Worker, jobseekerName string, now time.Time) WorkerResponse {
	resp := WorkerResponse{
		ID:               w.ID,
		ApplicationID:    w.ApplicationID,
		JobseekerID:      w.JobseekerID,
		JobseekerName:    jobseekerName,
		JobTitle:         w.JobTitle,
		StartDate:        w.StartDate.Format("2006-01-02"),
		EndDate:          w.EndDate.Format("2006-01-02"),
		Salary:           w.Salary,
		Notes:            w.Notes,
		EmploymentStatus: string(w.EmploymentStatus(now)),
	}
	if w.TerminatedAt != nil {
		terminatedAt := w.TerminatedAt.Format(time.RFC3339)
		resp.TerminatedAt = &terminatedAt
		resp.TerminationReason = w.TerminationReason
	}
	return resp
}

// NewBatchResponse builds a response with worker statuses derived at now.
func NewBatchResponse(b Batch, now time.Time) BatchResponse {
	resp := BatchResponse{
		ID:                  b.ID,
		RecruiterID:         b.RecruiterID,
		Status:              string(b.Status),
		RecruiterDocURL:     b.RecruiterDocURL,
		AdminResponseDocURL: b.AdminResponseDocURL,
		AdminNotes:          b.AdminNotes,
		Workers:             make([]WorkerResponse, 0, len(b.Workers)),
		CreatedAt:           b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           b.UpdatedAt.Format(time.RFC3339),
	}
	if b.ProcessedAt != nil {
		processedAt := b.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &processedAt
	}
	for _, w := range b.Workers {
		resp.Workers = append(resp.Workers, NewWorkerResponse(w, "", now))
	}
	return resp
}

// RegisteredWorkerResponse is a worker row on the company workforce
// listing, including the status of the batch it was registered under.
type RegisteredWorkerResponse struct {
	WorkerResponse
	BatchStatus string `json:"batch_status"`
}

func NewRegisteredWorkerResponse(w WorkerWithDetails, now time.Time) RegisteredWorkerResponse {
	return RegisteredWorkerResponse{
		WorkerResponse: NewWorkerResponse(w.Worker, w.JobseekerName, now),
		BatchStatus:    string(w.BatchStatus),
	}
}

// StatsResponse is the JSON shape of the company registration counters.
type StatsResponse struct {
	AcceptedUnregistered int `json:"accepted_unregistered"`
	PendingBatches       int `json:"pending_batches"`
	ApprovedBatches      int `json:"approved_batches"`
	RejectedBatches      int `json:"rejected_batches"`
	RegisteredWorkers    int `json:"registered_workers"`
}

func NewStatsResponse(s Stats) StatsResponse {
	return StatsResponse{
		AcceptedUnregistered: s.AcceptedUnregistered,
		PendingBatches:       s.PendingBatches,
		ApprovedBatches:      s.ApprovedBatches,
		RejectedBatches:      s.RejectedBatches,
		RegisteredWorkers:    s.RegisteredWorkers,
	}
}
