package contract

import "time"

// BatchStatus represents the admin decision state of a registration batch.
// A batch only ever moves PENDING -> APPROVED or PENDING -> REJECTED.
type BatchStatus string

const (
	BatchStatusPending  BatchStatus = "PENDING"
	BatchStatusApproved BatchStatus = "APPROVED"
	BatchStatusRejected BatchStatus = "REJECTED"
)

// EmploymentStatus is the derived state of a registered worker. It is
// computed from dates on every read and never stored.
type EmploymentStatus string

const (
	EmploymentActive     EmploymentStatus = "ACTIVE"
	EmploymentCompleted  EmploymentStatus = "COMPLETED"
	EmploymentTerminated EmploymentStatus = "TERMINATED"
)

// Batch is a single recruiter submission bundling one or more workers
// for contract registration.
type Batch struct {
	ID          string
	RecruiterID string
	CompanyID   string
	Status      BatchStatus

	RecruiterDocURL     *string
	AdminResponseDocURL *string
	AdminNotes          *string

	ProcessedBy *string
	ProcessedAt *time.Time

	Workers []Worker

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Worker is a member of exactly one batch. Only the termination facts
// are persisted; employment status derives from them and the dates.
type Worker struct {
	ID            string
	BatchID       string
	ApplicationID string
	JobseekerID   string
	JobTitle      string

	StartDate time.Time
	EndDate   time.Time
	Salary    int64 // whole Rupiah
	Notes     *string

	TerminatedAt      *time.Time
	TerminationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmploymentStatus derives the worker's state at the given instant.
// Termination wins over everything; otherwise an end date in the past
// means the contract ran to completion.
func (w Worker) EmploymentStatus(now time.Time) EmploymentStatus {
	if w.TerminatedAt != nil {
		return EmploymentTerminated
	}
	if w.EndDate.Before(now) {
		return EmploymentCompleted
	}
	return EmploymentActive
}

// WorkerWithDetails carries joined display fields for listings.
type WorkerWithDetails struct {
	Worker
	JobseekerName string
	BatchStatus   BatchStatus
}

// Stats are derived counts over a company's registrations, recomputed
// per request.
type Stats struct {
	AcceptedUnregistered int
	PendingBatches       int
	ApprovedBatches      int
	RejectedBatches      int
	RegisteredWorkers    int
}
