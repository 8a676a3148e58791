package contract

import "context"

// ContractService defines the contract registration workflow.
type ContractService interface {
	// ListAcceptedApplicants returns the company's accepted applications
	// that are not yet part of any pending or approved batch.
	ListAcceptedApplicants(ctx context.Context, companyID string) ([]AcceptedApplicant, error)

	// CreateBatch submits a new registration batch; it is created
	// PENDING or not at all.
	CreateBatch(ctx context.Context, req CreateBatchRequest) (Batch, error)

	// DecideBatch applies the single admin decision on a pending batch.
	DecideBatch(ctx context.Context, req DecideBatchRequest) (Batch, error)

	// ResubmitBatch clones a rejected batch into a fresh pending one.
	ResubmitBatch(ctx context.Context, batchID, recruiterID, companyID string) (Batch, error)

	// TerminateWorker ends an active contract of an approved batch.
	TerminateWorker(ctx context.Context, req TerminateWorkerRequest) (Worker, error)

	// GetBatch returns a batch without ownership checks; admin side only.
	GetBatch(ctx context.Context, batchID string) (Batch, error)

	// GetCompanyBatch returns a batch only when it belongs to the company.
	GetCompanyBatch(ctx context.Context, batchID, companyID string) (Batch, error)
	ListBatches(ctx context.Context, companyID string, status *BatchStatus) ([]Batch, error)
	ListPendingBatches(ctx context.Context) ([]Batch, error)
	CountPendingBatches(ctx context.Context) (int, error)
	ListRegisteredWorkers(ctx context.Context, companyID string) ([]WorkerWithDetails, error)
	Stats(ctx context.Context, companyID string) (Stats, error)
}

// AcceptedApplicant is a selectable row for the batch submission form.
type AcceptedApplicant struct {
	ApplicationID string `json:"application_id"`
	JobseekerID   string `json:"jobseeker_id"`
	JobseekerName string `json:"jobseeker_name"`
	JobTitle      string `json:"job_title"`
}
