package contract

import (
	"context"
	"time"
)

// BatchRepository - interface for contract_batches table
type BatchRepository interface {
	// Create inserts the batch and its workers in one transaction.
	Create(ctx context.Context, batch Batch) (Batch, error)

	GetByID(ctx context.Context, id string) (Batch, error)
	ListByCompanyID(ctx context.Context, companyID string, status *BatchStatus) ([]Batch, error)
	ListPending(ctx context.Context) ([]Batch, error)
	CountPending(ctx context.Context) (int, error)

	// Decide sets the terminal status, notes and response document.
	// The update carries a `status = 'PENDING'` precondition; it
	// returns ErrBatchAlreadyProcessed when no row matched.
	Decide(ctx context.Context, id string, status BatchStatus, adminNotes *string, adminResponseDocURL *string, processedBy string, processedAt time.Time) error

	Stats(ctx context.Context, companyID string) (Stats, error)
}

// WorkerRepository - interface for contract_workers table
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)

	// ExistsRegistered reports whether the application already belongs
	// to a batch that is pending or approved.
	ExistsRegistered(ctx context.Context, applicationID string) (bool, error)

	// GetRegisteredByApplicationID returns the application's worker row
	// under an approved batch, ErrWorkerNotFound when there is none.
	GetRegisteredByApplicationID(ctx context.Context, applicationID string) (Worker, error)

	// ListRegisteredByCompanyID lists workers of approved batches only.
	ListRegisteredByCompanyID(ctx context.Context, companyID string) ([]WorkerWithDetails, error)

	// Terminate persists the termination facts. It carries a
	// `terminated_at IS NULL` precondition; it returns
	// ErrWorkerNotActive when no row matched.
	Terminate(ctx context.Context, id string, reason string, terminatedAt time.Time) error
}
