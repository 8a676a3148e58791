package application

import "context"

// ApplicationRepository - interface for applications table
type ApplicationRepository interface {
	Create(ctx context.Context, app Application) (Application, error)
	GetByID(ctx context.Context, id string) (Application, error)
	GetByIDWithDetails(ctx context.Context, id string) (ApplicationWithDetails, error)
	ListByJobID(ctx context.Context, jobID string) ([]ApplicationWithDetails, error)
	ListByJobseekerID(ctx context.Context, jobseekerID string) ([]ApplicationWithDetails, error)
	ExistsByJobAndJobseeker(ctx context.Context, jobID, jobseekerID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status Status, recruiterNotes *string) error
	Delete(ctx context.Context, id string) error

	// ListAcceptedUnregistered returns ACCEPTED applications for the
	// recruiter's company that are not attached to any pending or
	// approved contract batch.
	ListAcceptedUnregistered(ctx context.Context, companyID string) ([]ApplicationWithDetails, error)
}
