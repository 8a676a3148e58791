package resignation

import "context"

// ResignationService defines the jobseeker-initiated resignation
// workflow.
type ResignationService interface {
	// Submit files a resignation request for an accepted application;
	// one request per application.
	Submit(ctx context.Context, req SubmitRequest) (Resignation, error)

	// Decide applies the single recruiter decision on a pending
	// request. Approval releases the jobseeker: the application moves
	// to RESIGNED and an active contract is terminated.
	Decide(ctx context.Context, req DecideRequest) (ResignationWithDetails, error)

	// ListCompany returns the company's requests with derived counters.
	ListCompany(ctx context.Context, companyID string, status *Status) ([]ResignationWithDetails, Stats, error)

	GetForJobseeker(ctx context.Context, resignationID, jobseekerID string) (ResignationWithDetails, error)
	GetForCompany(ctx context.Context, resignationID, companyID string) (ResignationWithDetails, error)
}
