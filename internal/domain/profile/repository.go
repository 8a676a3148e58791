package profile

import "context"

// JobseekerRepository - interface for jobseekers table
type JobseekerRepository interface {
	Upsert(ctx context.Context, p JobseekerProfile) (JobseekerProfile, error)
	GetByID(ctx context.Context, id string) (JobseekerProfile, error)
	GetByUserID(ctx context.Context, userID string) (JobseekerProfile, error)
	ExistsByNIK(ctx context.Context, nik string, excludeUserID string) (bool, error)
}

// RecruiterRepository - interface for recruiters and companies tables
type RecruiterRepository interface {
	// Upsert writes the recruiter and its company in one transaction.
	Upsert(ctx context.Context, p RecruiterProfile) (RecruiterProfile, error)
	GetByID(ctx context.Context, id string) (RecruiterProfile, error)
	GetByUserID(ctx context.Context, userID string) (RecruiterProfile, error)
}
