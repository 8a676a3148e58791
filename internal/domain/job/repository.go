package job

import "context"

// JobRepository - interface for jobs table
type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	GetBySlug(ctx context.Context, slug string) (JobWithCompany, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	ListActive(ctx context.Context, location *string) ([]JobWithCompany, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Job, error)
	Update(ctx context.Context, req UpdateJobRequest) error
	Delete(ctx context.Context, id string) error
}
