package job

import (
	"context"
	"fmt"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/job"
)

type JobService struct {
	jobRepo job.JobRepository
}

func NewJobService(jobRepo job.JobRepository) *JobService {
	return &JobService{jobRepo: jobRepo}
}

// Create publishes a job posting under a unique slug.
func (s *JobService) Create(ctx context.Context, req job.CreateJobRequest) (job.Job, error) {
	if err := req.Validate(); err != nil {
		return job.Job{}, err
	}

	exists, err := s.jobRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to check slug: %w", err)
	}
	if exists {
		return job.Job{}, job.ErrSlugExists
	}

	j := job.Job{
		CompanyID:    req.CompanyID,
		RecruiterID:  req.RecruiterID,
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Requirements: req.Requirements,
		Location:     req.Location,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		IsActive:     true,
	}

	created, err := s.jobRepo.Create(ctx, j)
	if err != nil {
		return job.Job{}, fmt.Errorf("failed to create job: %w", err)
	}
	return created, nil
}

// Update edits a posting owned by the recruiter's company.
func (s *JobService) Update(ctx context.Context, req job.UpdateJobRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	j, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return err
	}
	if j.CompanyID != req.CompanyID {
		return job.ErrNotJobOwner
	}

	return s.jobRepo.Update(ctx, req)
}

// Delete removes a posting owned by the recruiter's company.
func (s *JobService) Delete(ctx context.Context, jobID, companyID string) error {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if j.CompanyID != companyID {
		return job.ErrNotJobOwner
	}
	return s.jobRepo.Delete(ctx, jobID)
}

// ListActive returns public postings, optionally filtered by location.
func (s *JobService) ListActive(ctx context.Context, location *string) ([]job.JobWithCompany, error) {
	return s.jobRepo.ListActive(ctx, location)
}

// GetBySlug returns one public posting.
func (s *JobService) GetBySlug(ctx context.Context, slug string) (job.JobWithCompany, error) {
	return s.jobRepo.GetBySlug(ctx, slug)
}

// ListCompanyJobs returns all postings of a company, active or not.
func (s *JobService) ListCompanyJobs(ctx context.Context, companyID string) ([]job.Job, error) {
	return s.jobRepo.ListByCompanyID(ctx, companyID)
}
