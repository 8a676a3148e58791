package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/job"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/match"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/notification"
)

type ApplicationService struct {
	appRepo       application.ApplicationRepository
	jobRepo       job.JobRepository
	jobseekerRepo profile.JobseekerRepository
	userRepo      user.UserRepository
	scorer        match.Scorer
	notifier      notification.Notifier

	now func() time.Time
}

func NewApplicationService(
	appRepo application.ApplicationRepository,
	jobRepo job.JobRepository,
	jobseekerRepo profile.JobseekerRepository,
	userRepo user.UserRepository,
	scorer match.Scorer,
	notifier notification.Notifier,
) *ApplicationService {
	return &ApplicationService{
		appRepo:       appRepo,
		jobRepo:       jobRepo,
		jobseekerRepo: jobseekerRepo,
		userRepo:      userRepo,
		scorer:        scorer,
		notifier:      notifier,
		now:           time.Now,
	}
}

// Apply submits a new application. One application per jobseeker per job.
func (s *ApplicationService) Apply(ctx context.Context, req application.ApplyRequest) (application.Application, error) {
	if err := req.Validate(); err != nil {
		return application.Application{}, err
	}

	j, err := s.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return application.Application{}, err
	}
	if !j.IsActive {
		return application.Application{}, job.ErrJobNotActive
	}

	exists, err := s.appRepo.ExistsByJobAndJobseeker(ctx, req.JobID, req.JobseekerID)
	if err != nil {
		return application.Application{}, fmt.Errorf("failed to check existing application: %w", err)
	}
	if exists {
		return application.Application{}, application.ErrAlreadyApplied
	}

	app := application.Application{
		JobID:       req.JobID,
		JobseekerID: req.JobseekerID,
		Status:      application.StatusPending,
		CVURL:       req.CVURL,
		CoverLetter: req.CoverLetter,
		AppliedAt:   s.now(),
	}

	created, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return application.Application{}, fmt.Errorf("failed to create application: %w", err)
	}
	return created, nil
}

// Withdraw lets the jobseeker pull an application out of the pipeline.
func (s *ApplicationService) Withdraw(ctx context.Context, applicationID, jobseekerID string) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.JobseekerID != jobseekerID {
		return application.ErrNotApplicationOwner
	}
	if !application.CanTransition(app.Status, application.StatusWithdrawn) {
		return application.ErrInvalidTransition
	}
	return s.appRepo.UpdateStatus(ctx, applicationID, application.StatusWithdrawn, nil)
}

// UpdateStatus moves an application through the recruiter pipeline and
// notifies the candidate on terminal decisions.
func (s *ApplicationService) UpdateStatus(ctx context.Context, req application.UpdateStatusRequest) (application.Application, error) {
	if err := req.Validate(); err != nil {
		return application.Application{}, err
	}

	app, err := s.appRepo.GetByIDWithDetails(ctx, req.ApplicationID)
	if err != nil {
		return application.Application{}, err
	}
	if app.CompanyID != req.CompanyID {
		return application.Application{}, application.ErrNotCompanyOwned
	}

	newStatus := application.Status(req.Status)
	if !application.CanTransition(app.Status, newStatus) {
		return application.Application{}, application.ErrInvalidTransition
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, newStatus, req.RecruiterNotes); err != nil {
		return application.Application{}, err
	}

	if newStatus == application.StatusAccepted || newStatus == application.StatusRejected {
		s.notifyDecision(ctx, app, newStatus, req.RecruiterNotes)
	}

	updated := app.Application
	updated.Status = newStatus
	updated.RecruiterNotes = req.RecruiterNotes
	return updated, nil
}

// notifyDecision emails the candidate; failures are logged only.
func (s *ApplicationService) notifyDecision(ctx context.Context, app application.ApplicationWithDetails, status application.Status, notes *string) {
	jobseeker, err := s.jobseekerRepo.GetByID(ctx, app.JobseekerID)
	if err != nil {
		slog.Error("Failed to look up jobseeker for decision email", "application_id", app.ID, "error", err)
		return
	}
	account, err := s.userRepo.GetByID(ctx, jobseeker.UserID)
	if err != nil {
		slog.Error("Failed to look up jobseeker account for decision email", "application_id", app.ID, "error", err)
		return
	}
	s.notifier.ApplicationDecision(account.Email, jobseeker.FullName(), app.JobTitle, app.CompanyName, string(status), notes)
}

// Delete removes a rejected application from the jobseeker's history.
func (s *ApplicationService) Delete(ctx context.Context, applicationID, jobseekerID string) error {
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.JobseekerID != jobseekerID {
		return application.ErrNotApplicationOwner
	}
	if app.Status != application.StatusRejected {
		return application.ErrRejectedOnlyDeletion
	}
	return s.appRepo.Delete(ctx, applicationID)
}

// ListMine returns the jobseeker's applications, newest first.
func (s *ApplicationService) ListMine(ctx context.Context, jobseekerID string) ([]application.ApplicationWithDetails, error) {
	return s.appRepo.ListByJobseekerID(ctx, jobseekerID)
}

// ListForJob returns a job's applications decorated with advisory match
// scores. Scoring failures never fail the listing.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID, companyID string) ([]application.ScoredApplication, error) {
	j, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.CompanyID != companyID {
		return nil, application.ErrNotCompanyOwned
	}

	apps, err := s.appRepo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	scored := make([]application.ScoredApplication, 0, len(apps))
	for _, app := range apps {
		scored = append(scored, application.ScoredApplication{
			ApplicationWithDetails: app,
			Match:                  match.ScoreOrSkip(ctx, s.scorer, s.candidateText(ctx, app), j.Title, j.Requirements),
		})
	}
	return scored, nil
}

// candidateText assembles the profile summary, skills and cover letter
// into the text the scorer reads.
func (s *ApplicationService) candidateText(ctx context.Context, app application.ApplicationWithDetails) string {
	text := ""
	if app.CoverLetter != nil {
		text = *app.CoverLetter
	}
	jobseeker, err := s.jobseekerRepo.GetByID(ctx, app.JobseekerID)
	if err != nil {
		return text
	}
	if jobseeker.Summary != nil {
		text = *jobseeker.Summary + "\n" + text
	}
	if len(jobseeker.Skills) > 0 {
		text = text + "\nSkills: " + strings.Join(jobseeker.Skills, ", ")
	}
	return text
}

// Get returns one application, visible to its owner or the hiring company.
func (s *ApplicationService) Get(ctx context.Context, applicationID string) (application.ApplicationWithDetails, error) {
	return s.appRepo.GetByIDWithDetails(ctx, applicationID)
}
