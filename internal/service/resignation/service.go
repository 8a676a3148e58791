package resignation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/resignation"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/notification"
)

type ResignationService struct {
	resignationRepo resignation.ResignationRepository
	appRepo         application.ApplicationRepository
	workerRepo      contract.WorkerRepository
	jobseekerRepo   profile.JobseekerRepository
	userRepo        user.UserRepository
	notifier        notification.Notifier

	now func() time.Time
}

func NewResignationService(
	resignationRepo resignation.ResignationRepository,
	appRepo application.ApplicationRepository,
	workerRepo contract.WorkerRepository,
	jobseekerRepo profile.JobseekerRepository,
	userRepo user.UserRepository,
	notifier notification.Notifier,
) *ResignationService {
	return &ResignationService{
		resignationRepo: resignationRepo,
		appRepo:         appRepo,
		workerRepo:      workerRepo,
		jobseekerRepo:   jobseekerRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Submit implements resignation.ResignationService.
func (s *ResignationService) Submit(ctx context.Context, req resignation.SubmitRequest) (resignation.Resignation, error) {
	if err := req.Validate(); err != nil {
		return resignation.Resignation{}, err
	}

	app, err := s.appRepo.GetByID(ctx, req.ApplicationID)
	if err != nil {
		return resignation.Resignation{}, err
	}
	if app.JobseekerID != req.JobseekerID {
		return resignation.Resignation{}, resignation.ErrNotResignationOwner
	}
	if app.Status != application.StatusAccepted {
		return resignation.Resignation{}, resignation.ErrApplicationNotEligible
	}

	exists, err := s.resignationRepo.ExistsByApplicationID(ctx, req.ApplicationID)
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to check existing resignation: %w", err)
	}
	if exists {
		return resignation.Resignation{}, resignation.ErrAlreadySubmitted
	}

	res := resignation.Resignation{
		ApplicationID: req.ApplicationID,
		JobseekerID:   req.JobseekerID,
		Reason:        req.Reason,
		LetterURL:     req.LetterURL,
		Status:        resignation.StatusPending,
		CreatedAt:     s.now(),
	}

	created, err := s.resignationRepo.Create(ctx, res)
	if err != nil {
		return resignation.Resignation{}, fmt.Errorf("failed to create resignation: %w", err)
	}
	return created, nil
}

// Decide implements resignation.ResignationService.
func (s *ResignationService) Decide(ctx context.Context, req resignation.DecideRequest) (resignation.ResignationWithDetails, error) {
	if err := req.Validate(); err != nil {
		return resignation.ResignationWithDetails{}, err
	}

	res, err := s.resignationRepo.GetByID(ctx, req.ResignationID)
	if err != nil {
		return resignation.ResignationWithDetails{}, err
	}
	if res.CompanyID != req.CompanyID {
		return resignation.ResignationWithDetails{}, resignation.ErrNotCompanyOwned
	}
	if res.Status != resignation.StatusPending {
		return resignation.ResignationWithDetails{}, resignation.ErrAlreadyProcessed
	}

	newStatus := resignation.StatusApproved
	if req.Decision == resignation.DecisionReject {
		newStatus = resignation.StatusRejected
	}

	processedAt := s.now()

	// The repository re-checks status = PENDING atomically; a concurrent
	// decision loses here with ErrAlreadyProcessed.
	if err := s.resignationRepo.Decide(ctx, res.ID, newStatus, req.RecruiterNotes, req.RecruiterID, processedAt); err != nil {
		return resignation.ResignationWithDetails{}, err
	}

	if newStatus == resignation.StatusApproved {
		if err := s.release(ctx, res, processedAt); err != nil {
			return resignation.ResignationWithDetails{}, err
		}
	}

	res.Status = newStatus
	res.RecruiterNotes = req.RecruiterNotes
	res.ProcessedBy = &req.RecruiterID
	res.ProcessedAt = &processedAt
	res.UpdatedAt = processedAt

	s.notifyJobseeker(ctx, res)

	return res, nil
}

// release moves the application to RESIGNED and ends an active contract
// registered for it.
func (s *ResignationService) release(ctx context.Context, res resignation.ResignationWithDetails, processedAt time.Time) error {
	if err := s.appRepo.UpdateStatus(ctx, res.ApplicationID, application.StatusResigned, nil); err != nil {
		return fmt.Errorf("failed to release application after resignation: %w", err)
	}

	worker, err := s.workerRepo.GetRegisteredByApplicationID(ctx, res.ApplicationID)
	if err != nil {
		if errors.Is(err, contract.ErrWorkerNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up registered contract: %w", err)
	}
	if worker.EmploymentStatus(processedAt) != contract.EmploymentActive {
		return nil
	}

	if err := s.workerRepo.Terminate(ctx, worker.ID, "Mengundurkan diri", processedAt); err != nil {
		return fmt.Errorf("failed to end contract after resignation: %w", err)
	}
	return nil
}

// notifyJobseeker emails the decision; failures are logged, never returned.
func (s *ResignationService) notifyJobseeker(ctx context.Context, res resignation.ResignationWithDetails) {
	jobseeker, err := s.jobseekerRepo.GetByID(ctx, res.JobseekerID)
	if err != nil {
		slog.Error("Failed to look up jobseeker for resignation notification", "resignation_id", res.ID, "error", err)
		return
	}
	account, err := s.userRepo.GetByID(ctx, jobseeker.UserID)
	if err != nil {
		slog.Error("Failed to look up jobseeker account for resignation notification", "resignation_id", res.ID, "error", err)
		return
	}
	s.notifier.ResignationDecision(account.Email, jobseeker.FullName(), res.JobTitle, string(res.Status), res.RecruiterNotes)
}

// ListCompany implements resignation.ResignationService.
func (s *ResignationService) ListCompany(ctx context.Context, companyID string, status *resignation.Status) ([]resignation.ResignationWithDetails, resignation.Stats, error) {
	items, err := s.resignationRepo.ListByCompanyID(ctx, companyID, status)
	if err != nil {
		return nil, resignation.Stats{}, fmt.Errorf("failed to list resignations: %w", err)
	}

	stats, err := s.resignationRepo.Stats(ctx, companyID)
	if err != nil {
		return nil, resignation.Stats{}, fmt.Errorf("failed to aggregate resignation stats: %w", err)
	}

	return items, stats, nil
}

// GetForJobseeker implements resignation.ResignationService.
func (s *ResignationService) GetForJobseeker(ctx context.Context, resignationID, jobseekerID string) (resignation.ResignationWithDetails, error) {
	res, err := s.resignationRepo.GetByID(ctx, resignationID)
	if err != nil {
		return resignation.ResignationWithDetails{}, err
	}
	if res.JobseekerID != jobseekerID {
		return resignation.ResignationWithDetails{}, resignation.ErrNotResignationOwner
	}
	return res, nil
}

// GetForCompany implements resignation.ResignationService.
func (s *ResignationService) GetForCompany(ctx context.Context, resignationID, companyID string) (resignation.ResignationWithDetails, error) {
	res, err := s.resignationRepo.GetByID(ctx, resignationID)
	if err != nil {
		return resignation.ResignationWithDetails{}, err
	}
	if res.CompanyID != companyID {
		return resignation.ResignationWithDetails{}, resignation.ErrNotCompanyOwned
	}
	return res, nil
}
