package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/notification"
)

type ContractService struct {
	batchRepo     contract.BatchRepository
	workerRepo    contract.WorkerRepository
	appRepo       application.ApplicationRepository
	recruiterRepo profile.RecruiterRepository
	userRepo      user.UserRepository
	notifier      notification.Notifier

	now func() time.Time
}

func NewContractService(
	batchRepo contract.BatchRepository,
	workerRepo contract.WorkerRepository,
	appRepo application.ApplicationRepository,
	recruiterRepo profile.RecruiterRepository,
	userRepo user.UserRepository,
	notifier notification.Notifier,
) *ContractService {
	return &ContractService{
		batchRepo:     batchRepo,
		workerRepo:    workerRepo,
		appRepo:       appRepo,
		recruiterRepo: recruiterRepo,
		userRepo:      userRepo,
		notifier:      notifier,
		now:           time.Now,
	}
}

// ListAcceptedApplicants implements contract.ContractService.
func (s *ContractService) ListAcceptedApplicants(ctx context.Context, companyID string) ([]contract.AcceptedApplicant, error) {
	apps, err := s.appRepo.ListAcceptedUnregistered(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accepted applicants: %w", err)
	}

	applicants := make([]contract.AcceptedApplicant, 0, len(apps))
	for _, app := range apps {
		applicants = append(applicants, contract.AcceptedApplicant{
			ApplicationID: app.ID,
			JobseekerID:   app.JobseekerID,
			JobseekerName: app.JobseekerName,
			JobTitle:      app.JobTitle,
		})
	}
	return applicants, nil
}

// CreateBatch implements contract.ContractService.
func (s *ContractService) CreateBatch(ctx context.Context, req contract.CreateBatchRequest) (contract.Batch, error) {
	if err := req.Validate(); err != nil {
		return contract.Batch{}, err
	}

	workers := make([]contract.Worker, 0, len(req.Workers))
	for _, entry := range req.Workers {
		app, err := s.appRepo.GetByIDWithDetails(ctx, entry.ApplicationID)
		if err != nil {
			return contract.Batch{}, fmt.Errorf("failed to get application %s: %w", entry.ApplicationID, err)
		}
		if app.CompanyID != req.CompanyID {
			return contract.Batch{}, application.ErrNotCompanyOwned
		}
		if app.Status != application.StatusAccepted {
			return contract.Batch{}, contract.ErrApplicationNotAccepted
		}

		registered, err := s.workerRepo.ExistsRegistered(ctx, entry.ApplicationID)
		if err != nil {
			return contract.Batch{}, fmt.Errorf("failed to check existing registration: %w", err)
		}
		if registered {
			return contract.Batch{}, contract.ErrApplicationRegistered
		}

		// Dates were validated above
		startDate, _ := time.Parse("2006-01-02", entry.StartDate)
		endDate, _ := time.Parse("2006-01-02", entry.EndDate)

		workers = append(workers, contract.Worker{
			ApplicationID: entry.ApplicationID,
			JobseekerID:   entry.JobseekerID,
			JobTitle:      entry.JobTitle,
			StartDate:     startDate,
			EndDate:       endDate,
			Salary:        entry.Salary,
			Notes:         entry.Notes,
		})
	}

	batch := contract.Batch{
		RecruiterID:     req.RecruiterID,
		CompanyID:       req.CompanyID,
		Status:          contract.BatchStatusPending,
		RecruiterDocURL: req.RecruiterDocURL,
		Workers:         workers,
	}

	created, err := s.batchRepo.Create(ctx, batch)
	if err != nil {
		return contract.Batch{}, fmt.Errorf("failed to create contract batch: %w", err)
	}

	return created, nil
}

// DecideBatch implements contract.ContractService.
func (s *ContractService) DecideBatch(ctx context.Context, req contract.DecideBatchRequest) (contract.Batch, error) {
	if err := req.Validate(); err != nil {
		return contract.Batch{}, err
	}

	batch, err := s.batchRepo.GetByID(ctx, req.BatchID)
	if err != nil {
		return contract.Batch{}, err
	}
	if batch.Status != contract.BatchStatusPending {
		return contract.Batch{}, contract.ErrBatchAlreadyProcessed
	}

	newStatus := contract.BatchStatusApproved
	if req.Decision == contract.DecisionReject {
		newStatus = contract.BatchStatusRejected
	}

	var adminNotes *string
	if req.AdminNotes != "" {
		adminNotes = &req.AdminNotes
	}
	var responseDoc *string
	if newStatus == contract.BatchStatusApproved {
		responseDoc = req.AdminResponseDocURL
	}

	processedAt := s.now()

	// The repository re-checks status = PENDING atomically; a concurrent
	// decision loses here with ErrBatchAlreadyProcessed.
	if err := s.batchRepo.Decide(ctx, batch.ID, newStatus, adminNotes, responseDoc, req.AdminID, processedAt); err != nil {
		return contract.Batch{}, err
	}

	batch.Status = newStatus
	batch.AdminNotes = adminNotes
	batch.AdminResponseDocURL = responseDoc
	batch.ProcessedBy = &req.AdminID
	batch.ProcessedAt = &processedAt
	batch.UpdatedAt = processedAt

	s.notifyRecruiter(ctx, batch)

	return batch, nil
}

// notifyRecruiter emails the decision; failures are logged, never returned.
func (s *ContractService) notifyRecruiter(ctx context.Context, batch contract.Batch) {
	recruiter, err := s.recruiterRepo.GetByID(ctx, batch.RecruiterID)
	if err != nil {
		slog.Error("Failed to look up recruiter for contract notification", "batch_id", batch.ID, "error", err)
		return
	}
	account, err := s.userRepo.GetByID(ctx, recruiter.UserID)
	if err != nil {
		slog.Error("Failed to look up recruiter account for contract notification", "batch_id", batch.ID, "error", err)
		return
	}
	s.notifier.ContractDecision(account.Email, recruiter.FullName(), string(batch.Status), batch.AdminNotes)
}

// ResubmitBatch implements contract.ContractService.
func (s *ContractService) ResubmitBatch(ctx context.Context, batchID, recruiterID, companyID string) (contract.Batch, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return contract.Batch{}, err
	}
	if batch.CompanyID != companyID {
		return contract.Batch{}, contract.ErrNotCompanyOwned
	}
	if batch.Status != contract.BatchStatusRejected {
		return contract.Batch{}, contract.ErrBatchNotRejected
	}

	workers := make([]contract.Worker, 0, len(batch.Workers))
	for _, w := range batch.Workers {
		app, err := s.appRepo.GetByID(ctx, w.ApplicationID)
		if err != nil {
			return contract.Batch{}, fmt.Errorf("failed to get application %s: %w", w.ApplicationID, err)
		}
		if app.Status != application.StatusAccepted {
			return contract.Batch{}, contract.ErrApplicationNotAccepted
		}

		registered, err := s.workerRepo.ExistsRegistered(ctx, w.ApplicationID)
		if err != nil {
			return contract.Batch{}, fmt.Errorf("failed to check existing registration: %w", err)
		}
		if registered {
			return contract.Batch{}, contract.ErrApplicationRegistered
		}

		workers = append(workers, contract.Worker{
			ApplicationID: w.ApplicationID,
			JobseekerID:   w.JobseekerID,
			JobTitle:      w.JobTitle,
			StartDate:     w.StartDate,
			EndDate:       w.EndDate,
			Salary:        w.Salary,
			Notes:         w.Notes,
		})
	}

	fresh := contract.Batch{
		RecruiterID:     recruiterID,
		CompanyID:       companyID,
		Status:          contract.BatchStatusPending,
		RecruiterDocURL: batch.RecruiterDocURL,
		Workers:         workers,
	}

	created, err := s.batchRepo.Create(ctx, fresh)
	if err != nil {
		return contract.Batch{}, fmt.Errorf("failed to resubmit contract batch: %w", err)
	}
	return created, nil
}

// TerminateWorker implements contract.ContractService.
func (s *ContractService) TerminateWorker(ctx context.Context, req contract.TerminateWorkerRequest) (contract.Worker, error) {
	if err := req.Validate(); err != nil {
		return contract.Worker{}, err
	}

	worker, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		return contract.Worker{}, err
	}

	batch, err := s.batchRepo.GetByID(ctx, worker.BatchID)
	if err != nil {
		return contract.Worker{}, err
	}
	if batch.CompanyID != req.CompanyID {
		return contract.Worker{}, contract.ErrNotCompanyOwned
	}
	if batch.Status != contract.BatchStatusApproved {
		return contract.Worker{}, contract.ErrBatchNotApproved
	}

	terminatedAt := s.now()
	if worker.EmploymentStatus(terminatedAt) != contract.EmploymentActive {
		return contract.Worker{}, contract.ErrWorkerNotActive
	}

	reason := req.Reason
	if reason == "" {
		reason = "Diakhiri oleh recruiter"
	}

	if err := s.workerRepo.Terminate(ctx, worker.ID, reason, terminatedAt); err != nil {
		return contract.Worker{}, err
	}

	// Release the jobseeker back into the market.
	if err := s.appRepo.UpdateStatus(ctx, worker.ApplicationID, application.StatusResigned, nil); err != nil {
		return contract.Worker{}, fmt.Errorf("failed to release application after termination: %w", err)
	}

	worker.TerminatedAt = &terminatedAt
	worker.TerminationReason = &reason
	return worker, nil
}

// GetBatch implements contract.ContractService.
func (s *ContractService) GetBatch(ctx context.Context, batchID string) (contract.Batch, error) {
	return s.batchRepo.GetByID(ctx, batchID)
}

// GetCompanyBatch implements contract.ContractService.
func (s *ContractService) GetCompanyBatch(ctx context.Context, batchID, companyID string) (contract.Batch, error) {
	batch, err := s.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return contract.Batch{}, err
	}
	if batch.CompanyID != companyID {
		return contract.Batch{}, contract.ErrNotCompanyOwned
	}
	return batch, nil
}

// ListBatches implements contract.ContractService.
func (s *ContractService) ListBatches(ctx context.Context, companyID string, status *contract.BatchStatus) ([]contract.Batch, error) {
	return s.batchRepo.ListByCompanyID(ctx, companyID, status)
}

// ListPendingBatches implements contract.ContractService.
func (s *ContractService) ListPendingBatches(ctx context.Context) ([]contract.Batch, error) {
	return s.batchRepo.ListPending(ctx)
}

// CountPendingBatches implements contract.ContractService.
func (s *ContractService) CountPendingBatches(ctx context.Context) (int, error) {
	return s.batchRepo.CountPending(ctx)
}

// ListRegisteredWorkers implements contract.ContractService.
func (s *ContractService) ListRegisteredWorkers(ctx context.Context, companyID string) ([]contract.WorkerWithDetails, error) {
	return s.workerRepo.ListRegisteredByCompanyID(ctx, companyID)
}

// Stats implements contract.ContractService.
func (s *ContractService) Stats(ctx context.Context, companyID string) (contract.Stats, error) {
	stats, err := s.batchRepo.Stats(ctx, companyID)
	if err != nil {
		return contract.Stats{}, fmt.Errorf("failed to aggregate contract stats: %w", err)
	}

	accepted, err := s.appRepo.ListAcceptedUnregistered(ctx, companyID)
	if err != nil {
		return contract.Stats{}, fmt.Errorf("failed to count accepted applicants: %w", err)
	}
	stats.AcceptedUnregistered = len(accepted)

	return stats, nil
}
