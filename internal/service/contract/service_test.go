package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
)

type fakeBatchRepo struct {
	batches map[string]contract.Batch
	nextID  int
}

func newFakeBatchRepo() *fakeBatchRepo {
	return &fakeBatchRepo{batches: map[string]contract.Batch{}, nextID: 1}
}

func (f *fakeBatchRepo) Create(_ context.Context, batch contract.Batch) (contract.Batch, error) {
	batch.ID = fmt.Sprintf("batch-%d", f.nextID)
	f.nextID++
	for i := range batch.Workers {
		batch.Workers[i].ID = fmt.Sprintf("%s-w%d", batch.ID, i)
		batch.Workers[i].BatchID = batch.ID
	}
	f.batches[batch.ID] = batch
	return batch, nil
}

func (f *fakeBatchRepo) GetByID(_ context.Context, id string) (contract.Batch, error) {
	b, ok := f.batches[id]
	if !ok {
		return contract.Batch{}, contract.ErrBatchNotFound
	}
	return b, nil
}

func (f *fakeBatchRepo) ListByCompanyID(_ context.Context, companyID string, status *contract.BatchStatus) ([]contract.Batch, error) {
	var out []contract.Batch
	for _, b := range f.batches {
		if b.CompanyID != companyID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBatchRepo) ListPending(_ context.Context) ([]contract.Batch, error) {
	var out []contract.Batch
	for _, b := range f.batches {
		if b.Status == contract.BatchStatusPending {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBatchRepo) CountPending(ctx context.Context) (int, error) {
	pending, _ := f.ListPending(ctx)
	return len(pending), nil
}

func (f *fakeBatchRepo) Decide(_ context.Context, id string, status contract.BatchStatus, adminNotes, adminResponseDocURL *string, processedBy string, processedAt time.Time) error {
	b, ok := f.batches[id]
	if !ok {
		return contract.ErrBatchNotFound
	}
	if b.Status != contract.BatchStatusPending {
		return contract.ErrBatchAlreadyProcessed
	}
	b.Status = status
	b.AdminNotes = adminNotes
	b.AdminResponseDocURL = adminResponseDocURL
	b.ProcessedBy = &processedBy
	b.ProcessedAt = &processedAt
	f.batches[id] = b
	return nil
}

func (f *fakeBatchRepo) Stats(_ context.Context, companyID string) (contract.Stats, error) {
	var stats contract.Stats
	for _, b := range f.batches {
		if b.CompanyID != companyID {
			continue
		}
		switch b.Status {
		case contract.BatchStatusPending:
			stats.PendingBatches++
		case contract.BatchStatusApproved:
			stats.ApprovedBatches++
			stats.RegisteredWorkers += len(b.Workers)
		case contract.BatchStatusRejected:
			stats.RejectedBatches++
		}
	}
	return stats, nil
}

type fakeWorkerRepo struct {
	batchRepo *fakeBatchRepo
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (contract.Worker, error) {
	for _, b := range f.batchRepo.batches {
		for _, w := range b.Workers {
			if w.ID == id {
				return w, nil
			}
		}
	}
	return contract.Worker{}, contract.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ExistsRegistered(_ context.Context, applicationID string) (bool, error) {
	for _, b := range f.batchRepo.batches {
		if b.Status == contract.BatchStatusRejected {
			continue
		}
		for _, w := range b.Workers {
			if w.ApplicationID == applicationID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeWorkerRepo) GetRegisteredByApplicationID(_ context.Context, applicationID string) (contract.Worker, error) {
	for _, b := range f.batchRepo.batches {
		if b.Status != contract.BatchStatusApproved {
			continue
		}
		for _, w := range b.Workers {
			if w.ApplicationID == applicationID {
				return w, nil
			}
		}
	}
	return contract.Worker{}, contract.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ListRegisteredByCompanyID(_ context.Context, companyID string) ([]contract.WorkerWithDetails, error) {
	var out []contract.WorkerWithDetails
	for _, b := range f.batchRepo.batches {
		if b.CompanyID != companyID || b.Status != contract.BatchStatusApproved {
			continue
		}
		for _, w := range b.Workers {
			out = append(out, contract.WorkerWithDetails{Worker: w})
		}
	}
	return out, nil
}

func (f *fakeWorkerRepo) Terminate(_ context.Context, id string, reason string, terminatedAt time.Time) error {
	for batchID, b := range f.batchRepo.batches {
		for i, w := range b.Workers {
			if w.ID != id {
				continue
			}
			if w.TerminatedAt != nil {
				return contract.ErrWorkerNotActive
			}
			b.Workers[i].TerminatedAt = &terminatedAt
			b.Workers[i].TerminationReason = &reason
			f.batchRepo.batches[batchID] = b
			return nil
		}
	}
	return contract.ErrWorkerNotFound
}

type fakeAppRepo struct {
	apps      map[string]application.ApplicationWithDetails
	batchRepo *fakeBatchRepo
}

func (f *fakeAppRepo) Create(_ context.Context, app application.Application) (application.Application, error) {
	return app, nil
}

func (f *fakeAppRepo) GetByID(_ context.Context, id string) (application.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return application.Application{}, application.ErrApplicationNotFound
	}
	return app.Application, nil
}

func (f *fakeAppRepo) GetByIDWithDetails(_ context.Context, id string) (application.ApplicationWithDetails, error) {
	app, ok := f.apps[id]
	if !ok {
		return application.ApplicationWithDetails{}, application.ErrApplicationNotFound
	}
	return app, nil
}

func (f *fakeAppRepo) ListByJobID(_ context.Context, _ string) ([]application.ApplicationWithDetails, error) {
	return nil, nil
}

func (f *fakeAppRepo) ListByJobseekerID(_ context.Context, _ string) ([]application.ApplicationWithDetails, error) {
	return nil, nil
}

func (f *fakeAppRepo) ExistsByJobAndJobseeker(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeAppRepo) UpdateStatus(_ context.Context, id string, status application.Status, notes *string) error {
	app, ok := f.apps[id]
	if !ok {
		return application.ErrApplicationNotFound
	}
	app.Status = status
	app.RecruiterNotes = notes
	f.apps[id] = app
	return nil
}

func (f *fakeAppRepo) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeAppRepo) ListAcceptedUnregistered(_ context.Context, companyID string) ([]application.ApplicationWithDetails, error) {
	registered := map[string]bool{}
	for _, b := range f.batchRepo.batches {
		if b.Status == contract.BatchStatusRejected {
			continue
		}
		for _, w := range b.Workers {
			registered[w.ApplicationID] = true
		}
	}

	var out []application.ApplicationWithDetails
	for _, app := range f.apps {
		if app.CompanyID == companyID && app.Status == application.StatusAccepted && !registered[app.ID] {
			out = append(out, app)
		}
	}
	return out, nil
}

type fakeRecruiterRepo struct {
	profiles map[string]profile.RecruiterProfile
}

func (f *fakeRecruiterRepo) Upsert(_ context.Context, p profile.RecruiterProfile) (profile.RecruiterProfile, error) {
	return p, nil
}

func (f *fakeRecruiterRepo) GetByID(_ context.Context, id string) (profile.RecruiterProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return profile.RecruiterProfile{}, profile.ErrRecruiterNotFound
	}
	return p, nil
}

func (f *fakeRecruiterRepo) GetByUserID(_ context.Context, _ string) (profile.RecruiterProfile, error) {
	return profile.RecruiterProfile{}, profile.ErrRecruiterNotFound
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) { return u, nil }

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) SetProfileID(_ context.Context, _, _ string) error { return nil }

type recordedDecision struct {
	to     string
	status string
	notes  *string
}

type fakeNotifier struct {
	decisions []recordedDecision
}

func (f *fakeNotifier) InterviewInvitation(_, _, _, _ string, _ time.Time, _ int, _ string) {}
func (f *fakeNotifier) InterviewResponse(_, _, _, _ string, _ *string)                      {}
func (f *fakeNotifier) RescheduleNotification(_, _, _, _ string, _, _ time.Time, _ string)  {}
func (f *fakeNotifier) ApplicationDecision(_, _, _, _, _ string, _ *string)                 {}

func (f *fakeNotifier) ContractDecision(to, _, status string, adminNotes *string) {
	f.decisions = append(f.decisions, recordedDecision{to: to, status: status, notes: adminNotes})
}

func (f *fakeNotifier) ResignationDecision(_, _, _, _ string, _ *string) {}

type testEnv struct {
	svc       *ContractService
	batchRepo *fakeBatchRepo
	appRepo   *fakeAppRepo
	notifier  *fakeNotifier
}

func newTestEnv() *testEnv {
	batchRepo := newFakeBatchRepo()
	workerRepo := &fakeWorkerRepo{batchRepo: batchRepo}
	appRepo := &fakeAppRepo{apps: map[string]application.ApplicationWithDetails{}, batchRepo: batchRepo}
	recruiterRepo := &fakeRecruiterRepo{profiles: map[string]profile.RecruiterProfile{
		"rec-1": {ID: "rec-1", UserID: "user-rec-1", FirstName: "Siti", LastName: "Rahma"},
	}}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"user-rec-1": {ID: "user-rec-1", Email: "siti@majujaya.co.id"},
	}}
	notifier := &fakeNotifier{}
	svc := NewContractService(batchRepo, workerRepo, appRepo, recruiterRepo, userRepo, notifier)
	return &testEnv{svc: svc, batchRepo: batchRepo, appRepo: appRepo, notifier: notifier}
}

func (e *testEnv) acceptedApplication(id, jobseekerID string) {
	e.appRepo.apps[id] = application.ApplicationWithDetails{
		Application: application.Application{
			ID:          id,
			JobID:       "job-1",
			JobseekerID: jobseekerID,
			Status:      application.StatusAccepted,
		},
		JobTitle:      "Backend Engineer",
		CompanyID:     "co-1",
		CompanyName:   "PT Maju Jaya",
		JobseekerName: "Budi Santoso",
	}
}

func workerEntry(applicationID, jobseekerID string) contract.WorkerEntry {
	return contract.WorkerEntry{
		ApplicationID: applicationID,
		JobseekerID:   jobseekerID,
		JobTitle:      "Backend Engineer",
		StartDate:     "2026-04-01",
		EndDate:       "2027-03-31",
		Salary:        5000000,
	}
}

func TestCreateBatch_EmptyWorkers(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
	})
	assert.Error(t, err, "a batch without workers is invalid")
	assert.Empty(t, env.batchRepo.batches)
}

func TestCreateBatch_ApplicationNotAccepted(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	app := env.appRepo.apps["app-1"]
	app.Status = application.StatusInterviewCompleted
	env.appRepo.apps["app-1"] = app

	_, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	assert.ErrorIs(t, err, contract.ErrApplicationNotAccepted)
}

func TestCreateBatch_AlreadyRegistered(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	req := contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	}
	_, err := env.svc.CreateBatch(context.Background(), req)
	require.NoError(t, err)

	_, err = env.svc.CreateBatch(context.Background(), req)
	assert.ErrorIs(t, err, contract.ErrApplicationRegistered, "an application in a pending batch cannot be submitted again")
}

func TestCreateBatch_WrongCompany(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	_, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-2",
		CompanyID:   "co-other",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	assert.ErrorIs(t, err, application.ErrNotCompanyOwned)
}

func TestGetCompanyBatch_WrongCompany(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.GetCompanyBatch(context.Background(), created.ID, "co-other")
	assert.ErrorIs(t, err, contract.ErrNotCompanyOwned, "another company's recruiter must not read the batch")

	batch, err := env.svc.GetCompanyBatch(context.Background(), created.ID, "co-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, batch.ID)
}

func TestDecideBatch_RejectThenResubmit(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")
	env.acceptedApplication("app-2", "js-2")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers: []contract.WorkerEntry{
			workerEntry("app-1", "js-1"),
			workerEntry("app-2", "js-2"),
		},
	})
	require.NoError(t, err)
	require.Len(t, created.Workers, 2)
	assert.Equal(t, contract.BatchStatusPending, created.Status)

	decidedAt := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	env.svc.now = func() time.Time { return decidedAt }

	decided, err := env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:    created.ID,
		AdminID:    "admin-1",
		Decision:   contract.DecisionReject,
		AdminNotes: "dokumen kontrak tidak lengkap",
	})
	require.NoError(t, err)

	assert.Equal(t, contract.BatchStatusRejected, decided.Status)
	require.NotNil(t, decided.ProcessedAt)
	assert.True(t, decided.ProcessedAt.Equal(decidedAt))
	require.NotNil(t, decided.ProcessedBy)
	assert.Equal(t, "admin-1", *decided.ProcessedBy)

	require.Len(t, env.notifier.decisions, 1)
	assert.Equal(t, "siti@majujaya.co.id", env.notifier.decisions[0].to)
	assert.Equal(t, string(contract.BatchStatusRejected), env.notifier.decisions[0].status)

	// Workers of a rejected batch never show up as registered.
	registered, err := env.svc.ListRegisteredWorkers(context.Background(), "co-1")
	require.NoError(t, err)
	assert.Empty(t, registered)

	// A rejected batch releases its applications for resubmission.
	resubmitted, err := env.svc.ResubmitBatch(context.Background(), created.ID, "rec-1", "co-1")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, resubmitted.ID)
	assert.Equal(t, contract.BatchStatusPending, resubmitted.Status)
	assert.Len(t, resubmitted.Workers, 2)
}

func TestDecideBatch_SecondDecisionRejected(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:  created.ID,
		AdminID:  "admin-1",
		Decision: contract.DecisionApprove,
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:    created.ID,
		AdminID:    "admin-2",
		Decision:   contract.DecisionReject,
		AdminNotes: "terlambat",
	})
	assert.ErrorIs(t, err, contract.ErrBatchAlreadyProcessed)

	// First decision stays.
	assert.Equal(t, contract.BatchStatusApproved, env.batchRepo.batches[created.ID].Status)
	assert.Len(t, env.notifier.decisions, 1)
}

func TestDecideBatch_RejectRequiresNotes(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:  created.ID,
		AdminID:  "admin-1",
		Decision: contract.DecisionReject,
	})
	assert.Error(t, err, "rejection without notes is invalid")
	assert.Equal(t, contract.BatchStatusPending, env.batchRepo.batches[created.ID].Status)
}

func TestResubmitBatch_OnlyRejected(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.ResubmitBatch(context.Background(), created.ID, "rec-1", "co-1")
	assert.ErrorIs(t, err, contract.ErrBatchNotRejected)
}

func TestTerminateWorker(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:  created.ID,
		AdminID:  "admin-1",
		Decision: contract.DecisionApprove,
	})
	require.NoError(t, err)

	workerID := env.batchRepo.batches[created.ID].Workers[0].ID

	// Inside the contract period the worker reads as ACTIVE.
	env.svc.now = func() time.Time {
		return time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	}

	terminated, err := env.svc.TerminateWorker(context.Background(), contract.TerminateWorkerRequest{
		WorkerID:  workerID,
		CompanyID: "co-1",
		Reason:    "pengurangan tim",
	})
	require.NoError(t, err)

	require.NotNil(t, terminated.TerminatedAt)
	assert.Equal(t, contract.EmploymentTerminated, terminated.EmploymentStatus(env.svc.now()))
	assert.Equal(t, application.StatusResigned, env.appRepo.apps["app-1"].Status, "termination releases the application")

	// A second termination finds the worker no longer active.
	_, err = env.svc.TerminateWorker(context.Background(), contract.TerminateWorkerRequest{
		WorkerID:  workerID,
		CompanyID: "co-1",
	})
	assert.ErrorIs(t, err, contract.ErrWorkerNotActive)
}

func TestTerminateWorker_CompletedContract(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:  created.ID,
		AdminID:  "admin-1",
		Decision: contract.DecisionApprove,
	})
	require.NoError(t, err)

	// Past the end date the worker reads as COMPLETED, not ACTIVE.
	env.svc.now = func() time.Time {
		return time.Date(2027, 6, 1, 10, 0, 0, 0, time.UTC)
	}

	_, err = env.svc.TerminateWorker(context.Background(), contract.TerminateWorkerRequest{
		WorkerID:  env.batchRepo.batches[created.ID].Workers[0].ID,
		CompanyID: "co-1",
	})
	assert.ErrorIs(t, err, contract.ErrWorkerNotActive)
}

func TestStats(t *testing.T) {
	env := newTestEnv()
	env.acceptedApplication("app-1", "js-1")
	env.acceptedApplication("app-2", "js-2")

	created, err := env.svc.CreateBatch(context.Background(), contract.CreateBatchRequest{
		RecruiterID: "rec-1",
		CompanyID:   "co-1",
		Workers:     []contract.WorkerEntry{workerEntry("app-1", "js-1")},
	})
	require.NoError(t, err)

	_, err = env.svc.DecideBatch(context.Background(), contract.DecideBatchRequest{
		BatchID:  created.ID,
		AdminID:  "admin-1",
		Decision: contract.DecisionApprove,
	})
	require.NoError(t, err)

	stats, err := env.svc.Stats(context.Background(), "co-1")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ApprovedBatches)
	assert.Equal(t, 1, stats.RegisteredWorkers)
	assert.Equal(t, 1, stats.AcceptedUnregistered, "app-2 is accepted but not yet in a batch")
}
