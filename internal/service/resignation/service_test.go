package resignation

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
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/resignation"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
)

type fakeResignationRepo struct {
	items  map[string]resignation.ResignationWithDetails
	nextID int
}

func newFakeResignationRepo() *fakeResignationRepo {
	return &fakeResignationRepo{items: map[string]resignation.ResignationWithDetails{}, nextID: 1}
}

func (f *fakeResignationRepo) Create(_ context.Context, res resignation.Resignation) (resignation.Resignation, error) {
	res.ID = fmt.Sprintf("res-%d", f.nextID)
	f.nextID++
	f.items[res.ID] = resignation.ResignationWithDetails{Resignation: res}
	return res, nil
}

func (f *fakeResignationRepo) GetByID(_ context.Context, id string) (resignation.ResignationWithDetails, error) {
	d, ok := f.items[id]
	if !ok {
		return resignation.ResignationWithDetails{}, resignation.ErrResignationNotFound
	}
	return d, nil
}

func (f *fakeResignationRepo) ListByCompanyID(_ context.Context, companyID string, status *resignation.Status) ([]resignation.ResignationWithDetails, error) {
	var out []resignation.ResignationWithDetails
	for _, d := range f.items {
		if d.CompanyID != companyID {
			continue
		}
		if status != nil && d.Status != *status {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeResignationRepo) ExistsByApplicationID(_ context.Context, applicationID string) (bool, error) {
	for _, d := range f.items {
		if d.ApplicationID == applicationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResignationRepo) Decide(_ context.Context, id string, status resignation.Status, recruiterNotes *string, processedBy string, processedAt time.Time) error {
	d, ok := f.items[id]
	if !ok {
		return resignation.ErrResignationNotFound
	}
	if d.Status != resignation.StatusPending {
		return resignation.ErrAlreadyProcessed
	}
	d.Status = status
	d.RecruiterNotes = recruiterNotes
	d.ProcessedBy = &processedBy
	d.ProcessedAt = &processedAt
	f.items[id] = d
	return nil
}

func (f *fakeResignationRepo) Stats(_ context.Context, companyID string) (resignation.Stats, error) {
	var stats resignation.Stats
	for _, d := range f.items {
		if d.CompanyID != companyID {
			continue
		}
		stats.Total++
		switch d.Status {
		case resignation.StatusPending:
			stats.Pending++
		case resignation.StatusApproved:
			stats.Approved++
		case resignation.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

type fakeAppRepo struct {
	apps map[string]application.ApplicationWithDetails
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

func (f *fakeAppRepo) ListAcceptedUnregistered(_ context.Context, _ string) ([]application.ApplicationWithDetails, error) {
	return nil, nil
}

type fakeWorkerRepo struct {
	workers map[string]contract.Worker // keyed by application ID
}

func (f *fakeWorkerRepo) GetByID(_ context.Context, id string) (contract.Worker, error) {
	for _, w := range f.workers {
		if w.ID == id {
			return w, nil
		}
	}
	return contract.Worker{}, contract.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) ExistsRegistered(_ context.Context, applicationID string) (bool, error) {
	_, ok := f.workers[applicationID]
	return ok, nil
}

func (f *fakeWorkerRepo) GetRegisteredByApplicationID(_ context.Context, applicationID string) (contract.Worker, error) {
	w, ok := f.workers[applicationID]
	if !ok {
		return contract.Worker{}, contract.ErrWorkerNotFound
	}
	return w, nil
}

func (f *fakeWorkerRepo) ListRegisteredByCompanyID(_ context.Context, _ string) ([]contract.WorkerWithDetails, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) Terminate(_ context.Context, id string, reason string, terminatedAt time.Time) error {
	for appID, w := range f.workers {
		if w.ID != id {
			continue
		}
		if w.TerminatedAt != nil {
			return contract.ErrWorkerNotActive
		}
		w.TerminatedAt = &terminatedAt
		w.TerminationReason = &reason
		f.workers[appID] = w
		return nil
	}
	return contract.ErrWorkerNotFound
}

type fakeJobseekerRepo struct {
	profiles map[string]profile.JobseekerProfile
}

func (f *fakeJobseekerRepo) Upsert(_ context.Context, p profile.JobseekerProfile) (profile.JobseekerProfile, error) {
	return p, nil
}

func (f *fakeJobseekerRepo) GetByID(_ context.Context, id string) (profile.JobseekerProfile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return profile.JobseekerProfile{}, profile.ErrJobseekerNotFound
	}
	return p, nil
}

func (f *fakeJobseekerRepo) GetByUserID(_ context.Context, _ string) (profile.JobseekerProfile, error) {
	return profile.JobseekerProfile{}, profile.ErrJobseekerNotFound
}

func (f *fakeJobseekerRepo) ExistsByNIK(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
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
}

type fakeNotifier struct {
	decisions []recordedDecision
}

func (f *fakeNotifier) InterviewInvitation(_, _, _, _ string, _ time.Time, _ int, _ string) {}
func (f *fakeNotifier) InterviewResponse(_, _, _, _ string, _ *string)                      {}
func (f *fakeNotifier) RescheduleNotification(_, _, _, _ string, _, _ time.Time, _ string)  {}
func (f *fakeNotifier) ApplicationDecision(_, _, _, _, _ string, _ *string)                 {}
func (f *fakeNotifier) ContractDecision(_, _, _ string, _ *string)                          {}

func (f *fakeNotifier) ResignationDecision(to, _, _, status string, _ *string) {
	f.decisions = append(f.decisions, recordedDecision{to: to, status: status})
}

type testEnv struct {
	svc        *ResignationService
	resRepo    *fakeResignationRepo
	appRepo    *fakeAppRepo
	workerRepo *fakeWorkerRepo
	notifier   *fakeNotifier
	fixedTime  time.Time
}

func newTestEnv() *testEnv {
	env := &testEnv{
		resRepo:    newFakeResignationRepo(),
		appRepo:    &fakeAppRepo{apps: map[string]application.ApplicationWithDetails{}},
		workerRepo: &fakeWorkerRepo{workers: map[string]contract.Worker{}},
		notifier:   &fakeNotifier{},
		fixedTime:  time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	}
	jobseekerRepo := &fakeJobseekerRepo{profiles: map[string]profile.JobseekerProfile{
		"js-1": {ID: "js-1", UserID: "user-1", FirstName: "Budi", LastName: "Santoso"},
	}}
	userRepo := &fakeUserRepo{users: map[string]user.User{
		"user-1": {ID: "user-1", Email: "budi@example.com"},
	}}
	env.svc = NewResignationService(env.resRepo, env.appRepo, env.workerRepo, jobseekerRepo, userRepo, env.notifier)
	env.svc.now = func() time.Time { return env.fixedTime }

	env.appRepo.apps["app-1"] = application.ApplicationWithDetails{
		Application: application.Application{
			ID:          "app-1",
			JobID:       "job-1",
			JobseekerID: "js-1",
			Status:      application.StatusAccepted,
		},
		JobTitle:    "Backend Engineer",
		CompanyID:   "co-1",
		CompanyName: "PT Maju Jaya",
	}
	return env
}

// registeredWorker attaches an approved contract for app-1 that is
// active at the fixed decision time.
func (e *testEnv) registeredWorker() {
	e.workerRepo.workers["app-1"] = contract.Worker{
		ID:            "worker-1",
		BatchID:       "batch-1",
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		JobTitle:      "Backend Engineer",
		StartDate:     e.fixedTime.AddDate(0, -3, 0),
		EndDate:       e.fixedTime.AddDate(0, 9, 0),
	}
}

func (e *testEnv) submit(t *testing.T) resignation.Resignation {
	t.Helper()

	created, err := e.svc.Submit(context.Background(), resignation.SubmitRequest{
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		Reason:        "Mendapat tawaran yang lebih sesuai",
		LetterURL:     "/uploads/documents/surat-resign.pdf",
	})
	require.NoError(t, err)

	// The fake keeps no joins; fill the display fields the SQL would.
	d := e.resRepo.items[created.ID]
	d.JobTitle = "Backend Engineer"
	d.CompanyID = "co-1"
	d.CompanyName = "PT Maju Jaya"
	e.resRepo.items[created.ID] = d

	return created
}

func TestSubmit_Success(t *testing.T) {
	env := newTestEnv()

	created := env.submit(t)

	assert.Equal(t, resignation.StatusPending, created.Status)
	assert.Equal(t, "app-1", created.ApplicationID)
	assert.NotEmpty(t, created.ID)
}

func TestSubmit_NotOwner(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(context.Background(), resignation.SubmitRequest{
		ApplicationID: "app-1",
		JobseekerID:   "js-2",
		Reason:        "alasan",
		LetterURL:     "/uploads/documents/surat.pdf",
	})

	assert.ErrorIs(t, err, resignation.ErrNotResignationOwner)
}

func TestSubmit_OnlyAcceptedApplications(t *testing.T) {
	env := newTestEnv()
	app := env.appRepo.apps["app-1"]
	app.Status = application.StatusShortlisted
	env.appRepo.apps["app-1"] = app

	_, err := env.svc.Submit(context.Background(), resignation.SubmitRequest{
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		Reason:        "alasan",
		LetterURL:     "/uploads/documents/surat.pdf",
	})

	assert.ErrorIs(t, err, resignation.ErrApplicationNotEligible)
}

func TestSubmit_DuplicateRejected(t *testing.T) {
	env := newTestEnv()
	env.submit(t)

	_, err := env.svc.Submit(context.Background(), resignation.SubmitRequest{
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		Reason:        "alasan lain",
		LetterURL:     "/uploads/documents/surat-v2.pdf",
	})

	assert.ErrorIs(t, err, resignation.ErrAlreadySubmitted)
}

func TestSubmit_MissingLetterRejected(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Submit(context.Background(), resignation.SubmitRequest{
		ApplicationID: "app-1",
		JobseekerID:   "js-1",
		Reason:        "alasan",
	})

	assert.Error(t, err)
	assert.Empty(t, env.resRepo.items)
}

func TestDecide_ApproveReleasesJobseeker(t *testing.T) {
	env := newTestEnv()
	env.registeredWorker()
	created := env.submit(t)

	decided, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-1",
		CompanyID:     "co-1",
		Decision:      resignation.DecisionApprove,
	})
	require.NoError(t, err)

	assert.Equal(t, resignation.StatusApproved, decided.Status)
	require.NotNil(t, decided.ProcessedAt)
	assert.True(t, decided.ProcessedAt.Equal(env.fixedTime))

	app, err := env.appRepo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusResigned, app.Status)

	worker := env.workerRepo.workers["app-1"]
	require.NotNil(t, worker.TerminatedAt)
	assert.Equal(t, contract.EmploymentTerminated, worker.EmploymentStatus(env.fixedTime))

	require.Len(t, env.notifier.decisions, 1)
	assert.Equal(t, "budi@example.com", env.notifier.decisions[0].to)
	assert.Equal(t, string(resignation.StatusApproved), env.notifier.decisions[0].status)
}

func TestDecide_ApproveWithoutContract(t *testing.T) {
	env := newTestEnv()
	created := env.submit(t)

	decided, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-1",
		CompanyID:     "co-1",
		Decision:      resignation.DecisionApprove,
	})
	require.NoError(t, err)
	assert.Equal(t, resignation.StatusApproved, decided.Status)

	app, err := env.appRepo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusResigned, app.Status)
}

func TestDecide_RejectKeepsEmployment(t *testing.T) {
	env := newTestEnv()
	env.registeredWorker()
	created := env.submit(t)

	notes := "Masa kontrak belum memenuhi syarat resign"
	decided, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID:  created.ID,
		RecruiterID:    "rec-1",
		CompanyID:      "co-1",
		Decision:       resignation.DecisionReject,
		RecruiterNotes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, resignation.StatusRejected, decided.Status)

	app, err := env.appRepo.GetByID(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, app.Status)

	worker := env.workerRepo.workers["app-1"]
	assert.Nil(t, worker.TerminatedAt)
	assert.Equal(t, contract.EmploymentActive, worker.EmploymentStatus(env.fixedTime))
}

func TestDecide_WrongCompany(t *testing.T) {
	env := newTestEnv()
	created := env.submit(t)

	_, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-2",
		CompanyID:     "co-other",
		Decision:      resignation.DecisionApprove,
	})

	assert.ErrorIs(t, err, resignation.ErrNotCompanyOwned)
}

func TestDecide_SecondDecisionRejected(t *testing.T) {
	env := newTestEnv()
	created := env.submit(t)

	_, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-1",
		CompanyID:     "co-1",
		Decision:      resignation.DecisionReject,
	})
	require.NoError(t, err)

	_, err = env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-1",
		CompanyID:     "co-1",
		Decision:      resignation.DecisionApprove,
	})
	assert.ErrorIs(t, err, resignation.ErrAlreadyProcessed)

	// First decision stays.
	assert.Equal(t, resignation.StatusRejected, env.resRepo.items[created.ID].Status)
}

func TestGetForJobseeker_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	created := env.submit(t)

	_, err := env.svc.GetForJobseeker(context.Background(), created.ID, "js-2")
	assert.ErrorIs(t, err, resignation.ErrNotResignationOwner)

	res, err := env.svc.GetForJobseeker(context.Background(), created.ID, "js-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.ID)
}

func TestListCompany_StatusFilterAndStats(t *testing.T) {
	env := newTestEnv()
	created := env.submit(t)

	_, err := env.svc.Decide(context.Background(), resignation.DecideRequest{
		ResignationID: created.ID,
		RecruiterID:   "rec-1",
		CompanyID:     "co-1",
		Decision:      resignation.DecisionApprove,
	})
	require.NoError(t, err)

	approved := resignation.StatusApproved
	items, stats, err := env.svc.ListCompany(context.Background(), "co-1", &approved)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, resignation.StatusApproved, items[0].Status)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Equal(t, 0, stats.Pending)

	pending := resignation.StatusPending
	items, _, err = env.svc.ListCompany(context.Background(), "co-1", &pending)
	require.NoError(t, err)
	assert.Empty(t, items)
}
