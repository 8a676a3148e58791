package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/job"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	jobsvc "github.com/kerjakita/kerjakita-backend-go/internal/service/job"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListActive(w http.ResponseWriter, r *http.Request)
	GetBySlug(w http.ResponseWriter, r *http.Request)
	ListCompanyJobs(w http.ResponseWriter, r *http.Request)
}

type JobHandlerImpl struct {
	jobService     *jobsvc.JobService
	profileService *profilesvc.ProfileService
}

// Create implements JobHandler.
func (h *JobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq job.CreateJobRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create job decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	recruiterID, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	createReq.RecruiterID = recruiterID
	createReq.CompanyID = companyID

	created, err := h.jobService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create job service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Job created", "job_id", created.ID, "slug", created.Slug)
	response.Created(w, "Job created successfully", job.NewJobResponse(created))
}

// Update implements JobHandler.
func (h *JobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq job.UpdateJobRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update job decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.JobID = chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	updateReq.CompanyID = companyID

	if err := h.jobService.Update(r.Context(), updateReq); err != nil {
		slog.Error("Update job service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job updated successfully", nil)
}

// Delete implements JobHandler.
func (h *JobHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.jobService.Delete(r.Context(), jobID, companyID); err != nil {
		slog.Error("Delete job service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Job deleted successfully", nil)
}

// ListActive implements JobHandler. Public, no auth.
func (h *JobHandlerImpl) ListActive(w http.ResponseWriter, r *http.Request) {
	var location *string
	if loc := r.URL.Query().Get("location"); loc != "" {
		location = &loc
	}

	jobs, err := h.jobService.ListActive(r.Context(), location)
	if err != nil {
		slog.Error("List jobs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]job.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, job.NewJobListingResponse(j))
	}
	response.Success(w, resp)
}

// GetBySlug implements JobHandler. Public, no auth.
func (h *JobHandlerImpl) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	j, err := h.jobService.GetBySlug(r.Context(), slug)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, job.NewJobListingResponse(j))
}

// ListCompanyJobs implements JobHandler.
func (h *JobHandlerImpl) ListCompanyJobs(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	jobs, err := h.jobService.ListCompanyJobs(r.Context(), companyID)
	if err != nil {
		slog.Error("List company jobs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]job.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, job.NewJobResponse(j))
	}
	response.Success(w, resp)
}

func NewJobHandler(jobService *jobsvc.JobService, profileService *profilesvc.ProfileService) JobHandler {
	return &JobHandlerImpl{
		jobService:     jobService,
		profileService: profileService,
	}
}
