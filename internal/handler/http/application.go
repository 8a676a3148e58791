package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	applicationsvc "github.com/kerjakita/kerjakita-backend-go/internal/service/application"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type ApplicationHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListForJob(w http.ResponseWriter, r *http.Request)
}

type ApplicationHandlerImpl struct {
	applicationService *applicationsvc.ApplicationService
	profileService     *profilesvc.ProfileService
}

// Apply implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var applyReq application.ApplyRequest

	if err := json.NewDecoder(r.Body).Decode(&applyReq); err != nil {
		slog.Error("Apply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}
	applyReq.JobseekerID = jobseekerID

	created, err := h.applicationService.Apply(r.Context(), applyReq)
	if err != nil {
		slog.Error("Apply service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Application submitted", "application_id", created.ID, "job_id", created.JobID)
	response.Created(w, "Application submitted successfully", application.NewApplicationResponse(
		application.ApplicationWithDetails{Application: created},
	))
}

// Withdraw implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Withdraw(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "id")

	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	if err := h.applicationService.Withdraw(r.Context(), applicationID, jobseekerID); err != nil {
		slog.Error("Withdraw service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application withdrawn successfully", nil)
}

// UpdateStatus implements ApplicationHandler.
func (h *ApplicationHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var updateReq application.UpdateStatusRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ApplicationID = chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	updateReq.CompanyID = companyID

	updated, err := h.applicationService.UpdateStatus(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateStatus service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Application status updated", "application_id", updated.ID, "status", updated.Status)
	response.SuccessWithMessage(w, "Application status updated", application.NewApplicationResponse(
		application.ApplicationWithDetails{Application: updated},
	))
}

// Delete implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	applicationID := chi.URLParam(r, "id")

	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	if err := h.applicationService.Delete(r.Context(), applicationID, jobseekerID); err != nil {
		slog.Error("Delete application service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application deleted successfully", nil)
}

// ListMine implements ApplicationHandler.
func (h *ApplicationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	apps, err := h.applicationService.ListMine(r.Context(), jobseekerID)
	if err != nil {
		slog.Error("ListMine service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]application.ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		resp = append(resp, application.NewApplicationResponse(a))
	}
	response.Success(w, resp)
}

// ListForJob implements ApplicationHandler.
func (h *ApplicationHandlerImpl) ListForJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	scored, err := h.applicationService.ListForJob(r.Context(), jobID, companyID)
	if err != nil {
		slog.Error("ListForJob service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]application.ApplicationResponse, 0, len(scored))
	for _, s := range scored {
		resp = append(resp, application.NewScoredApplicationResponse(s))
	}
	response.Success(w, resp)
}

func NewApplicationHandler(
	applicationService *applicationsvc.ApplicationService,
	profileService *profilesvc.ProfileService,
) ApplicationHandler {
	return &ApplicationHandlerImpl{
		applicationService: applicationService,
		profileService:     profileService,
	}
}
