package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/resignation"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type ResignationHandler interface {
	// Jobseeker side.
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)

	// Recruiter side.
	ListCompany(w http.ResponseWriter, r *http.Request)
	GetCompany(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type ResignationHandlerImpl struct {
	resignationService resignation.ResignationService
	profileService     *profilesvc.ProfileService
}

// Submit implements ResignationHandler.
func (h *ResignationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq resignation.SubmitRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit resignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}
	submitReq.JobseekerID = jobseekerID

	created, err := h.resignationService.Submit(r.Context(), submitReq)
	if err != nil {
		slog.Error("Submit resignation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Resignation submitted", "resignation_id", created.ID, "application_id", created.ApplicationID)
	response.Created(w, "Resignation request submitted successfully", resignation.NewResignationResponse(
		resignation.ResignationWithDetails{Resignation: created},
	))
}

// Get implements ResignationHandler.
func (h *ResignationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	res, err := h.resignationService.GetForJobseeker(r.Context(), chi.URLParam(r, "id"), jobseekerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resignation.NewResignationResponse(res))
}

// ListCompany implements ResignationHandler.
func (h *ResignationHandlerImpl) ListCompany(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var status *resignation.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := resignation.Status(raw)
		status = &s
	}

	items, stats, err := h.resignationService.ListCompany(r.Context(), companyID, status)
	if err != nil {
		slog.Error("ListCompany resignations service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, resignation.NewListResponse(items, stats))
}

// GetCompany implements ResignationHandler.
func (h *ResignationHandlerImpl) GetCompany(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	res, err := h.resignationService.GetForCompany(r.Context(), chi.URLParam(r, "id"), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, resignation.NewResignationResponse(res))
}

// Decide implements ResignationHandler.
func (h *ResignationHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var decideReq resignation.DecideRequest

	if err := json.NewDecoder(r.Body).Decode(&decideReq); err != nil {
		slog.Error("Decide resignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	decideReq.ResignationID = chi.URLParam(r, "id")

	recruiterID, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	decideReq.RecruiterID = recruiterID
	decideReq.CompanyID = companyID

	res, err := h.resignationService.Decide(r.Context(), decideReq)
	if err != nil {
		slog.Error("Decide resignation service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Resignation decided", "resignation_id", res.ID, "status", res.Status)
	response.SuccessWithMessage(w, "Resignation request processed", resignation.NewResignationResponse(res))
}

func NewResignationHandler(
	resignationService resignation.ResignationService,
	profileService *profilesvc.ProfileService,
) ResignationHandler {
	return &ResignationHandlerImpl{
		resignationService: resignationService,
		profileService:     profileService,
	}
}
