package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type ProfileHandler interface {
	SubmitJobseeker(w http.ResponseWriter, r *http.Request)
	SubmitRecruiter(w http.ResponseWriter, r *http.Request)
	GetJobseeker(w http.ResponseWriter, r *http.Request)
	GetRecruiter(w http.ResponseWriter, r *http.Request)
}

type ProfileHandlerImpl struct {
	profileService *profilesvc.ProfileService
}

// SubmitJobseeker implements ProfileHandler.
func (h *ProfileHandlerImpl) SubmitJobseeker(w http.ResponseWriter, r *http.Request) {
	var submitReq profile.SubmitJobseekerRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitJobseeker decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	submitReq.UserID = userIDFromContext(r)

	saved, err := h.profileService.SubmitJobseeker(r.Context(), submitReq)
	if err != nil {
		slog.Error("SubmitJobseeker service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Jobseeker profile submitted", "profile_id", saved.ID)
	response.Created(w, "Profile submitted successfully", profile.NewJobseekerResponse(saved))
}

// SubmitRecruiter implements ProfileHandler.
func (h *ProfileHandlerImpl) SubmitRecruiter(w http.ResponseWriter, r *http.Request) {
	var submitReq profile.SubmitRecruiterRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("SubmitRecruiter decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	submitReq.UserID = userIDFromContext(r)

	saved, err := h.profileService.SubmitRecruiter(r.Context(), submitReq)
	if err != nil {
		slog.Error("SubmitRecruiter service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Recruiter profile submitted", "profile_id", saved.ID)
	response.Created(w, "Profile submitted successfully", profile.NewRecruiterResponse(saved))
}

// GetJobseeker implements ProfileHandler.
func (h *ProfileHandlerImpl) GetJobseeker(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileService.GetJobseeker(r.Context(), userIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile.NewJobseekerResponse(p))
}

// GetRecruiter implements ProfileHandler.
func (h *ProfileHandlerImpl) GetRecruiter(w http.ResponseWriter, r *http.Request) {
	p, err := h.profileService.GetRecruiter(r.Context(), userIDFromContext(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, profile.NewRecruiterResponse(p))
}

func NewProfileHandler(profileService *profilesvc.ProfileService) ProfileHandler {
	return &ProfileHandlerImpl{profileService: profileService}
}
