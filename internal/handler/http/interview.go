package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/interview"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/handler/http/response"
	interviewsvc "github.com/kerjakita/kerjakita-backend-go/internal/service/interview"
	profilesvc "github.com/kerjakita/kerjakita-backend-go/internal/service/profile"
)

type InterviewHandler interface {
	Schedule(w http.ResponseWriter, r *http.Request)
	Reschedule(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	ListCompanyInterviews(w http.ResponseWriter, r *http.Request)

	// Candidate side.
	Respond(w http.ResponseWriter, r *http.Request)
	ListMyInvitations(w http.ResponseWriter, r *http.Request)
	GetInvitation(w http.ResponseWriter, r *http.Request)
}

type InterviewHandlerImpl struct {
	interviewService *interviewsvc.InterviewService
	profileService   *profilesvc.ProfileService
}

// Schedule implements InterviewHandler.
func (h *InterviewHandlerImpl) Schedule(w http.ResponseWriter, r *http.Request) {
	var scheduleReq interview.ScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&scheduleReq); err != nil {
		slog.Error("Schedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	recruiterID, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	scheduleReq.RecruiterID = recruiterID
	scheduleReq.CompanyID = companyID

	created, err := h.interviewService.Schedule(r.Context(), scheduleReq)
	if err != nil {
		slog.Error("Schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Interview scheduled", "interview_id", created.ID, "participants", len(created.Participants))
	response.Created(w, "Interview scheduled successfully", interview.NewInterviewResponse(created))
}

// Reschedule implements InterviewHandler.
func (h *InterviewHandlerImpl) Reschedule(w http.ResponseWriter, r *http.Request) {
	var rescheduleReq interview.RescheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&rescheduleReq); err != nil {
		slog.Error("Reschedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	rescheduleReq.InterviewID = chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	rescheduleReq.CompanyID = companyID

	updated, err := h.interviewService.Reschedule(r.Context(), rescheduleReq)
	if err != nil {
		slog.Error("Reschedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Interview rescheduled", "interview_id", updated.ID, "scheduled_at", updated.ScheduledAt)
	response.SuccessWithMessage(w, "Interview rescheduled successfully", interview.NewInterviewResponse(updated))
}

// Complete implements InterviewHandler.
func (h *InterviewHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	interviewID := chi.URLParam(r, "id")

	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.interviewService.Complete(r.Context(), interviewID, companyID); err != nil {
		slog.Error("Complete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Interview completed", nil)
}

// ListCompanyInterviews implements InterviewHandler.
func (h *InterviewHandlerImpl) ListCompanyInterviews(w http.ResponseWriter, r *http.Request) {
	_, companyID, err := recruiterIdentity(r, h.profileService)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	interviews, err := h.interviewService.ListCompanyInterviews(r.Context(), companyID)
	if err != nil {
		slog.Error("ListCompanyInterviews service error", "error", err)
		response.HandleError(w, err)
		return
	}

	resp := make([]interview.InterviewResponse, 0, len(interviews))
	for _, iv := range interviews {
		resp = append(resp, interview.NewInterviewResponse(iv))
	}
	response.Success(w, resp)
}

// Respond implements InterviewHandler.
func (h *InterviewHandlerImpl) Respond(w http.ResponseWriter, r *http.Request) {
	var respondReq interview.RespondRequest

	if err := json.NewDecoder(r.Body).Decode(&respondReq); err != nil {
		slog.Error("Respond decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	respondReq.ParticipantID = chi.URLParam(r, "id")

	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}
	respondReq.JobseekerID = jobseekerID

	participant, err := h.interviewService.Respond(r.Context(), respondReq)
	if err != nil {
		slog.Error("Respond service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Invitation responded", "participant_id", participant.ID, "status", participant.Status)
	response.SuccessWithMessage(w, "Response recorded", map[string]string{
		"participant_id": participant.ID,
		"status":         string(participant.Status),
	})
}

// ListMyInvitations implements InterviewHandler.
func (h *InterviewHandlerImpl) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	invitations, err := h.interviewService.ListMyInvitations(r.Context(), jobseekerID)
	if err != nil {
		slog.Error("ListMyInvitations service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, invitations)
}

// GetInvitation implements InterviewHandler.
func (h *InterviewHandlerImpl) GetInvitation(w http.ResponseWriter, r *http.Request) {
	jobseekerID := profileIDFromContext(r)
	if jobseekerID == "" {
		response.HandleError(w, profile.ErrJobseekerNotFound)
		return
	}

	invitation, err := h.interviewService.GetInvitation(r.Context(), chi.URLParam(r, "id"), jobseekerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, invitation)
}

func NewInterviewHandler(
	interviewService *interviewsvc.InterviewService,
	profileService *profilesvc.ProfileService,
) InterviewHandler {
	return &InterviewHandlerImpl{
		interviewService: interviewService,
		profileService:   profileService,
	}
}
