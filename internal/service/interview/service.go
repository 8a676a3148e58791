package interview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/interview"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/notification"
)

type InterviewService struct {
	interviewRepo   interview.InterviewRepository
	participantRepo interview.ParticipantRepository
	appRepo         application.ApplicationRepository
	jobseekerRepo   profile.JobseekerRepository
	userRepo        user.UserRepository
	notifier        notification.Notifier

	now func() time.Time
}

func NewInterviewService(
	interviewRepo interview.InterviewRepository,
	participantRepo interview.ParticipantRepository,
	appRepo application.ApplicationRepository,
	jobseekerRepo profile.JobseekerRepository,
	userRepo user.UserRepository,
	notifier notification.Notifier,
) *InterviewService {
	return &InterviewService{
		interviewRepo:   interviewRepo,
		participantRepo: participantRepo,
		appRepo:         appRepo,
		jobseekerRepo:   jobseekerRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Respond records a candidate's answer to a pending invitation and
// notifies the recruiter best-effort.
func (s *InterviewService) Respond(ctx context.Context, req interview.RespondRequest) (interview.Participant, error) {
	if err := req.Validate(); err != nil {
		return interview.Participant{}, err
	}

	participant, err := s.participantRepo.GetByIDWithDetails(ctx, req.ParticipantID)
	if err != nil {
		return interview.Participant{}, err
	}
	if participant.JobseekerID != req.JobseekerID {
		return interview.Participant{}, interview.ErrNotParticipantOwner
	}
	if participant.Status != interview.ParticipantPending {
		return interview.Participant{}, interview.ErrAlreadyResponded
	}

	newStatus := interview.ParticipantStatus(req.Status)

	// ACCEPTED carries no message even if one was sent.
	var message *string
	if newStatus != interview.ParticipantAccepted {
		message = req.Message
	}

	respondedAt := s.now()

	// The repository re-checks status = PENDING atomically; a concurrent
	// response loses here with ErrAlreadyResponded.
	if err := s.participantRepo.Respond(ctx, participant.ID, newStatus, message, respondedAt); err != nil {
		return interview.Participant{}, err
	}

	if participant.RecruiterEmail != "" {
		s.notifier.InterviewResponse(
			participant.RecruiterEmail,
			participant.JobseekerName,
			participant.JobTitle,
			string(newStatus),
			message,
		)
	}

	updated := participant.Participant
	updated.Status = newStatus
	updated.ResponseMessage = message
	updated.RespondedAt = &respondedAt
	return updated, nil
}

// Schedule creates an interview with one PENDING participant per
// application and moves those applications to INTERVIEW_SCHEDULED.
func (s *InterviewService) Schedule(ctx context.Context, req interview.ScheduleRequest) (interview.Interview, error) {
	if err := req.Validate(); err != nil {
		return interview.Interview{}, err
	}

	scheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	iv := interview.Interview{
		RecruiterID: req.RecruiterID,
		CompanyID:   req.CompanyID,
		JobID:       req.JobID,
		Title:       req.Title,
		ScheduledAt: scheduledAt,
		Duration:    req.Duration,
		MeetingURL:  req.MeetingURL,
		Description: req.Description,
		Status:      interview.StatusScheduled,
	}

	for _, appID := range req.ApplicationIDs {
		app, err := s.appRepo.GetByIDWithDetails(ctx, appID)
		if err != nil {
			return interview.Interview{}, fmt.Errorf("failed to get application %s: %w", appID, err)
		}
		if app.CompanyID != req.CompanyID {
			return interview.Interview{}, application.ErrNotCompanyOwned
		}
		if !application.CanTransition(app.Status, application.StatusInterviewScheduled) {
			return interview.Interview{}, application.ErrInvalidTransition
		}
		iv.Participants = append(iv.Participants, interview.Participant{
			ApplicationID: app.ID,
			JobseekerID:   app.JobseekerID,
			Status:        interview.ParticipantPending,
		})
	}

	created, err := s.interviewRepo.Create(ctx, iv)
	if err != nil {
		return interview.Interview{}, fmt.Errorf("failed to create interview: %w", err)
	}

	for _, p := range created.Participants {
		if err := s.appRepo.UpdateStatus(ctx, p.ApplicationID, application.StatusInterviewScheduled, nil); err != nil {
			return interview.Interview{}, fmt.Errorf("failed to update application status: %w", err)
		}
		s.sendInvitation(ctx, created, p)
	}

	return created, nil
}

// sendInvitation emails one participant; failures are logged only.
func (s *InterviewService) sendInvitation(ctx context.Context, iv interview.Interview, p interview.Participant) {
	app, err := s.appRepo.GetByIDWithDetails(ctx, p.ApplicationID)
	if err != nil {
		slog.Error("Failed to resolve application for invitation email", "application_id", p.ApplicationID, "error", err)
		return
	}
	jobseeker, err := s.jobseekerRepo.GetByID(ctx, p.JobseekerID)
	if err != nil {
		slog.Error("Failed to resolve jobseeker for invitation email", "jobseeker_id", p.JobseekerID, "error", err)
		return
	}
	// Jobseekers sign in with the email on their account; the profile
	// row does not duplicate it, so route through the owning user.
	email := s.jobseekerEmail(ctx, jobseeker)
	if email == "" {
		return
	}
	s.notifier.InterviewInvitation(email, jobseeker.FullName(), app.JobTitle, app.CompanyName, iv.ScheduledAt, iv.Duration, iv.MeetingURL)
}

// Reschedule moves the slot, reopens all participants and notifies them.
func (s *InterviewService) Reschedule(ctx context.Context, req interview.RescheduleRequest) (interview.Interview, error) {
	if err := req.Validate(); err != nil {
		return interview.Interview{}, err
	}

	iv, err := s.interviewRepo.GetByID(ctx, req.InterviewID)
	if err != nil {
		return interview.Interview{}, err
	}
	if iv.CompanyID != req.CompanyID {
		return interview.Interview{}, interview.ErrNotCompanyOwned
	}
	if iv.Status != interview.StatusScheduled && iv.Status != interview.StatusRescheduled {
		return interview.Interview{}, interview.ErrInterviewNotActive
	}

	oldScheduledAt := iv.ScheduledAt
	newScheduledAt, _ := time.Parse(time.RFC3339, req.ScheduledAt)

	if err := s.interviewRepo.Reschedule(ctx, iv.ID, newScheduledAt); err != nil {
		return interview.Interview{}, fmt.Errorf("failed to reschedule interview: %w", err)
	}
	if err := s.participantRepo.ResetToPending(ctx, iv.ID); err != nil {
		return interview.Interview{}, fmt.Errorf("failed to reset participants: %w", err)
	}

	participants, err := s.participantRepo.ListByInterviewID(ctx, iv.ID)
	if err != nil {
		return interview.Interview{}, fmt.Errorf("failed to list participants: %w", err)
	}
	for _, p := range participants {
		jobseeker, err := s.jobseekerRepo.GetByID(ctx, p.JobseekerID)
		if err != nil {
			slog.Error("Failed to resolve jobseeker for reschedule email", "jobseeker_id", p.JobseekerID, "error", err)
			continue
		}
		email := s.jobseekerEmail(ctx, jobseeker)
		if email == "" {
			continue
		}
		s.notifier.RescheduleNotification(email, jobseeker.FullName(), p.JobTitle, p.CompanyName, oldScheduledAt, newScheduledAt, iv.MeetingURL)
	}

	iv.ScheduledAt = newScheduledAt
	iv.Status = interview.StatusRescheduled
	return iv, nil
}

// Complete marks an interview finished and moves still-scheduled
// applications forward.
func (s *InterviewService) Complete(ctx context.Context, interviewID, companyID string) error {
	iv, err := s.interviewRepo.GetByID(ctx, interviewID)
	if err != nil {
		return err
	}
	if iv.CompanyID != companyID {
		return interview.ErrNotCompanyOwned
	}
	if iv.Status != interview.StatusScheduled && iv.Status != interview.StatusRescheduled {
		return interview.ErrInterviewNotActive
	}

	if err := s.interviewRepo.UpdateStatus(ctx, iv.ID, interview.StatusCompleted); err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}

	for _, p := range iv.Participants {
		app, err := s.appRepo.GetByID(ctx, p.ApplicationID)
		if err != nil {
			slog.Error("Failed to resolve application on interview completion", "application_id", p.ApplicationID, "error", err)
			continue
		}
		if application.CanTransition(app.Status, application.StatusInterviewCompleted) {
			if err := s.appRepo.UpdateStatus(ctx, app.ID, application.StatusInterviewCompleted, nil); err != nil {
				slog.Error("Failed to move application to interview completed", "application_id", app.ID, "error", err)
			}
		}
	}
	return nil
}

// ListMyInvitations returns the candidate's invitations with timing
// derived against the current clock.
func (s *InterviewService) ListMyInvitations(ctx context.Context, jobseekerID string) ([]interview.InvitationResponse, error) {
	participants, err := s.participantRepo.ListByJobseekerID(ctx, jobseekerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}

	now := s.now()
	responses := make([]interview.InvitationResponse, 0, len(participants))
	for _, p := range participants {
		responses = append(responses, interview.NewInvitationResponse(p, now))
	}
	return responses, nil
}

// GetInvitation returns one invitation with timing derived at now.
func (s *InterviewService) GetInvitation(ctx context.Context, participantID, jobseekerID string) (interview.InvitationResponse, error) {
	p, err := s.participantRepo.GetByIDWithDetails(ctx, participantID)
	if err != nil {
		return interview.InvitationResponse{}, err
	}
	if p.JobseekerID != jobseekerID {
		return interview.InvitationResponse{}, interview.ErrNotParticipantOwner
	}
	return interview.NewInvitationResponse(p, s.now()), nil
}

// ListCompanyInterviews returns the recruiter-side schedule.
func (s *InterviewService) ListCompanyInterviews(ctx context.Context, companyID string) ([]interview.Interview, error) {
	return s.interviewRepo.ListByCompanyID(ctx, companyID)
}

// jobseekerEmail resolves the account email behind a jobseeker profile.
func (s *InterviewService) jobseekerEmail(ctx context.Context, p profile.JobseekerProfile) string {
	u, err := s.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		slog.Error("Failed to resolve account email", "user_id", p.UserID, "error", err)
		return ""
	}
	return u.Email
}
