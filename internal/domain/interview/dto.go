package interview

import (
	"time"

	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
)

// RespondRequest - candidate answers a pending invitation
type RespondRequest struct {
	ParticipantID string  `json:"-"` // from URL
	JobseekerID   string  `json:"-"` // from JWT
	Status        string  `json:"status"`
	Message       *string `json:"message,omitempty"`
}

// rescheduleReasonMinLength is the minimum trimmed length of the
// message accompanying a reschedule request.
const rescheduleReasonMinLength = 10

func (r *RespondRequest) Validate() error {
	var errs validator.ValidationErrors

	switch ParticipantStatus(r.Status) {
	case ParticipantAccepted, ParticipantDeclined:
		// message optional for DECLINED, ignored for ACCEPTED
	case ParticipantRescheduleRequested:
		if r.Message == nil || !validator.MinTrimmedLength(*r.Message, rescheduleReasonMinLength) {
			errs = append(errs, validator.ValidationError{
				Field:   "message",
				Message: "a reason of at least 10 characters is required to request a reschedule",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be ACCEPTED, DECLINED or RESCHEDULE_REQUESTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ScheduleRequest - recruiter schedules an interview for one or more
// shortlisted applications
type ScheduleRequest struct {
	RecruiterID    string   `json:"-"` // from JWT
	CompanyID      string   `json:"-"` // from JWT
	JobID          string   `json:"job_id"`
	Title          string   `json:"title"`
	ScheduledAt    string   `json:"scheduled_at"` // RFC3339
	Duration       int      `json:"duration"`     // minutes
	MeetingURL     string   `json:"meeting_url"`
	Description    *string  `json:"description,omitempty"`
	ApplicationIDs []string `json:"application_ids"`
}

func (r *ScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}
	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if _, ok := validator.IsValidDateTime(r.ScheduledAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_at",
			Message: "scheduled_at is required in RFC3339 format",
		})
	}
	if r.Duration <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration",
			Message: "duration must be a positive number of minutes",
		})
	}
	if validator.IsEmpty(r.MeetingURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "meeting_url",
			Message: "meeting_url is required",
		})
	}
	if len(r.ApplicationIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "application_ids",
			Message: "at least one application is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RescheduleRequest - recruiter moves an interview to a new slot
type RescheduleRequest struct {
	InterviewID string `json:"-"` // from URL
	CompanyID   string `json:"-"` // from JWT
	ScheduledAt string `json:"scheduled_at"` // RFC3339
}

func (r *RescheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDateTime(r.ScheduledAt); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "scheduled_at",
			Message: "scheduled_at is required in RFC3339 format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Timing is computed per read with an explicit clock, never stored.
type Timing struct {
	CanJoin   bool   `json:"can_join"`
	TimeUntil string `json:"time_until"`
	IsPast    bool   `json:"is_past"`
}

// NewTiming derives the join-window state at now.
func NewTiming(scheduledAt, now time.Time) Timing {
	return Timing{
		CanJoin:   CanJoinMeeting(scheduledAt, now),
		TimeUntil: TimeUntil(scheduledAt, now),
		IsPast:    scheduledAt.Before(now),
	}
}

// InvitationResponse is the candidate-facing JSON shape of an invitation.
type InvitationResponse struct {
	ParticipantID   string  `json:"participant_id"`
	InterviewTitle  string  `json:"interview_title"`
	JobTitle        string  `json:"job_title"`
	CompanyName     string  `json:"company_name"`
	ScheduledAt     string  `json:"scheduled_at"`
	Duration        int     `json:"duration"`
	MeetingURL      string  `json:"meeting_url,omitempty"`
	Status          string  `json:"status"`
	ResponseMessage *string `json:"response_message,omitempty"`
	Timing          Timing  `json:"timing"`
}

// NewInvitationResponse hides the meeting link until the invitation is
// accepted and the join window is open.
func NewInvitationResponse(p ParticipantWithDetails, now time.Time) InvitationResponse {
	timing := NewTiming(p.ScheduledAt, now)
	resp := InvitationResponse{
		ParticipantID:   p.ID,
		InterviewTitle:  p.InterviewTitle,
		JobTitle:        p.JobTitle,
		CompanyName:     p.CompanyName,
		ScheduledAt:     p.ScheduledAt.Format(time.RFC3339),
		Duration:        p.Duration,
		Status:          string(p.Status),
		ResponseMessage: p.ResponseMessage,
		Timing:          timing,
	}
	if p.Status == ParticipantAccepted && timing.CanJoin {
		resp.MeetingURL = p.MeetingURL
	}
	return resp
}

// ParticipantResponse is the recruiter-facing JSON shape of one
// invited candidate.
type ParticipantResponse struct {
	ID              string  `json:"id"`
	ApplicationID   string  `json:"application_id"`
	JobseekerID     string  `json:"jobseeker_id"`
	Status          string  `json:"status"`
	ResponseMessage *string `json:"response_message,omitempty"`
	RespondedAt     *string `json:"responded_at,omitempty"`
}

// InterviewResponse is the recruiter-facing JSON shape of an interview
// with its participants.
type InterviewResponse struct {
	ID           string                `json:"id"`
	JobID        string                `json:"job_id"`
	Title        string                `json:"title"`
	ScheduledAt  string                `json:"scheduled_at"`
	Duration     int                   `json:"duration"`
	MeetingURL   string                `json:"meeting_url"`
	Description  *string               `json:"description,omitempty"`
	Status       string                `json:"status"`
	Participants []ParticipantResponse `json:"participants"`
	CreatedAt    string                `json:"created_at"`
}

func NewInterviewResponse(iv Interview) InterviewResponse {
	resp := InterviewResponse{
		ID:           iv.ID,
		JobID:        iv.JobID,
		Title:        iv.Title,
		ScheduledAt:  iv.ScheduledAt.Format(time.RFC3339),
		Duration:     iv.Duration,
		MeetingURL:   iv.MeetingURL,
		Description:  iv.Description,
		Status:       string(iv.Status),
		Participants: make([]ParticipantResponse, 0, len(iv.Participants)),
		CreatedAt:    iv.CreatedAt.Format(time.RFC3339),
	}
	for _, p := range iv.Participants {
		pr := ParticipantResponse{
			ID:              p.ID,
			ApplicationID:   p.ApplicationID,
			JobseekerID:     p.JobseekerID,
			Status:          string(p.Status),
			ResponseMessage: p.ResponseMessage,
		}
		if p.RespondedAt != nil {
			respondedAt := p.RespondedAt.Format(time.RFC3339)
			pr.RespondedAt = &respondedAt
		}
		resp.Participants = append(resp.Participants, pr)
	}
	return resp
}
