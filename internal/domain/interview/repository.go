package interview

import (
	"context"
	"time"
)

// InterviewRepository - interface for interviews table
type InterviewRepository interface {
	// Create inserts the interview and its participants in one transaction.
	Create(ctx context.Context, iv Interview) (Interview, error)

	GetByID(ctx context.Context, id string) (Interview, error)
	ListByCompanyID(ctx context.Context, companyID string) ([]Interview, error)

	// Reschedule updates the slot and marks the interview RESCHEDULED.
	Reschedule(ctx context.Context, id string, scheduledAt time.Time) error

	UpdateStatus(ctx context.Context, id string, status Status) error

	// CompleteElapsed marks SCHEDULED/RESCHEDULED interviews whose join
	// window has fully passed as COMPLETED; returns rows affected.
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
}

// ParticipantRepository - interface for interview_participants table
type ParticipantRepository interface {
	GetByID(ctx context.Context, id string) (Participant, error)
	GetByIDWithDetails(ctx context.Context, id string) (ParticipantWithDetails, error)
	ListByJobseekerID(ctx context.Context, jobseekerID string) ([]ParticipantWithDetails, error)
	ListByInterviewID(ctx context.Context, interviewID string) ([]ParticipantWithDetails, error)

	// Respond stores the candidate response. The update carries a
	// `status = 'PENDING'` precondition; it returns ErrAlreadyResponded
	// when no row matched.
	Respond(ctx context.Context, id string, status ParticipantStatus, message *string, respondedAt time.Time) error

	// ResetToPending reopens all participants of an interview after a
	// recruiter reschedule.
	ResetToPending(ctx context.Context, interviewID string) error
}
