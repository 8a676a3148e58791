package interview

import (
	"strconv"
	"time"
)

// Status is the recruiter-side state of the interview itself.
type Status string

const (
	StatusScheduled   Status = "SCHEDULED"
	StatusRescheduled Status = "RESCHEDULED"
	StatusCompleted   Status = "COMPLETED"
	StatusCancelled   Status = "CANCELLED"
)

// ParticipantStatus is the candidate's response state. Once it leaves
// PENDING it is terminal for the candidate; a recruiter reschedule
// resets it to PENDING with a fresh scheduled time.
type ParticipantStatus string

const (
	ParticipantPending             ParticipantStatus = "PENDING"
	ParticipantAccepted            ParticipantStatus = "ACCEPTED"
	ParticipantDeclined            ParticipantStatus = "DECLINED"
	ParticipantRescheduleRequested ParticipantStatus = "RESCHEDULE_REQUESTED"
)

// Join window bounds around the scheduled start.
const (
	JoinWindowBefore = 15 * time.Minute
	JoinWindowAfter  = 60 * time.Minute
)

// Interview represents a recruiter-scheduled meeting slot.
type Interview struct {
	ID          string
	RecruiterID string
	CompanyID   string
	JobID       string
	Title       string
	ScheduledAt time.Time
	Duration    int // minutes
	MeetingURL  string
	Description *string
	Status      Status

	Participants []Participant

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Participant is one invited candidate on an interview.
type Participant struct {
	ID            string
	InterviewID   string
	ApplicationID string
	JobseekerID   string
	Status        ParticipantStatus

	ResponseMessage *string
	RespondedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParticipantWithDetails carries joined display fields plus the parent
// interview schedule, for candidate-facing listings.
type ParticipantWithDetails struct {
	Participant
	InterviewTitle string
	ScheduledAt    time.Time
	Duration       int
	MeetingURL     string
	JobTitle       string
	CompanyName    string
	JobseekerName  string
	RecruiterEmail string
}

// CanJoinMeeting reports whether the join window is open: it opens 15
// minutes before the scheduled start and closes 60 minutes after it.
func CanJoinMeeting(scheduledAt, now time.Time) bool {
	return !now.Before(scheduledAt.Add(-JoinWindowBefore)) && now.Before(scheduledAt.Add(JoinWindowAfter))
}

// TimeUntil renders the distance to the scheduled start as a coarse
// human-readable bucket.
func TimeUntil(scheduledAt, now time.Time) string {
	if scheduledAt.Before(now) {
		return "past"
	}
	d := scheduledAt.Sub(now)
	if days := int(d.Hours()) / 24; days > 0 {
		if days == 1 {
			return "1 day"
		}
		return strconv.Itoa(days) + " days"
	}
	if hours := int(d.Hours()); hours > 0 {
		if hours == 1 {
			return "1 hour"
		}
		return strconv.Itoa(hours) + " hours"
	}
	return "under an hour"
}
