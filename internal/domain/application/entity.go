package application

import "time"

// Status represents the lifecycle of a job application.
type Status string

const (
	StatusPending            Status = "PENDING"
	StatusReviewing          Status = "REVIEWING"
	StatusShortlisted        Status = "SHORTLISTED"
	StatusInterviewScheduled Status = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted Status = "INTERVIEW_COMPLETED"
	StatusAccepted           Status = "ACCEPTED"
	StatusRejected           Status = "REJECTED"
	StatusWithdrawn          Status = "WITHDRAWN"

	// StatusResigned is assigned when an approved contract worker is
	// terminated, releasing the jobseeker back into the market.
	StatusResigned Status = "RESIGNED"
)

// statusRank orders the forward-only review pipeline. Terminal states
// (REJECTED, WITHDRAWN, RESIGNED) are not part of the pipeline.
var statusRank = map[Status]int{
	StatusPending:            0,
	StatusReviewing:          1,
	StatusShortlisted:        2,
	StatusInterviewScheduled: 3,
	StatusInterviewCompleted: 4,
	StatusAccepted:           5,
}

// CanTransition reports whether a recruiter-driven move from one status
// to another is allowed. Pipeline moves only go forward; REJECTED and
// WITHDRAWN are reachable from any pipeline state and are terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	fromRank, fromInPipeline := statusRank[from]
	if !fromInPipeline {
		return false // terminal states never move
	}
	if to == StatusRejected || to == StatusWithdrawn {
		return true
	}
	toRank, toInPipeline := statusRank[to]
	if !toInPipeline {
		return false
	}
	return toRank > fromRank
}

// Application represents a jobseeker's application to a job posting.
type Application struct {
	ID          string
	JobID       string
	JobseekerID string
	Status      Status
	CVURL       string
	CoverLetter *string

	RecruiterNotes *string

	AppliedAt time.Time
	UpdatedAt time.Time
}

// ApplicationWithDetails carries joined display fields for listings.
type ApplicationWithDetails struct {
	Application
	JobTitle      string
	JobSlug       string
	CompanyID     string
	CompanyName   string
	JobseekerName string
}

// MatchResult is the advisory output of the CV-match collaborator.
// It is never persisted; a zero value means "no recommendation".
type MatchResult struct {
	Score       int
	Highlights  []string
	Recommended bool
}

// ScoredApplication pairs an application with its advisory match result.
type ScoredApplication struct {
	ApplicationWithDetails
	Match MatchResult
}
