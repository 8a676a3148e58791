package response

import (
	"errors"
	"net/http"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/auth"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/interview"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/job"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/resignation"
	"github.com/kerjakita/kerjakita-backend-go/internal/domain/user"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/validator"
	"github.com/kerjakita/kerjakita-backend-go/internal/service/file"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Profile domain errors
	case errors.Is(err, profile.ErrJobseekerNotFound):
		NotFound(w, "Jobseeker profile not found")
	case errors.Is(err, profile.ErrRecruiterNotFound):
		NotFound(w, "Recruiter profile not found")
	case errors.Is(err, profile.ErrNIKExists):
		Conflict(w, "NIK already registered")

	// Job domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrSlugExists):
		Conflict(w, "Job slug already exists")
	case errors.Is(err, job.ErrNotJobOwner):
		Forbidden(w, "Job does not belong to your company")
	case errors.Is(err, job.ErrJobNotActive):
		Conflict(w, "Job is no longer active")

	// Application domain errors
	case errors.Is(err, application.ErrApplicationNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, application.ErrAlreadyApplied):
		Conflict(w, "Already applied to this job")
	case errors.Is(err, application.ErrInvalidTransition):
		Conflict(w, "Application status transition not allowed")
	case errors.Is(err, application.ErrNotApplicationOwner):
		Forbidden(w, "Application does not belong to you")
	case errors.Is(err, application.ErrNotCompanyOwned):
		Forbidden(w, "Application does not belong to your company")
	case errors.Is(err, application.ErrRejectedOnlyDeletion):
		Conflict(w, "Only rejected applications can be deleted")

	// Contract domain errors
	case errors.Is(err, contract.ErrBatchNotFound):
		NotFound(w, "Contract batch not found")
	case errors.Is(err, contract.ErrWorkerNotFound):
		NotFound(w, "Contract worker not found")
	case errors.Is(err, contract.ErrBatchAlreadyProcessed):
		Conflict(w, "Contract batch has already been processed")
	case errors.Is(err, contract.ErrApplicationRegistered):
		Conflict(w, "Application is already registered in a batch")
	case errors.Is(err, contract.ErrApplicationNotAccepted):
		Conflict(w, "Application has not been accepted")
	case errors.Is(err, contract.ErrBatchNotApproved):
		Conflict(w, "Contract batch is not approved")
	case errors.Is(err, contract.ErrBatchNotRejected):
		Conflict(w, "Only rejected batches can be resubmitted")
	case errors.Is(err, contract.ErrWorkerNotActive):
		Conflict(w, "Worker is not active")
	case errors.Is(err, contract.ErrNotCompanyOwned):
		Forbidden(w, "Contract batch does not belong to your company")

	// Interview domain errors
	case errors.Is(err, interview.ErrInterviewNotFound):
		NotFound(w, "Interview not found")
	case errors.Is(err, interview.ErrParticipantNotFound):
		NotFound(w, "Interview invitation not found")
	case errors.Is(err, interview.ErrAlreadyResponded):
		Conflict(w, "Invitation has already been responded to")
	case errors.Is(err, interview.ErrNotParticipantOwner):
		Forbidden(w, "Invitation does not belong to you")
	case errors.Is(err, interview.ErrNotCompanyOwned):
		Forbidden(w, "Interview does not belong to your company")
	case errors.Is(err, interview.ErrInterviewNotActive):
		Conflict(w, "Interview is no longer active")

	// Resignation domain errors
	case errors.Is(err, resignation.ErrResignationNotFound):
		NotFound(w, "Resignation request not found")
	case errors.Is(err, resignation.ErrAlreadySubmitted):
		Conflict(w, "Resignation already submitted for this application")
	case errors.Is(err, resignation.ErrAlreadyProcessed):
		Conflict(w, "Resignation request has already been processed")
	case errors.Is(err, resignation.ErrApplicationNotEligible):
		Conflict(w, "Only accepted applications can submit a resignation")
	case errors.Is(err, resignation.ErrNotResignationOwner):
		Forbidden(w, "Resignation request does not belong to you")
	case errors.Is(err, resignation.ErrNotCompanyOwned):
		Forbidden(w, "Resignation request does not belong to your company")

	// Upload errors
	case errors.Is(err, file.ErrUnknownKind):
		BadRequest(w, "Unknown upload kind", nil)
	case errors.Is(err, file.ErrInvalidFileType):
		BadRequest(w, "File type not allowed for this upload", nil)
	case errors.Is(err, file.ErrFileTooLarge):
		BadRequest(w, "File exceeds the size limit for this upload", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
