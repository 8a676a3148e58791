package application

import "errors"

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrInvalidTransition    = errors.New("application status transition not allowed")
	ErrAlreadyApplied       = errors.New("already applied to this job")
	ErrNotApplicationOwner  = errors.New("application does not belong to this jobseeker")
	ErrNotCompanyOwned      = errors.New("application does not belong to this company")
	ErrRejectedOnlyDeletion = errors.New("only rejected applications can be deleted")
)
