package resignation

import "errors"

var (
	ErrResignationNotFound    = errors.New("resignation request not found")
	ErrAlreadySubmitted       = errors.New("resignation already submitted for this application")
	ErrAlreadyProcessed       = errors.New("resignation request already processed")
	ErrNotResignationOwner    = errors.New("resignation request does not belong to this jobseeker")
	ErrNotCompanyOwned        = errors.New("resignation request does not belong to this company")
	ErrApplicationNotEligible = errors.New("only accepted applications can submit a resignation")
)
