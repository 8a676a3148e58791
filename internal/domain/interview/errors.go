package interview

import "errors"

var (
	ErrInterviewNotFound   = errors.New("interview not found")
	ErrParticipantNotFound = errors.New("interview participant not found")
	ErrAlreadyResponded    = errors.New("interview invitation already responded to")
	ErrNotParticipantOwner = errors.New("interview invitation does not belong to this jobseeker")
	ErrNotCompanyOwned     = errors.New("interview does not belong to this company")
	ErrInterviewNotActive  = errors.New("interview is no longer active")
)
