package contract

import "errors"

var (
	ErrBatchNotFound         = errors.New("contract batch not found")
	ErrWorkerNotFound        = errors.New("contract worker not found")
	ErrBatchAlreadyProcessed = errors.New("contract batch already processed")
	ErrApplicationRegistered = errors.New("application already belongs to a pending or approved batch")
	ErrApplicationNotAccepted = errors.New("application must be accepted before contract registration")
	ErrBatchNotApproved      = errors.New("contract batch is not approved")
	ErrBatchNotRejected      = errors.New("only rejected batches can be resubmitted")
	ErrWorkerNotActive       = errors.New("contract worker is not active")
	ErrNotCompanyOwned       = errors.New("contract batch does not belong to this company")
)
