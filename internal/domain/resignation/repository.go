package resignation

import (
	"context"
	"time"
)

// ResignationRepository - interface for resignations table
type ResignationRepository interface {
	Create(ctx context.Context, res Resignation) (Resignation, error)
	GetByID(ctx context.Context, id string) (ResignationWithDetails, error)
	ListByCompanyID(ctx context.Context, companyID string, status *Status) ([]ResignationWithDetails, error)
	ExistsByApplicationID(ctx context.Context, applicationID string) (bool, error)

	// Decide sets the terminal status and notes. The update carries a
	// `status = 'PENDING'` precondition; it returns ErrAlreadyProcessed
	// when no row matched.
	Decide(ctx context.Context, id string, status Status, recruiterNotes *string, processedBy string, processedAt time.Time) error

	Stats(ctx context.Context, companyID string) (Stats, error)
}
