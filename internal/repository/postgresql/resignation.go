package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/resignation"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type resignationRepositoryImpl struct {
	db *database.DB
}

func NewResignationRepository(db *database.DB) resignation.ResignationRepository {
	return &resignationRepositoryImpl{db: db}
}

const resignationColumns = `
	id, application_id, jobseeker_id, reason, letter_url, status,
	recruiter_notes, processed_by, processed_at, created_at, updated_at
`

func scanResignation(row pgx.Row) (resignation.Resignation, error) {
	var res resignation.Resignation
	err := row.Scan(
		&res.ID,
		&res.ApplicationID,
		&res.JobseekerID,
		&res.Reason,
		&res.LetterURL,
		&res.Status,
		&res.RecruiterNotes,
		&res.ProcessedBy,
		&res.ProcessedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	return res, err
}

const resignationDetailQuery = `
	SELECT r.id, r.application_id, r.jobseeker_id, r.reason, r.letter_url, r.status,
	       r.recruiter_notes, r.processed_by, r.processed_at, r.created_at, r.updated_at,
	       j.title, j.slug, j.company_id, c.name,
	       js.first_name || CASE WHEN js.last_name = '' THEN '' ELSE ' ' || js.last_name END
	FROM resignations r
	JOIN applications a ON a.id = r.application_id
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN jobseekers js ON js.id = r.jobseeker_id
`

func scanResignationDetail(row pgx.Row) (resignation.ResignationWithDetails, error) {
	var d resignation.ResignationWithDetails
	err := row.Scan(
		&d.ID,
		&d.ApplicationID,
		&d.JobseekerID,
		&d.Reason,
		&d.LetterURL,
		&d.Status,
		&d.RecruiterNotes,
		&d.ProcessedBy,
		&d.ProcessedAt,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.JobTitle,
		&d.JobSlug,
		&d.CompanyID,
		&d.CompanyName,
		&d.JobseekerName,
	)
	return d, err
}

// Create implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) Create(ctx context.Context, res resignation.Resignation) (resignation.Resignation, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO resignations (application_id, jobseeker_id, reason, letter_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + resignationColumns

	created, err := scanResignation(q.QueryRow(ctx, insertQuery,
		res.ApplicationID, res.JobseekerID, res.Reason, res.LetterURL, res.Status,
	))
	if err != nil {
		return resignation.Resignation{}, err
	}

	return created, nil
}

// GetByID implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) GetByID(ctx context.Context, id string) (resignation.ResignationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanResignationDetail(q.QueryRow(ctx, resignationDetailQuery+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return resignation.ResignationWithDetails{}, resignation.ErrResignationNotFound
		}
		return resignation.ResignationWithDetails{}, err
	}

	return d, nil
}

// ListByCompanyID implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string, status *resignation.Status) ([]resignation.ResignationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := resignationDetailQuery + ` WHERE j.company_id = $1`
	args := []any{companyID}
	if status != nil {
		selectQuery += ` AND r.status = $2`
		args = append(args, *status)
	}
	selectQuery += ` ORDER BY r.created_at DESC`

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []resignation.ResignationWithDetails
	for rows.Next() {
		d, err := scanResignationDetail(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}

	return items, rows.Err()
}

// ExistsByApplicationID implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) ExistsByApplicationID(ctx context.Context, applicationID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resignations WHERE application_id = $1)`, applicationID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// Decide implements resignation.ResignationRepository. The status
// precondition in the WHERE clause makes concurrent decisions race-safe.
func (r *resignationRepositoryImpl) Decide(ctx context.Context, id string, status resignation.Status, recruiterNotes *string, processedBy string, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE resignations
		SET status = $1,
		    recruiter_notes = $2,
		    processed_by = $3,
		    processed_at = $4,
		    updated_at = NOW()
		WHERE id = $5 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, updateQuery, status, recruiterNotes, processedBy, processedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from already processed.
		var exists bool
		if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM resignations WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return checkErr
		}
		if !exists {
			return resignation.ErrResignationNotFound
		}
		return resignation.ErrAlreadyProcessed
	}

	return nil
}

// Stats implements resignation.ResignationRepository.
func (r *resignationRepositoryImpl) Stats(ctx context.Context, companyID string) (resignation.Stats, error) {
	q := GetQuerier(ctx, r.db)

	statsQuery := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE r.status = 'PENDING'),
			COUNT(*) FILTER (WHERE r.status = 'APPROVED'),
			COUNT(*) FILTER (WHERE r.status = 'REJECTED')
		FROM resignations r
		JOIN applications a ON a.id = r.application_id
		JOIN jobs j ON j.id = a.job_id
		WHERE j.company_id = $1
	`

	var stats resignation.Stats
	err := q.QueryRow(ctx, statsQuery, companyID).Scan(
		&stats.Total,
		&stats.Pending,
		&stats.Approved,
		&stats.Rejected,
	)
	if err != nil {
		return resignation.Stats{}, err
	}

	return stats, nil
}
