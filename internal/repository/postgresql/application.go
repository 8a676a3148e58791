package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/application"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) application.ApplicationRepository {
	return &applicationRepositoryImpl{db: db}
}

const applicationDetailSelect = `
	SELECT a.id, a.job_id, a.jobseeker_id, a.status, a.cv_url, a.cover_letter,
	       a.recruiter_notes, a.applied_at, a.updated_at,
	       j.title, j.slug, j.company_id, c.name,
	       js.first_name || CASE WHEN js.last_name = '' THEN '' ELSE ' ' || js.last_name END
	FROM applications a
	JOIN jobs j ON j.id = a.job_id
	JOIN companies c ON c.id = j.company_id
	JOIN jobseekers js ON js.id = a.jobseeker_id
`

func scanApplicationDetail(row pgx.Row) (application.ApplicationWithDetails, error) {
	var a application.ApplicationWithDetails
	err := row.Scan(
		&a.ID,
		&a.JobID,
		&a.JobseekerID,
		&a.Status,
		&a.CVURL,
		&a.CoverLetter,
		&a.RecruiterNotes,
		&a.AppliedAt,
		&a.UpdatedAt,
		&a.JobTitle,
		&a.JobSlug,
		&a.CompanyID,
		&a.CompanyName,
		&a.JobseekerName,
	)
	return a, err
}

// Create implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, app application.Application) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO applications (job_id, jobseeker_id, status, cv_url, cover_letter)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, job_id, jobseeker_id, status, cv_url, cover_letter,
		          recruiter_notes, applied_at, updated_at
	`

	var created application.Application
	err := q.QueryRow(ctx, insertQuery,
		app.JobID, app.JobseekerID, app.Status, app.CVURL, app.CoverLetter,
	).Scan(
		&created.ID,
		&created.JobID,
		&created.JobseekerID,
		&created.Status,
		&created.CVURL,
		&created.CoverLetter,
		&created.RecruiterNotes,
		&created.AppliedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, err
	}

	return created, nil
}

// GetByID implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (application.Application, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT id, job_id, jobseeker_id, status, cv_url, cover_letter,
		       recruiter_notes, applied_at, updated_at
		FROM applications
		WHERE id = $1
	`

	var a application.Application
	err := q.QueryRow(ctx, selectQuery, id).Scan(
		&a.ID,
		&a.JobID,
		&a.JobseekerID,
		&a.Status,
		&a.CVURL,
		&a.CoverLetter,
		&a.RecruiterNotes,
		&a.AppliedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, application.ErrApplicationNotFound
		}
		return application.Application{}, err
	}

	return a, nil
}

// GetByIDWithDetails implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) GetByIDWithDetails(ctx context.Context, id string) (application.ApplicationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanApplicationDetail(q.QueryRow(ctx, applicationDetailSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.ApplicationWithDetails{}, application.ErrApplicationNotFound
		}
		return application.ApplicationWithDetails{}, err
	}

	return a, nil
}

func (r *applicationRepositoryImpl) list(ctx context.Context, whereClause string, arg any) ([]application.ApplicationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, applicationDetailSelect+whereClause+` ORDER BY a.applied_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []application.ApplicationWithDetails
	for rows.Next() {
		a, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}

// ListByJobID implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByJobID(ctx context.Context, jobID string) ([]application.ApplicationWithDetails, error) {
	return r.list(ctx, ` WHERE a.job_id = $1`, jobID)
}

// ListByJobseekerID implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ListByJobseekerID(ctx context.Context, jobseekerID string) ([]application.ApplicationWithDetails, error) {
	return r.list(ctx, ` WHERE a.jobseeker_id = $1`, jobseekerID)
}

// ExistsByJobAndJobseeker implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) ExistsByJobAndJobseeker(ctx context.Context, jobID, jobseekerID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM applications
			WHERE job_id = $1 AND jobseeker_id = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, existsQuery, jobID, jobseekerID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// UpdateStatus implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, status application.Status, recruiterNotes *string) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE applications
		SET status = $1,
		    recruiter_notes = COALESCE($2, recruiter_notes),
		    updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, updateQuery, status, recruiterNotes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrApplicationNotFound
	}

	return nil
}

// Delete implements application.ApplicationRepository.
func (r *applicationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return application.ErrApplicationNotFound
	}

	return nil
}

// ListAcceptedUnregistered implements application.ApplicationRepository.
// An application is considered registered while it belongs to a worker
// in a pending or approved contract batch.
func (r *applicationRepositoryImpl) ListAcceptedUnregistered(ctx context.Context, companyID string) ([]application.ApplicationWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := applicationDetailSelect + `
		WHERE j.company_id = $1
		  AND a.status = 'ACCEPTED'
		  AND NOT EXISTS (
			SELECT 1
			FROM contract_workers cw
			JOIN contract_batches cb ON cb.id = cw.batch_id
			WHERE cw.application_id = a.id
			  AND cb.status IN ('PENDING', 'APPROVED')
		  )
		ORDER BY a.applied_at DESC
	`

	rows, err := q.Query(ctx, selectQuery, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []application.ApplicationWithDetails
	for rows.Next() {
		a, err := scanApplicationDetail(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}

	return apps, rows.Err()
}
