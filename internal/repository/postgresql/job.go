package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/job"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type jobRepositoryImpl struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.JobRepository {
	return &jobRepositoryImpl{db: db}
}

const jobColumns = `
	id, company_id, recruiter_id, title, slug, description, requirements,
	location, salary_min, salary_max, is_active, created_at, updated_at
`

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	err := row.Scan(
		&j.ID,
		&j.CompanyID,
		&j.RecruiterID,
		&j.Title,
		&j.Slug,
		&j.Description,
		&j.Requirements,
		&j.Location,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.IsActive,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	return j, err
}

// Create implements job.JobRepository.
func (r *jobRepositoryImpl) Create(ctx context.Context, j job.Job) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	insertQuery := `
		INSERT INTO jobs (
			company_id, recruiter_id, title, slug, description, requirements,
			location, salary_min, salary_max, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + jobColumns

	created, err := scanJob(q.QueryRow(ctx, insertQuery,
		j.CompanyID, j.RecruiterID, j.Title, j.Slug, j.Description,
		j.Requirements, j.Location, j.SalaryMin, j.SalaryMax, j.IsActive,
	))
	if err != nil {
		return job.Job{}, err
	}

	return created, nil
}

// GetByID implements job.JobRepository.
func (r *jobRepositoryImpl) GetByID(ctx context.Context, id string) (job.Job, error) {
	q := GetQuerier(ctx, r.db)

	j, err := scanJob(q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrJobNotFound
		}
		return job.Job{}, err
	}

	return j, nil
}

// GetBySlug implements job.JobRepository.
func (r *jobRepositoryImpl) GetBySlug(ctx context.Context, slug string) (job.JobWithCompany, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT j.id, j.company_id, j.recruiter_id, j.title, j.slug, j.description,
		       j.requirements, j.location, j.salary_min, j.salary_max, j.is_active,
		       j.created_at, j.updated_at,
		       c.name, c.logo_url
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.slug = $1
	`

	var jc job.JobWithCompany
	err := q.QueryRow(ctx, selectQuery, slug).Scan(
		&jc.ID, &jc.CompanyID, &jc.RecruiterID, &jc.Title, &jc.Slug,
		&jc.Description, &jc.Requirements, &jc.Location, &jc.SalaryMin,
		&jc.SalaryMax, &jc.IsActive, &jc.CreatedAt, &jc.UpdatedAt,
		&jc.CompanyName, &jc.CompanyLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.JobWithCompany{}, job.ErrJobNotFound
		}
		return job.JobWithCompany{}, err
	}

	return jc, nil
}

// ExistsBySlug implements job.JobRepository.
func (r *jobRepositoryImpl) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM jobs WHERE slug = $1)`, slug).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// ListActive implements job.JobRepository.
func (r *jobRepositoryImpl) ListActive(ctx context.Context, location *string) ([]job.JobWithCompany, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT j.id, j.company_id, j.recruiter_id, j.title, j.slug, j.description,
		       j.requirements, j.location, j.salary_min, j.salary_max, j.is_active,
		       j.created_at, j.updated_at,
		       c.name, c.logo_url
		FROM jobs j
		JOIN companies c ON c.id = j.company_id
		WHERE j.is_active = TRUE
		  AND ($1::text IS NULL OR j.location ILIKE '%' || $1 || '%')
		ORDER BY j.created_at DESC
	`

	rows, err := q.Query(ctx, selectQuery, location)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []job.JobWithCompany
	for rows.Next() {
		var jc job.JobWithCompany
		err := rows.Scan(
			&jc.ID, &jc.CompanyID, &jc.RecruiterID, &jc.Title, &jc.Slug,
			&jc.Description, &jc.Requirements, &jc.Location, &jc.SalaryMin,
			&jc.SalaryMax, &jc.IsActive, &jc.CreatedAt, &jc.UpdatedAt,
			&jc.CompanyName, &jc.CompanyLogo,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, jc)
	}

	return jobs, rows.Err()
}

// ListByCompanyID implements job.JobRepository.
func (r *jobRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string) ([]job.Job, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}

	return jobs, rows.Err()
}

// Update implements job.JobRepository. Only non-nil fields change.
func (r *jobRepositoryImpl) Update(ctx context.Context, req job.UpdateJobRequest) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE jobs
		SET title        = COALESCE($1, title),
		    description  = COALESCE($2, description),
		    requirements = COALESCE($3, requirements),
		    location     = COALESCE($4, location),
		    salary_min   = COALESCE($5, salary_min),
		    salary_max   = COALESCE($6, salary_max),
		    is_active    = COALESCE($7, is_active),
		    updated_at   = NOW()
		WHERE id = $8
	`

	tag, err := q.Exec(ctx, updateQuery,
		req.Title, req.Description, req.Requirements, req.Location,
		req.SalaryMin, req.SalaryMax, req.IsActive, req.JobID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// Delete implements job.JobRepository.
func (r *jobRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}
