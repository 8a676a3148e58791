package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type jobseekerRepositoryImpl struct {
	db *database.DB
}

func NewJobseekerRepository(db *database.DB) profile.JobseekerRepository {
	return &jobseekerRepositoryImpl{db: db}
}

const jobseekerColumns = `
	id, user_id, first_name, last_name, phone, address, city, id_number,
	birth_date, summary, skills, photo_url, cv_url, created_at, updated_at
`

func scanJobseeker(row pgx.Row) (profile.JobseekerProfile, error) {
	var p profile.JobseekerProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Phone,
		&p.Address,
		&p.City,
		&p.IDNumber,
		&p.BirthDate,
		&p.Summary,
		&p.Skills,
		&p.PhotoURL,
		&p.CVURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Upsert implements profile.JobseekerRepository.
func (r *jobseekerRepositoryImpl) Upsert(ctx context.Context, p profile.JobseekerProfile) (profile.JobseekerProfile, error) {
	q := GetQuerier(ctx, r.db)

	upsertQuery := `
		INSERT INTO jobseekers (
			user_id, first_name, last_name, phone, address, city, id_number,
			birth_date, summary, skills, photo_url, cv_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			phone      = EXCLUDED.phone,
			address    = EXCLUDED.address,
			city       = EXCLUDED.city,
			id_number  = EXCLUDED.id_number,
			birth_date = EXCLUDED.birth_date,
			summary    = EXCLUDED.summary,
			skills     = EXCLUDED.skills,
			photo_url  = EXCLUDED.photo_url,
			cv_url     = EXCLUDED.cv_url,
			updated_at = NOW()
		RETURNING ` + jobseekerColumns

	saved, err := scanJobseeker(q.QueryRow(ctx, upsertQuery,
		p.UserID, p.FirstName, p.LastName, p.Phone, p.Address, p.City,
		p.IDNumber, p.BirthDate, p.Summary, p.Skills, p.PhotoURL, p.CVURL,
	))
	if err != nil {
		return profile.JobseekerProfile{}, err
	}

	return saved, nil
}

// GetByID implements profile.JobseekerRepository.
func (r *jobseekerRepositoryImpl) GetByID(ctx context.Context, id string) (profile.JobseekerProfile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanJobseeker(q.QueryRow(ctx, `SELECT `+jobseekerColumns+` FROM jobseekers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.JobseekerProfile{}, profile.ErrJobseekerNotFound
		}
		return profile.JobseekerProfile{}, err
	}

	return p, nil
}

// GetByUserID implements profile.JobseekerRepository.
func (r *jobseekerRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.JobseekerProfile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanJobseeker(q.QueryRow(ctx, `SELECT `+jobseekerColumns+` FROM jobseekers WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.JobseekerProfile{}, profile.ErrJobseekerNotFound
		}
		return profile.JobseekerProfile{}, err
	}

	return p, nil
}

// ExistsByNIK implements profile.JobseekerRepository.
func (r *jobseekerRepositoryImpl) ExistsByNIK(ctx context.Context, nik string, excludeUserID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM jobseekers
			WHERE id_number = $1 AND user_id <> $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, existsQuery, nik, excludeUserID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}
