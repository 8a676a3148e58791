package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/profile"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type recruiterRepositoryImpl struct {
	db *database.DB
}

func NewRecruiterRepository(db *database.DB) profile.RecruiterRepository {
	return &recruiterRepositoryImpl{db: db}
}

const recruiterSelect = `
	SELECT r.id, r.user_id, r.first_name, r.last_name, r.position, r.phone,
	       c.id, c.name, c.industry, c.address, c.city, c.logo_url,
	       r.created_at, r.updated_at
	FROM recruiters r
	JOIN companies c ON c.id = r.company_id
`

func scanRecruiter(row pgx.Row) (profile.RecruiterProfile, error) {
	var p profile.RecruiterProfile
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FirstName,
		&p.LastName,
		&p.Position,
		&p.Phone,
		&p.CompanyID,
		&p.CompanyName,
		&p.CompanyIndustry,
		&p.CompanyAddress,
		&p.CompanyCity,
		&p.CompanyLogoURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Upsert implements profile.RecruiterRepository. The recruiter and its
// company are written in one transaction.
func (r *recruiterRepositoryImpl) Upsert(ctx context.Context, p profile.RecruiterProfile) (profile.RecruiterProfile, error) {
	var saved profile.RecruiterProfile

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, _ pgx.Tx) error {
		q := GetQuerier(txCtx, r.db)

		companyQuery := `
			INSERT INTO companies (owner_user_id, name, industry, address, city, logo_url)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (owner_user_id) DO UPDATE SET
				name       = EXCLUDED.name,
				industry   = EXCLUDED.industry,
				address    = EXCLUDED.address,
				city       = EXCLUDED.city,
				logo_url   = EXCLUDED.logo_url,
				updated_at = NOW()
			RETURNING id
		`

		var companyID string
		err := q.QueryRow(ctx, companyQuery,
			p.UserID, p.CompanyName, p.CompanyIndustry, p.CompanyAddress, p.CompanyCity, p.CompanyLogoURL,
		).Scan(&companyID)
		if err != nil {
			return fmt.Errorf("failed to upsert company: %w", err)
		}

		recruiterQuery := `
			INSERT INTO recruiters (user_id, company_id, first_name, last_name, position, phone)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id) DO UPDATE SET
				company_id = EXCLUDED.company_id,
				first_name = EXCLUDED.first_name,
				last_name  = EXCLUDED.last_name,
				position   = EXCLUDED.position,
				phone      = EXCLUDED.phone,
				updated_at = NOW()
			RETURNING id
		`

		var recruiterID string
		err = q.QueryRow(ctx, recruiterQuery,
			p.UserID, companyID, p.FirstName, p.LastName, p.Position, p.Phone,
		).Scan(&recruiterID)
		if err != nil {
			return fmt.Errorf("failed to upsert recruiter: %w", err)
		}

		saved, err = scanRecruiter(q.QueryRow(ctx, recruiterSelect+` WHERE r.id = $1`, recruiterID))
		return err
	})
	if err != nil {
		return profile.RecruiterProfile{}, err
	}

	return saved, nil
}

// GetByID implements profile.RecruiterRepository.
func (r *recruiterRepositoryImpl) GetByID(ctx context.Context, id string) (profile.RecruiterProfile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanRecruiter(q.QueryRow(ctx, recruiterSelect+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.RecruiterProfile{}, profile.ErrRecruiterNotFound
		}
		return profile.RecruiterProfile{}, err
	}

	return p, nil
}

// GetByUserID implements profile.RecruiterRepository.
func (r *recruiterRepositoryImpl) GetByUserID(ctx context.Context, userID string) (profile.RecruiterProfile, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanRecruiter(q.QueryRow(ctx, recruiterSelect+` WHERE r.user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.RecruiterProfile{}, profile.ErrRecruiterNotFound
		}
		return profile.RecruiterProfile{}, err
	}

	return p, nil
}
