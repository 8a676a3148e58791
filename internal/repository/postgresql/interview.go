package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/interview"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type interviewRepositoryImpl struct {
	db *database.DB
}

func NewInterviewRepository(db *database.DB) interview.InterviewRepository {
	return &interviewRepositoryImpl{db: db}
}

const interviewColumns = `
	id, recruiter_id, company_id, job_id, title, scheduled_at, duration,
	meeting_url, description, status, created_at, updated_at
`

func scanInterview(row pgx.Row) (interview.Interview, error) {
	var iv interview.Interview
	err := row.Scan(
		&iv.ID,
		&iv.RecruiterID,
		&iv.CompanyID,
		&iv.JobID,
		&iv.Title,
		&iv.ScheduledAt,
		&iv.Duration,
		&iv.MeetingURL,
		&iv.Description,
		&iv.Status,
		&iv.CreatedAt,
		&iv.UpdatedAt,
	)
	return iv, err
}

const participantColumns = `
	id, interview_id, application_id, jobseeker_id, status,
	response_message, responded_at, created_at, updated_at
`

func scanParticipant(row pgx.Row) (interview.Participant, error) {
	var p interview.Participant
	err := row.Scan(
		&p.ID,
		&p.InterviewID,
		&p.ApplicationID,
		&p.JobseekerID,
		&p.Status,
		&p.ResponseMessage,
		&p.RespondedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// Create implements interview.InterviewRepository. The interview and
// its participants are written in one transaction.
func (r *interviewRepositoryImpl) Create(ctx context.Context, iv interview.Interview) (interview.Interview, error) {
	var created interview.Interview

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, _ pgx.Tx) error {
		q := GetQuerier(txCtx, r.db)

		interviewQuery := `
			INSERT INTO interviews (
				recruiter_id, company_id, job_id, title, scheduled_at,
				duration, meeting_url, description, status
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + interviewColumns

		var err error
		created, err = scanInterview(q.QueryRow(ctx, interviewQuery,
			iv.RecruiterID, iv.CompanyID, iv.JobID, iv.Title, iv.ScheduledAt,
			iv.Duration, iv.MeetingURL, iv.Description, iv.Status,
		))
		if err != nil {
			return fmt.Errorf("failed to insert interview: %w", err)
		}

		participantQuery := `
			INSERT INTO interview_participants (interview_id, application_id, jobseeker_id, status)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + participantColumns

		for _, p := range iv.Participants {
			inserted, err := scanParticipant(q.QueryRow(ctx, participantQuery,
				created.ID, p.ApplicationID, p.JobseekerID, p.Status,
			))
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
			created.Participants = append(created.Participants, inserted)
		}

		return nil
	})
	if err != nil {
		return interview.Interview{}, err
	}

	return created, nil
}

// GetByID implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) GetByID(ctx context.Context, id string) (interview.Interview, error) {
	q := GetQuerier(ctx, r.db)

	iv, err := scanInterview(q.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Interview{}, interview.ErrInterviewNotFound
		}
		return interview.Interview{}, err
	}

	rows, err := q.Query(ctx, `SELECT `+participantColumns+` FROM interview_participants WHERE interview_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return interview.Interview{}, err
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return interview.Interview{}, err
		}
		iv.Participants = append(iv.Participants, p)
	}

	return iv, rows.Err()
}

// ListByCompanyID implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string) ([]interview.Interview, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE company_id = $1 ORDER BY scheduled_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []interview.Interview
	for rows.Next() {
		iv, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}

	return interviews, rows.Err()
}

// Reschedule implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) Reschedule(ctx context.Context, id string, scheduledAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE interviews
		SET scheduled_at = $1, status = 'RESCHEDULED', updated_at = NOW()
		WHERE id = $2
	`

	tag, err := q.Exec(ctx, updateQuery, scheduledAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interview.ErrInterviewNotFound
	}

	return nil
}

// UpdateStatus implements interview.InterviewRepository.
func (r *interviewRepositoryImpl) UpdateStatus(ctx context.Context, id string, status interview.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE interviews SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return interview.ErrInterviewNotFound
	}

	return nil
}

// CompleteElapsed implements interview.InterviewRepository. An interview
// is elapsed once its join window has fully closed.
func (r *interviewRepositoryImpl) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE interviews
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE status IN ('SCHEDULED', 'RESCHEDULED')
		  AND scheduled_at + make_interval(mins => $1) < $2
	`

	tag, err := q.Exec(ctx, updateQuery, int(interview.JoinWindowAfter.Minutes()), now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

type participantRepositoryImpl struct {
	db *database.DB
}

func NewParticipantRepository(db *database.DB) interview.ParticipantRepository {
	return &participantRepositoryImpl{db: db}
}

// GetByID implements interview.ParticipantRepository.
func (r *participantRepositoryImpl) GetByID(ctx context.Context, id string) (interview.Participant, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanParticipant(q.QueryRow(ctx, `SELECT `+participantColumns+` FROM interview_participants WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.Participant{}, interview.ErrParticipantNotFound
		}
		return interview.Participant{}, err
	}

	return p, nil
}

const participantDetailSelect = `
	SELECT p.id, p.interview_id, p.application_id, p.jobseeker_id, p.status,
	       p.response_message, p.responded_at, p.created_at, p.updated_at,
	       iv.title, iv.scheduled_at, iv.duration, iv.meeting_url,
	       j.title, c.name,
	       js.first_name || CASE WHEN js.last_name = '' THEN '' ELSE ' ' || js.last_name END,
	       u.email
	FROM interview_participants p
	JOIN interviews iv ON iv.id = p.interview_id
	JOIN jobs j ON j.id = iv.job_id
	JOIN companies c ON c.id = iv.company_id
	JOIN jobseekers js ON js.id = p.jobseeker_id
	JOIN recruiters rec ON rec.id = iv.recruiter_id
	JOIN users u ON u.id = rec.user_id
`

func scanParticipantDetail(row pgx.Row) (interview.ParticipantWithDetails, error) {
	var p interview.ParticipantWithDetails
	err := row.Scan(
		&p.ID,
		&p.InterviewID,
		&p.ApplicationID,
		&p.JobseekerID,
		&p.Status,
		&p.ResponseMessage,
		&p.RespondedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.InterviewTitle,
		&p.ScheduledAt,
		&p.Duration,
		&p.MeetingURL,
		&p.JobTitle,
		&p.CompanyName,
		&p.JobseekerName,
		&p.RecruiterEmail,
	)
	return p, err
}

// GetByIDWithDetails implements interview.ParticipantRepository.
func (r *participantRepositoryImpl) GetByIDWithDetails(ctx context.Context, id string) (interview.ParticipantWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanParticipantDetail(q.QueryRow(ctx, participantDetailSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return interview.ParticipantWithDetails{}, interview.ErrParticipantNotFound
		}
		return interview.ParticipantWithDetails{}, err
	}

	return p, nil
}

func (r *participantRepositoryImpl) listDetails(ctx context.Context, whereClause string, arg any) ([]interview.ParticipantWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, participantDetailSelect+whereClause+` ORDER BY iv.scheduled_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []interview.ParticipantWithDetails
	for rows.Next() {
		p, err := scanParticipantDetail(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, rows.Err()
}

// ListByJobseekerID implements interview.ParticipantRepository.
func (r *participantRepositoryImpl) ListByJobseekerID(ctx context.Context, jobseekerID string) ([]interview.ParticipantWithDetails, error) {
	return r.listDetails(ctx, ` WHERE p.jobseeker_id = $1`, jobseekerID)
}

// ListByInterviewID implements interview.ParticipantRepository.
func (r *participantRepositoryImpl) ListByInterviewID(ctx context.Context, interviewID string) ([]interview.ParticipantWithDetails, error) {
	return r.listDetails(ctx, ` WHERE p.interview_id = $1`, interviewID)
}

// Respond implements interview.ParticipantRepository. The status
// precondition makes concurrent responses race-safe: the first one
// wins, the rest see zero rows affected.
func (r *participantRepositoryImpl) Respond(ctx context.Context, id string, status interview.ParticipantStatus, message *string, respondedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE interview_participants
		SET status = $1,
		    response_message = $2,
		    responded_at = $3,
		    updated_at = NOW()
		WHERE id = $4 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, updateQuery, status, message, respondedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM interview_participants WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return checkErr
		}
		if !exists {
			return interview.ErrParticipantNotFound
		}
		return interview.ErrAlreadyResponded
	}

	return nil
}

// ResetToPending implements interview.ParticipantRepository.
func (r *participantRepositoryImpl) ResetToPending(ctx context.Context, interviewID string) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE interview_participants
		SET status = 'PENDING',
		    response_message = NULL,
		    responded_at = NULL,
		    updated_at = NOW()
		WHERE interview_id = $1
	`

	_, err := q.Exec(ctx, updateQuery, interviewID)
	return err
}
