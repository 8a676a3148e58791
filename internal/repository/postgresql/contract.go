package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kerjakita/kerjakita-backend-go/internal/domain/contract"
	"github.com/kerjakita/kerjakita-backend-go/internal/pkg/database"
)

type batchRepositoryImpl struct {
	db *database.DB
}

func NewBatchRepository(db *database.DB) contract.BatchRepository {
	return &batchRepositoryImpl{db: db}
}

const batchColumns = `
	id, recruiter_id, company_id, status, recruiter_doc_url,
	admin_response_doc_url, admin_notes, processed_by, processed_at,
	created_at, updated_at
`

func scanBatch(row pgx.Row) (contract.Batch, error) {
	var b contract.Batch
	err := row.Scan(
		&b.ID,
		&b.RecruiterID,
		&b.CompanyID,
		&b.Status,
		&b.RecruiterDocURL,
		&b.AdminResponseDocURL,
		&b.AdminNotes,
		&b.ProcessedBy,
		&b.ProcessedAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	return b, err
}

const workerColumns = `
	id, batch_id, application_id, jobseeker_id, job_title, start_date,
	end_date, salary, notes, terminated_at, termination_reason,
	created_at, updated_at
`

func scanWorker(row pgx.Row) (contract.Worker, error) {
	var w contract.Worker
	err := row.Scan(
		&w.ID,
		&w.BatchID,
		&w.ApplicationID,
		&w.JobseekerID,
		&w.JobTitle,
		&w.StartDate,
		&w.EndDate,
		&w.Salary,
		&w.Notes,
		&w.TerminatedAt,
		&w.TerminationReason,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	return w, err
}

// Create implements contract.BatchRepository. The batch row and all its
// worker rows are written in one transaction.
func (r *batchRepositoryImpl) Create(ctx context.Context, batch contract.Batch) (contract.Batch, error) {
	var created contract.Batch

	err := WithTransaction(ctx, r.db, func(txCtx context.Context, _ pgx.Tx) error {
		q := GetQuerier(txCtx, r.db)

		batchQuery := `
			INSERT INTO contract_batches (recruiter_id, company_id, status, recruiter_doc_url)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + batchColumns

		var err error
		created, err = scanBatch(q.QueryRow(ctx, batchQuery,
			batch.RecruiterID, batch.CompanyID, batch.Status, batch.RecruiterDocURL,
		))
		if err != nil {
			return fmt.Errorf("failed to insert batch: %w", err)
		}

		workerQuery := `
			INSERT INTO contract_workers (
				batch_id, application_id, jobseeker_id, job_title,
				start_date, end_date, salary, notes
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING ` + workerColumns

		for _, w := range batch.Workers {
			inserted, err := scanWorker(q.QueryRow(ctx, workerQuery,
				created.ID, w.ApplicationID, w.JobseekerID, w.JobTitle,
				w.StartDate, w.EndDate, w.Salary, w.Notes,
			))
			if err != nil {
				return fmt.Errorf("failed to insert worker: %w", err)
			}
			created.Workers = append(created.Workers, inserted)
		}

		return nil
	})
	if err != nil {
		return contract.Batch{}, err
	}

	return created, nil
}

// GetByID implements contract.BatchRepository.
func (r *batchRepositoryImpl) GetByID(ctx context.Context, id string) (contract.Batch, error) {
	q := GetQuerier(ctx, r.db)

	b, err := scanBatch(q.QueryRow(ctx, `SELECT `+batchColumns+` FROM contract_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Batch{}, contract.ErrBatchNotFound
		}
		return contract.Batch{}, err
	}

	rows, err := q.Query(ctx, `SELECT `+workerColumns+` FROM contract_workers WHERE batch_id = $1 ORDER BY created_at`, id)
	if err != nil {
		return contract.Batch{}, err
	}
	defer rows.Close()

	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return contract.Batch{}, err
		}
		b.Workers = append(b.Workers, w)
	}

	return b, rows.Err()
}

func (r *batchRepositoryImpl) listBatches(ctx context.Context, whereClause string, args ...any) ([]contract.Batch, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+batchColumns+` FROM contract_batches `+whereClause+` ORDER BY created_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var batches []contract.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach workers batch by batch; listings are small.
	for i := range batches {
		wrows, err := q.Query(ctx, `SELECT `+workerColumns+` FROM contract_workers WHERE batch_id = $1 ORDER BY created_at`, batches[i].ID)
		if err != nil {
			return nil, err
		}
		for wrows.Next() {
			w, err := scanWorker(wrows)
			if err != nil {
				wrows.Close()
				return nil, err
			}
			batches[i].Workers = append(batches[i].Workers, w)
		}
		if err := wrows.Err(); err != nil {
			wrows.Close()
			return nil, err
		}
		wrows.Close()
	}

	return batches, nil
}

// ListByCompanyID implements contract.BatchRepository.
func (r *batchRepositoryImpl) ListByCompanyID(ctx context.Context, companyID string, status *contract.BatchStatus) ([]contract.Batch, error) {
	if status != nil {
		return r.listBatches(ctx, `WHERE company_id = $1 AND status = $2`, companyID, *status)
	}
	return r.listBatches(ctx, `WHERE company_id = $1`, companyID)
}

// ListPending implements contract.BatchRepository.
func (r *batchRepositoryImpl) ListPending(ctx context.Context) ([]contract.Batch, error) {
	return r.listBatches(ctx, `WHERE status = 'PENDING'`)
}

// CountPending implements contract.BatchRepository.
func (r *batchRepositoryImpl) CountPending(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM contract_batches WHERE status = 'PENDING'`).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// Decide implements contract.BatchRepository. The status precondition
// in the WHERE clause makes concurrent decisions race-safe: exactly one
// update matches, the rest see zero rows affected.
func (r *batchRepositoryImpl) Decide(ctx context.Context, id string, status contract.BatchStatus, adminNotes *string, adminResponseDocURL *string, processedBy string, processedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE contract_batches
		SET status = $1,
		    admin_notes = $2,
		    admin_response_doc_url = $3,
		    processed_by = $4,
		    processed_at = $5,
		    updated_at = NOW()
		WHERE id = $6 AND status = 'PENDING'
	`

	tag, err := q.Exec(ctx, updateQuery, status, adminNotes, adminResponseDocURL, processedBy, processedAt, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish missing from already processed.
		var exists bool
		if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contract_batches WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return checkErr
		}
		if !exists {
			return contract.ErrBatchNotFound
		}
		return contract.ErrBatchAlreadyProcessed
	}

	return nil
}

// Stats implements contract.BatchRepository.
func (r *batchRepositoryImpl) Stats(ctx context.Context, companyID string) (contract.Stats, error) {
	q := GetQuerier(ctx, r.db)

	statsQuery := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PENDING'),
			COUNT(*) FILTER (WHERE status = 'APPROVED'),
			COUNT(*) FILTER (WHERE status = 'REJECTED'),
			COALESCE((
				SELECT COUNT(*)
				FROM contract_workers cw
				JOIN contract_batches cb ON cb.id = cw.batch_id
				WHERE cb.company_id = $1 AND cb.status = 'APPROVED'
			), 0)
		FROM contract_batches
		WHERE company_id = $1
	`

	var stats contract.Stats
	err := q.QueryRow(ctx, statsQuery, companyID).Scan(
		&stats.PendingBatches,
		&stats.ApprovedBatches,
		&stats.RejectedBatches,
		&stats.RegisteredWorkers,
	)
	if err != nil {
		return contract.Stats{}, err
	}

	return stats, nil
}

type workerRepositoryImpl struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) contract.WorkerRepository {
	return &workerRepositoryImpl{db: db}
}

// GetByID implements contract.WorkerRepository.
func (r *workerRepositoryImpl) GetByID(ctx context.Context, id string) (contract.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, `SELECT `+workerColumns+` FROM contract_workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Worker{}, contract.ErrWorkerNotFound
		}
		return contract.Worker{}, err
	}

	return w, nil
}

// ExistsRegistered implements contract.WorkerRepository.
func (r *workerRepositoryImpl) ExistsRegistered(ctx context.Context, applicationID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	existsQuery := `
		SELECT EXISTS (
			SELECT 1
			FROM contract_workers cw
			JOIN contract_batches cb ON cb.id = cw.batch_id
			WHERE cw.application_id = $1
			  AND cb.status IN ('PENDING', 'APPROVED')
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, existsQuery, applicationID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// GetRegisteredByApplicationID implements contract.WorkerRepository.
func (r *workerRepositoryImpl) GetRegisteredByApplicationID(ctx context.Context, applicationID string) (contract.Worker, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT cw.id, cw.batch_id, cw.application_id, cw.jobseeker_id, cw.job_title,
		       cw.start_date, cw.end_date, cw.salary, cw.notes,
		       cw.terminated_at, cw.termination_reason, cw.created_at, cw.updated_at
		FROM contract_workers cw
		JOIN contract_batches cb ON cb.id = cw.batch_id
		WHERE cw.application_id = $1 AND cb.status = 'APPROVED'
		ORDER BY cw.created_at DESC
		LIMIT 1
	`

	w, err := scanWorker(q.QueryRow(ctx, selectQuery, applicationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contract.Worker{}, contract.ErrWorkerNotFound
		}
		return contract.Worker{}, err
	}

	return w, nil
}

// ListRegisteredByCompanyID implements contract.WorkerRepository.
func (r *workerRepositoryImpl) ListRegisteredByCompanyID(ctx context.Context, companyID string) ([]contract.WorkerWithDetails, error) {
	q := GetQuerier(ctx, r.db)

	selectQuery := `
		SELECT cw.id, cw.batch_id, cw.application_id, cw.jobseeker_id, cw.job_title,
		       cw.start_date, cw.end_date, cw.salary, cw.notes,
		       cw.terminated_at, cw.termination_reason, cw.created_at, cw.updated_at,
		       js.first_name || CASE WHEN js.last_name = '' THEN '' ELSE ' ' || js.last_name END,
		       cb.status
		FROM contract_workers cw
		JOIN contract_batches cb ON cb.id = cw.batch_id
		JOIN jobseekers js ON js.id = cw.jobseeker_id
		WHERE cb.company_id = $1 AND cb.status = 'APPROVED'
		ORDER BY cw.start_date DESC
	`

	rows, err := q.Query(ctx, selectQuery, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workers []contract.WorkerWithDetails
	for rows.Next() {
		var w contract.WorkerWithDetails
		err := rows.Scan(
			&w.ID, &w.BatchID, &w.ApplicationID, &w.JobseekerID, &w.JobTitle,
			&w.StartDate, &w.EndDate, &w.Salary, &w.Notes,
			&w.TerminatedAt, &w.TerminationReason, &w.CreatedAt, &w.UpdatedAt,
			&w.JobseekerName, &w.BatchStatus,
		)
		if err != nil {
			return nil, err
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// Terminate implements contract.WorkerRepository. The terminated_at
// precondition makes a double termination lose cleanly.
func (r *workerRepositoryImpl) Terminate(ctx context.Context, id string, reason string, terminatedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	updateQuery := `
		UPDATE contract_workers
		SET terminated_at = $1,
		    termination_reason = $2,
		    updated_at = NOW()
		WHERE id = $3 AND terminated_at IS NULL
	`

	tag, err := q.Exec(ctx, updateQuery, terminatedAt, reason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if checkErr := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM contract_workers WHERE id = $1)`, id).Scan(&exists); checkErr != nil {
			return checkErr
		}
		if !exists {
			return contract.ErrWorkerNotFound
		}
		return contract.ErrWorkerNotActive
	}

	return nil
}
