package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/job"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type JobRepository struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = `id, customer_id, customer_name, customer_address, system_size_kwp,
	status, scheduled_date, estimated_revenue, notes, created_at, updated_at`

func scanJob(row pgx.Row) (*job.SolarJob, error) {
	var j job.SolarJob
	err := row.Scan(
		&j.ID, &j.CustomerID, &j.CustomerName, &j.CustomerAddress, &j.SystemSizeKWP,
		&j.Status, &j.ScheduledDate, &j.EstimatedRevenue, &j.Notes, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *JobRepository) Create(ctx context.Context, j *job.SolarJob) error {
	query := `
		INSERT INTO jobs (customer_id, customer_name, customer_address, system_size_kwp,
		                  status, scheduled_date, estimated_revenue, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		j.CustomerID, j.CustomerName, j.CustomerAddress, j.SystemSizeKWP,
		j.Status, j.ScheduledDate, j.EstimatedRevenue, j.Notes,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}

	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id int64) (*job.SolarJob, error) {
	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE id = $1`, jobColumns)

	j, err := scanJob(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return j, nil
}

func (r *JobRepository) Update(ctx context.Context, j *job.SolarJob) error {
	query := `
		UPDATE jobs
		SET customer_name = $2, customer_address = $3, system_size_kwp = $4, status = $5,
		    scheduled_date = $6, estimated_revenue = $7, notes = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		j.ID, j.CustomerName, j.CustomerAddress, j.SystemSizeKWP, j.Status,
		j.ScheduledDate, j.EstimatedRevenue, j.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes the job and its installations, and detaches any contract that
// still points at it. One transaction, all or nothing.
func (r *JobRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM installations WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete job installations: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE contracts SET job_id = NULL WHERE job_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach job contracts: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

var jobSortKeys = map[string]sortKey{
	"customer_name":     {column: "customer_name"},
	"status":            {column: "status"},
	"system_size":       {column: "system_size_kwp", defaultDesc: true},
	"scheduled_date":    {column: "scheduled_date", defaultDesc: true},
	"estimated_revenue": {column: "estimated_revenue", defaultDesc: true},
	"created_at":        {column: "created_at", defaultDesc: true},
}

func (r *JobRepository) List(ctx context.Context, filters *job.ListFilters) ([]job.SolarJob, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", argPos))
		args = append(args, *filters.CustomerID)
		argPos++
	}

	if filters.ScheduledFrom != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_date >= $%d", argPos))
		args = append(args, *filters.ScheduledFrom)
		argPos++
	}

	if filters.ScheduledTo != nil {
		conditions = append(conditions, fmt.Sprintf("scheduled_date <= $%d", argPos))
		args = append(args, *filters.ScheduledTo)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(customer_name ILIKE $%d OR customer_address ILIKE $%d OR notes ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM jobs WHERE %s ORDER BY %s`,
		jobColumns,
		strings.Join(conditions, " AND "),
		orderClause(jobSortKeys, filters.SortBy, filters.SortOrder, "created_at"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []job.SolarJob{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read jobs: %w", err)
	}

	return jobs, nil
}
