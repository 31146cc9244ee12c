package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/installation"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InstallationRepository struct {
	db *pgxpool.Pool
}

func NewInstallationRepository(db *pgxpool.Pool) *InstallationRepository {
	return &InstallationRepository{db: db}
}

const installationColumns = `id, job_id, vendor_id, scheduled_date, status, crew,
	started_at, completed_at, completion_pct, quality_checked, notes, created_at, updated_at`

func scanInstallation(row pgx.Row) (*installation.Installation, error) {
	var i installation.Installation
	err := row.Scan(
		&i.ID, &i.JobID, &i.VendorID, &i.ScheduledDate, &i.Status, &i.Crew,
		&i.StartedAt, &i.CompletedAt, &i.CompletionPct, &i.QualityChecked,
		&i.Notes, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InstallationRepository) Create(ctx context.Context, i *installation.Installation) error {
	query := `
		INSERT INTO installations (job_id, vendor_id, scheduled_date, status, crew,
		                           completion_pct, quality_checked, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		i.JobID, i.VendorID, i.ScheduledDate, i.Status, i.Crew,
		i.CompletionPct, i.QualityChecked, i.Notes,
	).Scan(&i.ID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create installation: %w", err)
	}

	return nil
}

func (r *InstallationRepository) FindByID(ctx context.Context, id int64) (*installation.Installation, error) {
	query := fmt.Sprintf(`SELECT %s FROM installations WHERE id = $1`, installationColumns)

	i, err := scanInstallation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find installation: %w", err)
	}
	return i, nil
}

// Update persists the full row, status transition and its timestamps together.
func (r *InstallationRepository) Update(ctx context.Context, i *installation.Installation) error {
	query := `
		UPDATE installations
		SET vendor_id = $2, scheduled_date = $3, status = $4, crew = $5,
		    started_at = $6, completed_at = $7, completion_pct = $8,
		    quality_checked = $9, notes = $10, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		i.ID, i.VendorID, i.ScheduledDate, i.Status, i.Crew,
		i.StartedAt, i.CompletedAt, i.CompletionPct, i.QualityChecked, i.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *InstallationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM installations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete installation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

var installationSortKeys = map[string]sortKey{
	"status":         {column: "status"},
	"crew":           {column: "crew"},
	"scheduled_date": {column: "scheduled_date", defaultDesc: true},
	"created_at":     {column: "created_at", defaultDesc: true},
}

func (r *InstallationRepository) List(ctx context.Context, filters *installation.ListFilters) ([]installation.Installation, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *filters.Status)
		argPos++
	}

	if filters.JobID != nil {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", argPos))
		args = append(args, *filters.JobID)
		argPos++
	}

	if filters.VendorID != nil {
		conditions = append(conditions, fmt.Sprintf("vendor_id = $%d", argPos))
		args = append(args, *filters.VendorID)
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
			"(crew ILIKE $%d OR notes ILIKE $%d)", argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM installations WHERE %s ORDER BY %s`,
		installationColumns,
		strings.Join(conditions, " AND "),
		orderClause(installationSortKeys, filters.SortBy, filters.SortOrder, "scheduled_date"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list installations: %w", err)
	}
	defer rows.Close()

	installations := []installation.Installation{}
	for rows.Next() {
		i, err := scanInstallation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installation: %w", err)
		}
		installations = append(installations, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read installations: %w", err)
	}

	return installations, nil
}
