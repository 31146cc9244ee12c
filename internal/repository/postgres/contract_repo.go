package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/contract"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ContractRepository struct {
	db *pgxpool.Pool
}

func NewContractRepository(db *pgxpool.Pool) *ContractRepository {
	return &ContractRepository{db: db}
}

const contractColumns = `id, contract_number, title, customer_id, job_id, total_amount,
	paid_amount, status, is_active, signed_at, start_date, completed_at, created_at, updated_at`

func scanContract(row pgx.Row) (*contract.Contract, error) {
	var c contract.Contract
	err := row.Scan(
		&c.ID, &c.ContractNumber, &c.Title, &c.CustomerID, &c.JobID, &c.TotalAmount,
		&c.PaidAmount, &c.Status, &c.IsActive, &c.SignedAt, &c.StartDate,
		&c.CompletedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ContractRepository) Create(ctx context.Context, c *contract.Contract) error {
	query := `
		INSERT INTO contracts (contract_number, title, customer_id, job_id,
		                       total_amount, paid_amount, status, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.ContractNumber, c.Title, c.CustomerID, c.JobID,
		c.TotalAmount, c.PaidAmount, c.Status, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	return nil
}

func (r *ContractRepository) FindByID(ctx context.Context, id int64) (*contract.Contract, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE id = $1`, contractColumns)

	c, err := scanContract(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return c, nil
}

// Update persists the full row so a status move, its date stamps and the paid
// amount always land in the same commit.
func (r *ContractRepository) Update(ctx context.Context, c *contract.Contract) error {
	query := `
		UPDATE contracts
		SET title = $2, total_amount = $3, paid_amount = $4, status = $5, is_active = $6,
		    signed_at = $7, start_date = $8, completed_at = $9, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		c.ID, c.Title, c.TotalAmount, c.PaidAmount, c.Status, c.IsActive,
		c.SignedAt, c.StartDate, c.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *ContractRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contracts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

var contractSortKeys = map[string]sortKey{
	"title":           {column: "title"},
	"contract_number": {column: "contract_number"},
	"status":          {column: "status"},
	"total_amount":    {column: "total_amount", defaultDesc: true},
	"signed_at":       {column: "signed_at", defaultDesc: true},
	"created_at":      {column: "created_at", defaultDesc: true},
}

func (r *ContractRepository) List(ctx context.Context, filters *contract.ListFilters) ([]contract.Contract, error) {
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

	if filters.JobID != nil {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", argPos))
		args = append(args, *filters.JobID)
		argPos++
	}

	if filters.SignedFrom != nil {
		conditions = append(conditions, fmt.Sprintf("signed_at >= $%d", argPos))
		args = append(args, *filters.SignedFrom)
		argPos++
	}

	if filters.SignedTo != nil {
		conditions = append(conditions, fmt.Sprintf("signed_at <= $%d", argPos))
		args = append(args, *filters.SignedTo)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(contract_number ILIKE $%d OR title ILIKE $%d)", argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM contracts WHERE %s ORDER BY %s`,
		contractColumns,
		strings.Join(conditions, " AND "),
		orderClause(contractSortKeys, filters.SortBy, filters.SortOrder, "created_at"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	defer rows.Close()

	contracts := []contract.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		contracts = append(contracts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}

	return contracts, nil
}
