package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/customer"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRepository struct {
	db *pgxpool.Pool
}

func NewCustomerRepository(db *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerColumns = `id, name, email, phone, address, lead_status, contact_preference, notes, created_at, updated_at`

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.LeadStatus, &c.Preference, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts the customer and fills in its generated id and timestamps.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, email, phone, address, lead_status, contact_preference, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		c.Name, c.Email, c.Phone, c.Address, c.LeadStatus, c.Preference, c.Notes,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, id int64) (*customer.Customer, error) {
	query := fmt.Sprintf(`SELECT %s FROM customers WHERE id = $1`, customerColumns)

	c, err := scanCustomer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, address = $5,
		    lead_status = $6, contact_preference = $7, notes = $8, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.LeadStatus, c.Preference, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes the customer together with everything it owns: its jobs,
// those jobs' installations, and its contracts. One transaction, all or nothing.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM installations WHERE job_id IN (SELECT id FROM jobs WHERE customer_id = $1)`, id); err != nil {
		return fmt.Errorf("failed to delete customer installations: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM contracts WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer contracts: %w", err)
	}
	// Contracts owned by someone else can still point at a job being removed.
	if _, err := tx.Exec(ctx,
		`UPDATE contracts SET job_id = NULL WHERE job_id IN (SELECT id FROM jobs WHERE customer_id = $1)`, id); err != nil {
		return fmt.Errorf("failed to detach contracts from customer jobs: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM jobs WHERE customer_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete customer jobs: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

var customerSortKeys = map[string]sortKey{
	"name":        {column: "name"},
	"lead_status": {column: "lead_status"},
	"created_at":  {column: "created_at", defaultDesc: true},
}

func (r *CustomerRepository) List(ctx context.Context, filters *customer.ListFilters) ([]customer.Customer, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.LeadStatus != nil {
		conditions = append(conditions, fmt.Sprintf("lead_status = $%d", argPos))
		args = append(args, *filters.LeadStatus)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR phone ILIKE $%d OR address ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM customers WHERE %s ORDER BY %s`,
		customerColumns,
		strings.Join(conditions, " AND "),
		orderClause(customerSortKeys, filters.SortBy, filters.SortOrder, "created_at"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	customers := []customer.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}

	return customers, nil
}
