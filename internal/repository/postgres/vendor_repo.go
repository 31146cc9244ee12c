package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/vendor"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VendorRepository struct {
	db *pgxpool.Pool
}

func NewVendorRepository(db *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, name, email, phone, specialties, rating, address, created_at, updated_at`

func scanVendor(row pgx.Row) (*vendor.Vendor, error) {
	var v vendor.Vendor
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Specialties,
		&v.Rating, &v.Address, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	query := `
		INSERT INTO vendors (name, email, phone, specialties, rating, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.Name, v.Email, v.Phone, v.Specialties, v.Rating, v.Address,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	return nil
}

func (r *VendorRepository) FindByID(ctx context.Context, id int64) (*vendor.Vendor, error) {
	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE id = $1`, vendorColumns)

	v, err := scanVendor(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $2, email = $3, phone = $4, specialties = $5,
		    rating = $6, address = $7, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		v.ID, v.Name, v.Email, v.Phone, v.Specialties, v.Rating, v.Address,
	)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

// Delete removes the vendor and detaches its installations; they keep their
// own records with a null vendor reference. One transaction, all or nothing.
func (r *VendorRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `UPDATE installations SET vendor_id = NULL WHERE vendor_id = $1`, id); err != nil {
		return fmt.Errorf("failed to detach vendor installations: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}

	return tx.Commit(ctx)
}

var vendorSortKeys = map[string]sortKey{
	"name":       {column: "name"},
	"rating":     {column: "rating", defaultDesc: true},
	"created_at": {column: "created_at", defaultDesc: true},
}

func (r *VendorRepository) List(ctx context.Context, filters *vendor.ListFilters) ([]vendor.Vendor, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Specialty != "" {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(specialties)", argPos))
		args = append(args, filters.Specialty)
		argPos++
	}

	if filters.MinRating != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= $%d", argPos))
		args = append(args, *filters.MinRating)
		argPos++
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR email ILIKE $%d OR address ILIKE $%d)",
			argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM vendors WHERE %s ORDER BY %s`,
		vendorColumns,
		strings.Join(conditions, " AND "),
		orderClause(vendorSortKeys, filters.SortBy, filters.SortOrder, "name"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vendors: %w", err)
	}
	defer rows.Close()

	vendors := []vendor.Vendor{}
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor: %w", err)
		}
		vendors = append(vendors, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vendors: %w", err)
	}

	return vendors, nil
}
