package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"helios-service/internal/domain/equipment"
	xerrors "helios-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EquipmentRepository struct {
	db *pgxpool.Pool
}

func NewEquipmentRepository(db *pgxpool.Pool) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, brand, model, quantity, unit_price,
	low_stock_threshold, warranty_months, supplier, created_at, updated_at`

func scanEquipment(row pgx.Row) (*equipment.Equipment, error) {
	var e equipment.Equipment
	err := row.Scan(
		&e.ID, &e.Name, &e.Category, &e.Brand, &e.Model, &e.Quantity, &e.UnitPrice,
		&e.LowStockThreshold, &e.WarrantyMonths, &e.Supplier, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EquipmentRepository) Create(ctx context.Context, e *equipment.Equipment) error {
	query := `
		INSERT INTO equipment (name, category, brand, model, quantity, unit_price,
		                       low_stock_threshold, warranty_months, supplier)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		e.Name, e.Category, e.Brand, e.Model, e.Quantity, e.UnitPrice,
		e.LowStockThreshold, e.WarrantyMonths, e.Supplier,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	return nil
}

func (r *EquipmentRepository) FindByID(ctx context.Context, id int64) (*equipment.Equipment, error) {
	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE id = $1`, equipmentColumns)

	e, err := scanEquipment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	return e, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *equipment.Equipment) error {
	query := `
		UPDATE equipment
		SET name = $2, category = $3, brand = $4, model = $5, quantity = $6,
		    unit_price = $7, low_stock_threshold = $8, warranty_months = $9,
		    supplier = $10, updated_at = now()
		WHERE id = $1
	`

	tag, err := r.db.Exec(
		ctx, query,
		e.ID, e.Name, e.Category, e.Brand, e.Model, e.Quantity,
		e.UnitPrice, e.LowStockThreshold, e.WarrantyMonths, e.Supplier,
	)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *EquipmentRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

var equipmentSortKeys = map[string]sortKey{
	"name":       {column: "name"},
	"category":   {column: "category"},
	"quantity":   {column: "quantity", defaultDesc: true},
	"unit_price": {column: "unit_price", defaultDesc: true},
	"created_at": {column: "created_at", defaultDesc: true},
}

func (r *EquipmentRepository) List(ctx context.Context, filters *equipment.ListFilters) ([]equipment.Equipment, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filters.Category != nil {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *filters.Category)
		argPos++
	}

	if filters.LowStock != nil {
		if *filters.LowStock {
			conditions = append(conditions, "quantity <= low_stock_threshold")
		} else {
			conditions = append(conditions, "quantity > low_stock_threshold")
		}
	}

	if filters.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR brand ILIKE $%d OR model ILIKE $%d OR supplier ILIKE $%d)",
			argPos, argPos, argPos, argPos,
		))
		args = append(args, "%"+filters.Search+"%")
		argPos++
	}

	query := fmt.Sprintf(`SELECT %s FROM equipment WHERE %s ORDER BY %s`,
		equipmentColumns,
		strings.Join(conditions, " AND "),
		orderClause(equipmentSortKeys, filters.SortBy, filters.SortOrder, "name"),
	)

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filters.Limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	items := []equipment.Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read equipment: %w", err)
	}

	return items, nil
}
