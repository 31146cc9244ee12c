package equipment

import "context"

// Repository is the persistence contract for inventory records.
type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	FindByID(ctx context.Context, id int64) (*Equipment, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Equipment, error)
}
