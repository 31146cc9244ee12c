package installation

import "context"

// Repository is the persistence contract for installations.
type Repository interface {
	Create(ctx context.Context, i *Installation) error
	FindByID(ctx context.Context, id int64) (*Installation, error)
	Update(ctx context.Context, i *Installation) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Installation, error)
}
