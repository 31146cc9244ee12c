package contract

import "context"

// Repository is the persistence contract for contracts.
type Repository interface {
	Create(ctx context.Context, c *Contract) error
	FindByID(ctx context.Context, id int64) (*Contract, error)
	Update(ctx context.Context, c *Contract) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Contract, error)
}
