package customer

import "context"

// Repository is the persistence contract for customers.
// Delete cascades to the customer's jobs (and their installations) and contracts
// in a single atomic transaction.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id int64) (*Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Customer, error)
}
