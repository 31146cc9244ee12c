package job

import "context"

// Repository is the persistence contract for solar jobs.
// Delete cascades to the job's installations and detaches its contracts
// in a single atomic transaction.
type Repository interface {
	Create(ctx context.Context, j *SolarJob) error
	FindByID(ctx context.Context, id int64) (*SolarJob, error)
	Update(ctx context.Context, j *SolarJob) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]SolarJob, error)
}
