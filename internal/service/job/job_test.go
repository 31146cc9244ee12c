package job

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helios-service/internal/domain/job"
	xerrors "helios-service/internal/pkg/errors"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]job.SolarJob
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]job.SolarJob{}}
}

func (r *fakeRepo) Create(_ context.Context, j *job.SolarJob) error {
	r.nextID++
	j.ID = r.nextID
	r.items[j.ID] = *j
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*job.SolarJob, error) {
	j, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := j
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, j *job.SolarJob) error {
	if _, ok := r.items[j.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[j.ID] = *j
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// List mirrors the repository contract: status filter, insertion-order tie-break.
func (r *fakeRepo) List(_ context.Context, filters *job.ListFilters) ([]job.SolarJob, error) {
	out := []job.SolarJob{}
	for _, j := range r.items {
		if filters.Status != nil && j.Status != *filters.Status {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	if filters.Limit > 0 && len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

func newService(repo job.Repository) *JobService {
	return NewJobService(repo, zap.NewNop())
}

func TestCreateJob_StartsPending(t *testing.T) {
	svc := newService(newFakeRepo())

	j, err := svc.CreateJob(context.Background(), &job.CreateJobRequest{
		CustomerName: "Anna Berg", SystemSizeKWP: 9.6, EstimatedRevenue: 18000,
	})

	require.NoError(t, err)
	require.Equal(t, job.StatusPending, j.Status)
	require.NotZero(t, j.ID)
}

func TestCreateJob_Validation(t *testing.T) {
	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "  "})
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))

	_, err = svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "x", SystemSizeKWP: -1})
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))

	_, err = svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "x", EstimatedRevenue: -10})
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))
}

func TestTransitionStatus_PersistsAndValidates(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	j, _ := svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "Anna Berg"})

	got, err := svc.TransitionStatus(ctx, j.ID, "approved")
	require.NoError(t, err)
	require.Equal(t, job.StatusApproved, got.Status)

	// Skipping to completed is rejected and nothing is persisted.
	_, err = svc.TransitionStatus(ctx, j.ID, "completed")
	require.True(t, errors.Is(err, xerrors.ErrConstraint))

	stored, _ := svc.GetJob(ctx, j.ID)
	require.Equal(t, job.StatusApproved, stored.Status)

	_, err = svc.TransitionStatus(ctx, j.ID, "sideways")
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))
}

func TestListJobs_StatusFilterIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		j, _ := svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "done"})
		_, err := svc.TransitionStatus(ctx, j.ID, "approved")
		require.NoError(t, err)
		_, err = svc.TransitionStatus(ctx, j.ID, "in_progress")
		require.NoError(t, err)
		_, err = svc.TransitionStatus(ctx, j.ID, "completed")
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "waiting"})
		require.NoError(t, err)
	}

	completed := job.StatusCompleted
	first, err := svc.ListJobs(ctx, &job.ListFilters{Status: &completed})
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := svc.ListJobs(ctx, &job.ListFilters{Status: &completed})
	require.NoError(t, err)
	require.Equal(t, first, second, "same fetch without writes returns the same ordered sequence")
}

func TestStatistics_OverWholeCollection(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	j, _ := svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "a", SystemSizeKWP: 10, EstimatedRevenue: 20000})
	_, _ = svc.TransitionStatus(ctx, j.ID, "approved")
	_, _ = svc.TransitionStatus(ctx, j.ID, "in_progress")
	_, _ = svc.TransitionStatus(ctx, j.ID, "completed")
	_, _ = svc.CreateJob(ctx, &job.CreateJobRequest{CustomerName: "b", SystemSizeKWP: 6, EstimatedRevenue: 9000})

	stats, err := svc.Statistics(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Completed)
	require.InDelta(t, 20000, stats.TotalRevenue, 1e-9)
	require.InDelta(t, 9000, stats.PendingRevenue, 1e-9)
	require.InDelta(t, 8.0, stats.AverageSystemSize, 1e-9)
	require.InDelta(t, 0.5, stats.CompletionRate, 1e-9)
}

func TestStatistics_EmptyCollection(t *testing.T) {
	svc := newService(newFakeRepo())

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	require.Zero(t, stats.CompletionRate)
	require.Zero(t, stats.AverageSystemSize)
}
