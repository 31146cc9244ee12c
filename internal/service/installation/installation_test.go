package installation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helios-service/internal/domain/installation"
	xerrors "helios-service/internal/pkg/errors"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]installation.Installation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]installation.Installation{}}
}

func (r *fakeRepo) Create(_ context.Context, i *installation.Installation) error {
	r.nextID++
	i.ID = r.nextID
	r.items[i.ID] = *i
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*installation.Installation, error) {
	i, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := i
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, i *installation.Installation) error {
	if _, ok := r.items[i.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[i.ID] = *i
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ *installation.ListFilters) ([]installation.Installation, error) {
	out := []installation.Installation{}
	for _, i := range r.items {
		out = append(out, i)
	}
	return out, nil
}

func newService(repo installation.Repository) *InstallationService {
	return NewInstallationService(repo, zap.NewNop())
}

func create(t *testing.T, svc *InstallationService) *installation.Installation {
	t.Helper()
	i, err := svc.CreateInstallation(context.Background(), &installation.CreateInstallationRequest{
		ScheduledDate: time.Now().AddDate(0, 0, 3),
		Crew:          "team north",
	})
	require.NoError(t, err)
	return i
}

func TestCreateInstallation_StartsScheduled(t *testing.T) {
	i := create(t, newService(newFakeRepo()))
	require.Equal(t, installation.StatusScheduled, i.Status)
}

func TestStartThenProgressToCompletion(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()
	i := create(t, svc)

	got, err := svc.Start(ctx, i.ID)
	require.NoError(t, err)
	require.Equal(t, installation.StatusInProgress, got.Status)
	require.NotNil(t, got.StartedAt)

	got, err = svc.UpdateProgress(ctx, i.ID, 55)
	require.NoError(t, err)
	require.Equal(t, float64(55), got.CompletionPct)
	require.Equal(t, installation.StatusInProgress, got.Status)

	got, err = svc.UpdateProgress(ctx, i.ID, 130)
	require.NoError(t, err)
	require.Equal(t, installation.StatusCompleted, got.Status, "clamped 100 while in progress completes")
	require.NotNil(t, got.CompletedAt)

	stored, _ := svc.GetInstallation(ctx, i.ID)
	require.Equal(t, installation.StatusCompleted, stored.Status)
}

func TestComplete_RecordsNotes(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()
	i := create(t, svc)

	got, err := svc.Complete(ctx, i.ID, "commissioned and handed over")
	require.NoError(t, err)
	require.Equal(t, installation.StatusCompleted, got.Status)
	require.Equal(t, float64(100), got.CompletionPct)
	require.Equal(t, "commissioned and handed over", got.Notes)
}

func TestTransition_InvalidEdgeNotPersisted(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()
	i := create(t, svc)

	_, err := svc.Transition(ctx, i.ID, "completed")
	require.True(t, errors.Is(err, xerrors.ErrConstraint))

	stored, _ := svc.GetInstallation(ctx, i.ID)
	require.Equal(t, installation.StatusScheduled, stored.Status)
}

func TestOperations_NotFound(t *testing.T) {
	svc := newService(newFakeRepo())
	_, err := svc.Start(context.Background(), 7)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
}
