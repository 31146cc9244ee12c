package customer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"helios-service/internal/domain/customer"
	xerrors "helios-service/internal/pkg/errors"
)

type fakeRepo struct {
	nextID int64
	items  map[int64]customer.Customer
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[int64]customer.Customer{}}
}

func (r *fakeRepo) Create(_ context.Context, c *customer.Customer) error {
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = *c
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := c
	return &out, nil
}

func (r *fakeRepo) Update(_ context.Context, c *customer.Customer) error {
	if _, ok := r.items[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	r.items[c.ID] = *c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, filters *customer.ListFilters) ([]customer.Customer, error) {
	out := []customer.Customer{}
	for _, c := range r.items {
		if filters.LeadStatus != nil && c.LeadStatus != *filters.LeadStatus {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func newService(repo customer.Repository) *CustomerService {
	return NewCustomerService(repo, zap.NewNop())
}

func TestCreateCustomer_EntersPipelineAtNewLead(t *testing.T) {
	svc := newService(newFakeRepo())

	c, err := svc.CreateCustomer(context.Background(), &customer.CreateCustomerRequest{
		Name: "Jonas Meyer", Preference: "Email",
	})

	require.NoError(t, err)
	require.Equal(t, customer.LeadNew, c.LeadStatus)
	require.Equal(t, customer.ContactByEmail, c.Preference)
}

func TestCreateCustomer_Validation(t *testing.T) {
	svc := newService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: " "})
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))

	_, err = svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: "x", Preference: "pigeon"})
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))
}

func TestTransitionLead_ValidatedAndPersisted(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	c, _ := svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: "Jonas Meyer"})

	got, err := svc.TransitionLead(ctx, c.ID, "contacted")
	require.NoError(t, err)
	require.Equal(t, customer.LeadContacted, got.LeadStatus)

	_, err = svc.TransitionLead(ctx, c.ID, "won")
	require.True(t, errors.Is(err, xerrors.ErrConstraint))

	stored, _ := svc.GetCustomer(ctx, c.ID)
	require.Equal(t, customer.LeadContacted, stored.LeadStatus)
}

func TestLeadStats(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)
	ctx := context.Background()

	_, _ = svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: "a"})
	_, _ = svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: "b"})
	c, _ := svc.CreateCustomer(ctx, &customer.CreateCustomerRequest{Name: "c"})
	for _, step := range []string{"contacted", "qualified", "proposal", "negotiation", "won"} {
		_, err := svc.TransitionLead(ctx, c.ID, step)
		require.NoError(t, err)
	}

	stats, err := svc.LeadStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.Won)
	require.Equal(t, 2, stats.Open)
	require.Equal(t, 2, stats.ByStatus[customer.LeadNew])
}

func TestDeleteCustomer_NotFound(t *testing.T) {
	svc := newService(newFakeRepo())
	err := svc.DeleteCustomer(context.Background(), 404)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
}
