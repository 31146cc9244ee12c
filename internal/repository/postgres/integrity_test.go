package postgres

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"helios-service/internal/domain/contract"
	"helios-service/internal/domain/customer"
	"helios-service/internal/domain/installation"
	"helios-service/internal/domain/job"
	"helios-service/internal/domain/vendor"
	xerrors "helios-service/internal/pkg/errors"
)

// These tests exercise the cascade and nullify rules against a real database.
// They skip unless TEST_DATABASE_URL points at a disposable postgres instance.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, NewDB(pool).Migrate(ctx))
	return pool
}

func seedCustomer(t *testing.T, repo *CustomerRepository) *customer.Customer {
	t.Helper()
	c := &customer.Customer{
		Name:       "Integrity Test " + ulid.Make().String(),
		LeadStatus: customer.LeadNew,
		Preference: customer.ContactByPhone,
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func seedJob(t *testing.T, repo *JobRepository, customerID *int64) *job.SolarJob {
	t.Helper()
	j := &job.SolarJob{
		CustomerID:   customerID,
		CustomerName: "Integrity Test",
		Status:       job.StatusPending,
	}
	require.NoError(t, repo.Create(context.Background(), j))
	return j
}

func seedInstallation(t *testing.T, repo *InstallationRepository, jobID, vendorID *int64) *installation.Installation {
	t.Helper()
	i := &installation.Installation{
		JobID:         jobID,
		VendorID:      vendorID,
		ScheduledDate: time.Now().AddDate(0, 0, 1),
		Status:        installation.StatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), i))
	return i
}

func TestDeleteCustomer_CascadesToDependents(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	customers := NewCustomerRepository(pool)
	jobs := NewJobRepository(pool)
	installations := NewInstallationRepository(pool)
	contracts := NewContractRepository(pool)

	c := seedCustomer(t, customers)
	j1 := seedJob(t, jobs, &c.ID)
	j2 := seedJob(t, jobs, &c.ID)
	inst := seedInstallation(t, installations, &j1.ID, nil)
	ct := &contract.Contract{
		ContractNumber: "CT-" + ulid.Make().String(),
		Title:          "Integrity Test",
		CustomerID:     &c.ID,
		JobID:          &j1.ID,
		TotalAmount:    1000,
		Status:         contract.StatusDraft,
	}
	require.NoError(t, contracts.Create(ctx, ct))

	// An unrelated customer with its own job must survive the cascade.
	other := seedCustomer(t, customers)
	otherJob := seedJob(t, jobs, &other.ID)
	t.Cleanup(func() { _ = customers.Delete(ctx, other.ID) })

	require.NoError(t, customers.Delete(ctx, c.ID))

	_, err := customers.FindByID(ctx, c.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
	_, err = jobs.FindByID(ctx, j1.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
	_, err = jobs.FindByID(ctx, j2.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
	_, err = installations.FindByID(ctx, inst.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
	_, err = contracts.FindByID(ctx, ct.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))

	survivor, err := jobs.FindByID(ctx, otherJob.ID)
	require.NoError(t, err)
	require.Equal(t, otherJob.ID, survivor.ID)
}

func TestDeleteVendor_NullifiesInstallationReferences(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	vendors := NewVendorRepository(pool)
	installations := NewInstallationRepository(pool)

	v := &vendor.Vendor{Name: "Integrity Test " + ulid.Make().String()}
	require.NoError(t, vendors.Create(ctx, v))

	i1 := seedInstallation(t, installations, nil, &v.ID)
	i2 := seedInstallation(t, installations, nil, &v.ID)
	t.Cleanup(func() {
		_ = installations.Delete(ctx, i1.ID)
		_ = installations.Delete(ctx, i2.ID)
	})

	require.NoError(t, vendors.Delete(ctx, v.ID))

	_, err := vendors.FindByID(ctx, v.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))

	for _, id := range []int64{i1.ID, i2.ID} {
		got, err := installations.FindByID(ctx, id)
		require.NoError(t, err)
		require.Nil(t, got.VendorID)
	}
}

func TestDeleteJob_RemovesInstallationsAndDetachesContracts(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()

	customers := NewCustomerRepository(pool)
	jobs := NewJobRepository(pool)
	installations := NewInstallationRepository(pool)
	contracts := NewContractRepository(pool)

	c := seedCustomer(t, customers)
	t.Cleanup(func() { _ = customers.Delete(ctx, c.ID) })

	j := seedJob(t, jobs, &c.ID)
	inst := seedInstallation(t, installations, &j.ID, nil)
	ct := &contract.Contract{
		ContractNumber: "CT-" + ulid.Make().String(),
		Title:          "Integrity Test",
		CustomerID:     &c.ID,
		JobID:          &j.ID,
		TotalAmount:    500,
		Status:         contract.StatusDraft,
	}
	require.NoError(t, contracts.Create(ctx, ct))

	require.NoError(t, jobs.Delete(ctx, j.ID))

	_, err := jobs.FindByID(ctx, j.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
	_, err = installations.FindByID(ctx, inst.ID)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))

	// The contract belongs to the customer, not the job: it survives detached.
	got, err := contracts.FindByID(ctx, ct.ID)
	require.NoError(t, err)
	require.Nil(t, got.JobID)
}

func TestDeleteCustomer_MissingID(t *testing.T) {
	pool := testPool(t)
	err := NewCustomerRepository(pool).Delete(context.Background(), -1)
	require.True(t, errors.Is(err, xerrors.ErrNotFound))
}
