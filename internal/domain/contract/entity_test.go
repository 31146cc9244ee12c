package contract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	xerrors "helios-service/internal/pkg/errors"
)

func TestSign_Unconditional(t *testing.T) {
	c := &Contract{Status: StatusDraft}

	c.Sign()

	require.Equal(t, StatusSigned, c.Status)
	require.NotNil(t, c.SignedAt)
}

func TestActivate_OnlyFromSigned(t *testing.T) {
	c := &Contract{Status: StatusDraft}
	c.Activate()
	require.Equal(t, StatusDraft, c.Status, "activate is a no-op unless signed")
	require.Nil(t, c.StartDate)

	c.Status = StatusSigned
	c.Activate()
	require.Equal(t, StatusActive, c.Status)
	require.True(t, c.IsActive)
	require.NotNil(t, c.StartDate)
}

func TestCancel_ClearsActiveFlag(t *testing.T) {
	c := &Contract{Status: StatusActive, IsActive: true}

	c.Cancel()

	require.Equal(t, StatusCancelled, c.Status)
	require.False(t, c.IsActive)
}

func TestAddPayment_CapsAtTotal(t *testing.T) {
	c := &Contract{Status: StatusActive, TotalAmount: 10000}

	c.AddPayment(4000)
	require.InDelta(t, 4000, c.PaidAmount, 1e-9)
	require.Equal(t, StatusActive, c.Status)

	c.AddPayment(9000)
	require.InDelta(t, 10000, c.PaidAmount, 1e-9, "never exceeds the total")
	require.Equal(t, StatusCompleted, c.Status, "paying off completes the contract")
	require.NotNil(t, c.CompletedAt)
}

func TestAddPayment_ExactTotalCompletes(t *testing.T) {
	c := &Contract{Status: StatusActive, TotalAmount: 500}

	c.AddPayment(500)

	require.InDelta(t, 500, c.PaidAmount, 1e-9)
	require.Equal(t, StatusCompleted, c.Status)
	require.Zero(t, c.RemainingAmount())
}

func TestTransition_ChainAndSideExits(t *testing.T) {
	c := &Contract{Status: StatusDraft}
	require.NoError(t, c.Transition(StatusPendingSignature))
	require.NoError(t, c.Transition(StatusSigned))
	require.NoError(t, c.Transition(StatusActive))
	require.NoError(t, c.Transition(StatusCompleted))

	c = &Contract{Status: StatusPendingSignature}
	require.NoError(t, c.Transition(StatusOnHold))
	require.NoError(t, c.Transition(StatusCancelled))
}

func TestTransition_SkippingChainRejected(t *testing.T) {
	c := &Contract{Status: StatusDraft}

	err := c.Transition(StatusActive)
	require.Error(t, err)
	require.True(t, errors.Is(err, xerrors.ErrConstraint))
	require.Equal(t, StatusDraft, c.Status)
}

func TestParseStatus_LegacyVariants(t *testing.T) {
	got, err := ParseStatus("Pending Signature")
	require.NoError(t, err)
	require.Equal(t, StatusPendingSignature, got)

	got, err = ParseStatus("canceled")
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got)

	_, err = ParseStatus("notarized")
	require.Error(t, err)
	require.True(t, errors.Is(err, xerrors.ErrInvalidInput))
}
