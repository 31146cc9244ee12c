package customer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	xerrors "helios-service/internal/pkg/errors"
)

func TestTransition_PipelineChain(t *testing.T) {
	c := &Customer{LeadStatus: LeadNew}

	for _, next := range []LeadStatus{LeadContacted, LeadQualified, LeadProposal, LeadNegotiation, LeadWon} {
		require.NoError(t, c.Transition(next))
	}
	require.True(t, c.LeadStatus.IsTerminal())
}

func TestTransition_LostFromAnyOpenStage(t *testing.T) {
	for _, from := range []LeadStatus{LeadNew, LeadContacted, LeadQualified, LeadProposal, LeadNegotiation} {
		c := &Customer{LeadStatus: from}
		require.NoError(t, c.Transition(LeadLost), string(from))
		require.Equal(t, LeadLost, c.LeadStatus)
	}
}

func TestTransition_WonOnlyFromNegotiation(t *testing.T) {
	c := &Customer{LeadStatus: LeadNegotiation}
	require.NoError(t, c.Transition(LeadWon))

	c = &Customer{LeadStatus: LeadQualified}
	err := c.Transition(LeadWon)
	require.Error(t, err)
	require.True(t, errors.Is(err, xerrors.ErrConstraint))
}

func TestTransition_TerminalStagesAreFinal(t *testing.T) {
	c := &Customer{LeadStatus: LeadLost}
	err := c.Transition(LeadContacted)
	require.True(t, errors.Is(err, xerrors.ErrConstraint))
	require.Equal(t, LeadLost, c.LeadStatus)
}

func TestTransition_NoSkipping(t *testing.T) {
	c := &Customer{LeadStatus: LeadNew}
	require.Error(t, c.Transition(LeadProposal))
	require.Equal(t, LeadNew, c.LeadStatus)
}

func TestParseLeadStatus_LegacyVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want LeadStatus
	}{
		{"New Lead", LeadNew},
		{"new", LeadNew},
		{"closed-won", LeadWon},
		{"In Negotiation", LeadNegotiation},
	}
	for _, tc := range cases {
		got, err := ParseLeadStatus(tc.raw)
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}

	_, err := ParseLeadStatus("warmish")
	require.Error(t, err)
}

func TestComputeLeadStats(t *testing.T) {
	customers := []Customer{
		{LeadStatus: LeadNew},
		{LeadStatus: LeadNew},
		{LeadStatus: LeadNegotiation},
		{LeadStatus: LeadWon},
		{LeadStatus: LeadLost},
	}

	stats := ComputeLeadStats(customers)

	require.Equal(t, 5, stats.Total)
	require.Equal(t, 2, stats.ByStatus[LeadNew])
	require.Equal(t, 1, stats.Won)
	require.Equal(t, 1, stats.Lost)
	require.Equal(t, 3, stats.Open)
}
