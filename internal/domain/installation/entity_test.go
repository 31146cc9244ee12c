package installation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	xerrors "helios-service/internal/pkg/errors"
)

func TestStart_StampsAndMoves(t *testing.T) {
	i := &Installation{Status: StatusScheduled}

	i.Start()

	require.Equal(t, StatusInProgress, i.Status)
	require.NotNil(t, i.StartedAt)
}

func TestComplete_StampsEverything(t *testing.T) {
	i := &Installation{Status: StatusInProgress, CompletionPct: 60}

	i.Complete("panels wired, grid feed verified")

	require.Equal(t, StatusCompleted, i.Status)
	require.NotNil(t, i.CompletedAt)
	require.Equal(t, float64(100), i.CompletionPct)
	require.Equal(t, "panels wired, grid feed verified", i.Notes)
}

func TestComplete_EmptyNotesKeepExisting(t *testing.T) {
	i := &Installation{Status: StatusInProgress, Notes: "south roof"}

	i.Complete("")

	require.Equal(t, "south roof", i.Notes)
}

func TestUpdateProgress_Clamps(t *testing.T) {
	i := &Installation{Status: StatusScheduled}

	i.UpdateProgress(-20)
	require.Equal(t, float64(0), i.CompletionPct)

	i.UpdateProgress(140)
	require.Equal(t, float64(100), i.CompletionPct)
}

func TestUpdateProgress_FullWhileInProgressCompletes(t *testing.T) {
	i := &Installation{Status: StatusInProgress}

	i.UpdateProgress(100)

	require.Equal(t, StatusCompleted, i.Status)
	require.Equal(t, float64(100), i.CompletionPct)
	require.NotNil(t, i.CompletedAt)
}

func TestUpdateProgress_FullWhileScheduledDoesNotComplete(t *testing.T) {
	i := &Installation{Status: StatusScheduled}

	i.UpdateProgress(100)

	require.Equal(t, StatusScheduled, i.Status)
	require.Nil(t, i.CompletedAt)
}

func TestTransition_SideExits(t *testing.T) {
	for _, from := range []Status{StatusScheduled, StatusConfirmed, StatusInProgress} {
		for _, exit := range []Status{StatusCancelled, StatusOnHold, StatusRequiresFollowUp} {
			i := &Installation{Status: from}
			require.NoError(t, i.Transition(exit), "from %s to %s", from, exit)
		}
	}
}

func TestTransition_CompletedIsTerminal(t *testing.T) {
	i := &Installation{Status: StatusCompleted}

	err := i.Transition(StatusInProgress)
	require.Error(t, err)
	require.True(t, errors.Is(err, xerrors.ErrConstraint))
}

func TestParseStatus_LegacyVariants(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
	}{
		{"Scheduled", StatusScheduled},
		{"in progress", StatusInProgress},
		{"followup", StatusRequiresFollowUp},
		{"Requires Follow Up", StatusRequiresFollowUp},
		{"rescheduled", StatusPostponed},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.raw)
		require.NoError(t, err, tc.raw)
		require.Equal(t, tc.want, got, tc.raw)
	}

	_, err := ParseStatus("mystery")
	require.Error(t, err)
}
