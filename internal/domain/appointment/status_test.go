package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusScheduled, StatusConfirmed},
		{StatusScheduled, StatusCanceled},
		{StatusConfirmed, StatusInProgress},
		{StatusWaiting, StatusCompleted},
		{StatusInProgress, StatusCompleted},
		{StatusAbsent, StatusScheduled},
	}
	for _, tt := range allowed {
		assert.NoError(t, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}

	denied := []struct{ from, to Status }{
		{StatusCompleted, StatusScheduled},
		{StatusCanceled, StatusScheduled},
		{StatusCompleted, StatusCanceled},
		{StatusInProgress, StatusScheduled},
		{StatusAbsent, StatusCompleted},
	}
	for _, tt := range denied {
		err := CanTransition(tt.from, tt.to)
		require.Error(t, err, "%s -> %s", tt.from, tt.to)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	err := CanTransition(StatusScheduled, Status("banana"))
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCanceled))
	assert.False(t, IsTerminal(StatusScheduled))
	assert.False(t, IsTerminal(StatusAbsent))
}

func TestActiveStatusesExcludeTerminal(t *testing.T) {
	for _, s := range ActiveStatuses() {
		assert.False(t, IsTerminal(Status(s)), s)
	}
}
