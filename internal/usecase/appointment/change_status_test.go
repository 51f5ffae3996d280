package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
	"github.com/BruksfildServices01/salon-comanda/internal/timezone"
)

func TestChangeStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: timezone.DefaultTimezone}
	ap := seedAppointment(repo, 2, "2025-03-10", "10:00", 30, domain.StatusScheduled)

	uc := NewChangeStatus(repo, nil, nil)
	ctx := context.Background()

	updated, err := uc.Execute(ctx, ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "confirmed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), updated.Status)

	updated, err = uc.Execute(ctx, ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "in_progress",
	})
	require.NoError(t, err)

	updated, err = uc.Execute(ctx, ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), updated.Status)
	assert.NotNil(t, updated.CompletedAt)
}

func TestChangeStatusCancelStampsTimestamp(t *testing.T) {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: timezone.DefaultTimezone}
	ap := seedAppointment(repo, 2, "2025-03-10", "10:00", 30, domain.StatusScheduled)

	uc := NewChangeStatus(repo, nil, nil)
	updated, err := uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "canceled",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCanceled), updated.Status)
	assert.NotNil(t, updated.CancelledAt)
}

func TestChangeStatusIllegalTransition(t *testing.T) {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: timezone.DefaultTimezone}
	ap := seedAppointment(repo, 2, "2025-03-10", "10:00", 30, domain.StatusCompleted)

	uc := NewChangeStatus(repo, nil, nil)
	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "scheduled",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	// estado persistido segue intacto
	assert.Equal(t, string(domain.StatusCompleted), repo.appointments[ap.ID].Status)
}

func TestChangeStatusUnknownStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: timezone.DefaultTimezone}
	ap := seedAppointment(repo, 2, "2025-03-10", "10:00", 30, domain.StatusScheduled)

	uc := NewChangeStatus(repo, nil, nil)
	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: ap.ID, SalonID: 1, NewStatus: "banana",
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestChangeStatusNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.salons[1] = models.Salon{ID: 1, Timezone: timezone.DefaultTimezone}

	uc := NewChangeStatus(repo, nil, nil)
	_, err := uc.Execute(context.Background(), ChangeStatusInput{
		AppointmentID: 99, SalonID: 1, NewStatus: "confirmed",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestCheckConflict(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, 2, "2025-03-10", "10:00", 30, domain.StatusScheduled)

	uc := NewCheckConflict(repo)
	ctx := context.Background()

	set, err := uc.Execute(ctx, CheckConflictInput{
		EmployeeID: 2,
		Start:      ap.StartTime.Add(15 * time.Minute),
		End:        ap.EndTime.Add(15 * time.Minute),
	})
	require.NoError(t, err)
	assert.False(t, set.Empty())
	require.Len(t, set.Conflicts, 1)
	assert.Equal(t, ap.ID, set.Conflicts[0].ID)

	// intervalo adjacente está livre
	set, err = uc.Execute(ctx, CheckConflictInput{
		EmployeeID: 2,
		Start:      ap.EndTime,
		End:        ap.EndTime.Add(30 * time.Minute),
	})
	require.NoError(t, err)
	assert.True(t, set.Empty())

	// o próprio agendamento é ignorado quando excluído
	set, err = uc.Execute(ctx, CheckConflictInput{
		EmployeeID:           2,
		Start:                ap.StartTime,
		End:                  ap.EndTime,
		ExcludeAppointmentID: ap.ID,
	})
	require.NoError(t, err)
	assert.True(t, set.Empty())
}
