package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	"github.com/BruksfildServices01/salon-comanda/internal/cache"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
	"github.com/BruksfildServices01/salon-comanda/internal/timezone"
)

type ChangeStatusInput struct {
	AppointmentID uint
	SalonID       uint
	ActorID       uint
	NewStatus     string
}

type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	slots *cache.Availability
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	slots *cache.Availability,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		slots: slots,
	}
}

// Execute é transição pura de estado: nenhum efeito sobre a comanda.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	in ChangeStatusInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salão não encontrado.")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}

	before := ap.Status

	now := timezone.NowIn(salon.Timezone)
	if err := domain.ApplyStatus(ap, domain.Status(in.NewStatus), now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Cancelar/concluir libera o horário na agenda.
	if domain.IsTerminal(domain.Status(ap.Status)) {
		uc.slots.InvalidateDay(ctx, ap.EmployeeID, ap.StartTime.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: audit.Change{Before: before, After: ap.Status},
	})

	return ap, nil
}
