package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	"github.com/BruksfildServices01/salon-comanda/internal/cache"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
	"github.com/BruksfildServices01/salon-comanda/internal/timezone"
)

type RescheduleInput struct {
	AppointmentID uint
	SalonID       uint
	ActorID       uint

	NewEmployeeID *uint
	NewDate       *string
	NewTime       *string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	slots *cache.Availability
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	slots *cache.Availability,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		slots: slots,
	}
}

// Execute move o agendamento para outro horário e/ou profissional. Em
// conflito, nada muda.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	if in.NewEmployeeID == nil && in.NewDate == nil && in.NewTime == nil {
		return nil, httperr.Validation("nothing_to_update", "Nada para reagendar.")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salão não encontrado.")
	}

	var updated *models.Appointment
	var oldStart, newStart time.Time
	var oldEmployee uint

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		ap, err := tx.GetAppointment(ctx, in.AppointmentID, in.SalonID)
		if err != nil {
			return httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
		}

		if domain.IsTerminal(domain.Status(ap.Status)) {
			return httperr.ErrConflict("invalid_state", "Agendamento encerrado não pode ser reagendado.")
		}

		oldStart = ap.StartTime
		oldEmployee = ap.EmployeeID

		employeeID := ap.EmployeeID
		if in.NewEmployeeID != nil {
			employeeID = *in.NewEmployeeID
		}

		start := ap.StartTime
		duration := ap.EndTime.Sub(ap.StartTime)
		if in.NewDate != nil || in.NewTime != nil {
			dateStr := ap.StartTime.In(timezone.Location(salon.Timezone)).Format("2006-01-02")
			timeStr := ap.StartTime.In(timezone.Location(salon.Timezone)).Format("15:04")
			if in.NewDate != nil {
				dateStr = *in.NewDate
			}
			if in.NewTime != nil {
				timeStr = *in.NewTime
			}

			start, err = time.ParseInLocation(
				"2006-01-02 15:04",
				dateStr+" "+timeStr,
				timezone.Location(salon.Timezone),
			)
			if err != nil {
				return httperr.Validation("invalid_date_or_time", "Data ou hora inválida.")
			}
		}
		end := start.Add(duration)

		conflicts, err := tx.FindConflicts(ctx, employeeID, start, end, ap.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict", "Conflito de horário.")
		}

		ap.EmployeeID = employeeID
		ap.StartTime = start
		ap.EndTime = end

		if err := tx.UpdateAppointment(ctx, ap); err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrConflict("time_conflict", "Conflito de horário.")
			}
			return err
		}

		updated = ap
		newStart = start
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.slots.InvalidateDay(ctx, oldEmployee, oldStart.Format("2006-01-02"))
	uc.slots.InvalidateDay(ctx, updated.EmployeeID, newStart.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &updated.ID,
		Metadata: audit.Change{
			Before: map[string]any{"employee_id": oldEmployee, "start_time": oldStart},
			After:  map[string]any{"employee_id": updated.EmployeeID, "start_time": newStart},
		},
	})

	return updated, nil
}
