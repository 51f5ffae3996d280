package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	"github.com/BruksfildServices01/salon-comanda/internal/cache"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/logging"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
	"github.com/BruksfildServices01/salon-comanda/internal/timezone"
	uccomanda "github.com/BruksfildServices01/salon-comanda/internal/usecase/comanda"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type BookedService struct {
	ServiceID uint
	Quantity  int
}

type BookInput struct {
	SalonID    uint
	EmployeeID uint
	ActorID    uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	Services []BookedService

	Date  string
	Time  string
	Notes string
}

// BookResult separa o resultado principal dos efeitos secundários: a
// comanda é criada em melhor esforço e sua falha vira warning, nunca
// derruba o agendamento.
type BookResult struct {
	Appointment *models.Appointment `json:"appointment"`
	Comanda     *models.Comanda     `json:"comanda,omitempty"`
	Warnings    []string            `json:"warnings,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     domain.Repository
	comandas *uccomanda.CreateComanda
	audit    *audit.Dispatcher
	slots    *cache.Availability
}

func NewBookAppointment(
	repo domain.Repository,
	comandas *uccomanda.CreateComanda,
	audit *audit.Dispatcher,
	slots *cache.Availability,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		comandas: comandas,
		audit:    audit,
		slots:    slots,
	}
}

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*BookResult, error) {

	if len(in.Services) == 0 {
		return nil, httperr.Validation("missing_services", "Informe ao menos um serviço.")
	}
	for _, bs := range in.Services {
		if bs.Quantity <= 0 {
			return nil, httperr.Validation("invalid_quantity", "Quantidade deve ser maior que zero.")
		}
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrNotFound("salon_not_found", "Salão não encontrado.")
	}

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		return nil, httperr.Validation("invalid_date_or_time", "Data ou hora inválida.")
	}

	services, quantities, err := uc.resolveServices(ctx, in)
	if err != nil {
		return nil, err
	}

	duration := domain.TotalDuration(services, quantities)
	if duration <= 0 {
		return nil, httperr.Validation("invalid_duration", "Serviços sem duração definida.")
	}
	end := start.Add(duration)

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.SalonID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	var created *models.Appointment

	err = uc.repo.InTx(ctx, func(tx domain.Repository) error {

		conflicts, err := tx.FindConflicts(ctx, in.EmployeeID, start, end, 0)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.ErrConflict("time_conflict", "Conflito de horário.")
		}

		ap := &models.Appointment{
			SalonID:    in.SalonID,
			EmployeeID: in.EmployeeID,
			ClientID:   client.ID,
			StartTime:  start,
			EndTime:    end,
			Status:     string(domain.InitialStatus()),
			Notes:      in.Notes,
		}
		for _, bs := range in.Services {
			ap.Services = append(ap.Services, models.AppointmentService{
				ServiceID: bs.ServiceID,
				Quantity:  bs.Quantity,
			})
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			// Duas reservas concorrentes que passaram pela checagem: a
			// constraint de exclusão barra a segunda inserção.
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrConflict("time_conflict", "Conflito de horário.")
			}
			return err
		}

		created = ap
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.slots.InvalidateDay(ctx, in.EmployeeID, start.Format("2006-01-02"))

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
	})

	result := &BookResult{Appointment: created}

	// Comanda semeada com os serviços reservados: melhor esforço.
	seeds := make([]uccomanda.SeedService, 0, len(in.Services))
	for _, bs := range in.Services {
		seeds = append(seeds, uccomanda.SeedService{
			ServiceID: bs.ServiceID,
			Quantity:  bs.Quantity,
		})
	}

	co, err := uc.comandas.Execute(ctx, uccomanda.CreateComandaInput{
		SalonID:         in.SalonID,
		AppointmentID:   &created.ID,
		ClientID:        client.ID,
		ProfessionalID:  in.EmployeeID,
		ActorID:         in.ActorID,
		InitialServices: seeds,
	})
	if err != nil {
		logging.WithComponent("booking").Warn().
			Err(err).
			Uint("appointment_id", created.ID).
			Msg("comanda auto-creation failed")
		result.Warnings = append(result.Warnings, fmt.Sprintf("comanda não criada: %v", err))
	} else {
		result.Comanda = co
	}

	return result, nil
}

func (uc *BookAppointment) resolveServices(
	ctx context.Context,
	in BookInput,
) ([]models.Service, map[uint]int, error) {

	ids := make([]uint, 0, len(in.Services))
	quantities := make(map[uint]int, len(in.Services))
	for _, bs := range in.Services {
		ids = append(ids, bs.ServiceID)
		quantities[bs.ServiceID] += bs.Quantity
	}

	services, err := uc.repo.ListServices(ctx, in.SalonID, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(services) != len(quantities) {
		return nil, nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}

	return services, quantities, nil
}
