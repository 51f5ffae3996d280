package comanda

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SeedService struct {
	ServiceID uint
	Quantity  int
}

type CreateComandaInput struct {
	SalonID        uint
	AppointmentID  *uint
	ClientID       uint
	ProfessionalID uint
	CashierID      *uint
	ActorID        uint

	InitialServices []SeedService
}

// ======================================================
// USE CASE
// ======================================================

type CreateComanda struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	taxRate float64
}

func NewCreateComanda(
	repo domain.Repository,
	audit *audit.Dispatcher,
	taxRate float64,
) *CreateComanda {
	return &CreateComanda{
		repo:    repo,
		audit:   audit,
		taxRate: taxRate,
	}
}

func (uc *CreateComanda) Execute(
	ctx context.Context,
	in CreateComandaInput,
) (*models.Comanda, error) {

	if in.ClientID == 0 || in.ProfessionalID == 0 {
		return nil, httperr.Validation("missing_parties", "Cliente e profissional são obrigatórios.")
	}

	for _, seed := range in.InitialServices {
		if seed.Quantity <= 0 {
			return nil, httperr.Validation("invalid_quantity", "Quantidade deve ser maior que zero.")
		}
	}

	var created *models.Comanda

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		if in.AppointmentID != nil {
			existing, err := tx.GetActiveComandaByAppointment(ctx, *in.AppointmentID)
			if err != nil {
				return err
			}
			if existing != nil {
				return httperr.ErrConflict("duplicate_comanda", "Já existe comanda ativa para esse agendamento.")
			}
		}

		co := &models.Comanda{
			Code:           uuid.New(),
			SalonID:        in.SalonID,
			AppointmentID:  in.AppointmentID,
			ClientID:       in.ClientID,
			ProfessionalID: in.ProfessionalID,
			CashierID:      in.CashierID,
			Status:         string(domain.InitialStatus()),
		}

		if err := tx.CreateComanda(ctx, co); err != nil {
			// Duas criações concorrentes para o mesmo agendamento: o índice
			// único parcial rejeita a segunda.
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrConflict("duplicate_comanda", "Já existe comanda ativa para esse agendamento.")
			}
			return err
		}

		for _, seed := range in.InitialServices {
			svc, err := tx.GetService(ctx, in.SalonID, seed.ServiceID)
			if err != nil {
				return err
			}

			total, err := domain.ItemTotal(svc.Price, seed.Quantity, 0)
			if err != nil {
				return err
			}

			item := &models.ComandaItem{
				ComandaID:  co.ID,
				ServiceID:  &svc.ID,
				Quantity:   seed.Quantity,
				UnitPrice:  svc.Price,
				TotalPrice: total,
			}

			if err := tx.CreateItem(ctx, item); err != nil {
				return err
			}
		}

		items, err := tx.ListItems(ctx, co.ID)
		if err != nil {
			return err
		}

		domain.RecomputeTotals(co, items, uc.taxRate)
		if err := tx.UpdateComanda(ctx, co); err != nil {
			return err
		}

		created = co
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_created",
		Entity:   "comanda",
		EntityID: &created.ID,
	})

	return created, nil
}
