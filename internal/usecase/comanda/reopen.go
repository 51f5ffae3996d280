package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type ReopenComandaInput struct {
	ComandaID uint
	SalonID   uint
	ActorID   uint
}

type ReopenComanda struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReopenComanda(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReopenComanda {
	return &ReopenComanda{
		repo:  repo,
		audit: audit,
	}
}

// Execute reabre uma comanda fechada: limpa a forma de pagamento e zera a
// alocação dos itens, para que o próximo fechamento recalcule com os
// números vigentes.
func (uc *ReopenComanda) Execute(
	ctx context.Context,
	in ReopenComandaInput,
) (*models.Comanda, error) {

	var reopened *models.Comanda

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		co, err := tx.GetComandaForUpdate(ctx, in.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanReopen(domain.Status(co.Status)); err != nil {
			return err
		}

		items, err := tx.ListItems(ctx, co.ID)
		if err != nil {
			return err
		}

		domain.ClearCommission(items)
		if err := tx.SaveItems(ctx, items); err != nil {
			return err
		}

		co.Status = string(domain.StatusOpen)
		co.PaymentMethod = nil
		co.ClosedAt = nil

		if err := tx.UpdateComanda(ctx, co); err != nil {
			return err
		}

		reopened = co
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_reopened",
		Entity:   "comanda",
		EntityID: &reopened.ID,
	})

	return reopened, nil
}
