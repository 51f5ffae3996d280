package comanda

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type CancelComandaInput struct {
	ComandaID uint
	SalonID   uint
	ActorID   uint
}

type CancelComanda struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelComanda(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelComanda {
	return &CancelComanda{
		repo:  repo,
		audit: audit,
	}
}

// Execute cancela uma comanda aberta. Os itens ficam congelados para
// histórico, mas produtos voltam ao estoque com movimento de retorno —
// estoque reservado por comanda morta não serve para nada.
func (uc *CancelComanda) Execute(
	ctx context.Context,
	in CancelComandaInput,
) (*models.Comanda, error) {

	var canceled *models.Comanda

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		co, err := tx.GetComandaForUpdate(ctx, in.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanCancel(domain.Status(co.Status)); err != nil {
			return err
		}

		items, err := tx.ListItems(ctx, co.ID)
		if err != nil {
			return err
		}

		for _, item := range items {
			if !item.IsProduct() {
				continue
			}
			if err := domain.ReleaseStock(
				ctx, tx,
				co.SalonID, *item.ProductID,
				item.Quantity, co.ID, in.ActorID,
			); err != nil {
				return err
			}
		}

		now := time.Now()
		co.Status = string(domain.StatusCanceled)
		co.CanceledAt = &now

		if err := tx.UpdateComanda(ctx, co); err != nil {
			return err
		}

		canceled = co
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_canceled",
		Entity:   "comanda",
		EntityID: &canceled.ID,
	})

	return canceled, nil
}
