package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type RecalculateCommissionInput struct {
	ComandaID uint
	SalonID   uint
	ActorID   uint

	// Novos agregados por categoria; nil mantém o valor atual da comanda.
	ServicesCommission *float64
	ProductsCommission *float64
}

type RecalculateCommission struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRecalculateCommission(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RecalculateCommission {
	return &RecalculateCommission{
		repo:  repo,
		audit: audit,
	}
}

// Execute força a realocação completa da comissão de uma comanda aberta.
// É o caminho de reparo: idempotente, pode ser repetido à vontade.
func (uc *RecalculateCommission) Execute(
	ctx context.Context,
	in RecalculateCommissionInput,
) (*models.Comanda, error) {

	if in.ServicesCommission != nil && *in.ServicesCommission < 0 {
		return nil, httperr.Validation("invalid_commission", "Comissão de serviços não pode ser negativa.")
	}
	if in.ProductsCommission != nil && *in.ProductsCommission < 0 {
		return nil, httperr.Validation("invalid_commission", "Comissão de produtos não pode ser negativa.")
	}

	var recalculated *models.Comanda

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		co, err := tx.GetComandaForUpdate(ctx, in.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanMutateItems(domain.Status(co.Status)); err != nil {
			return err
		}

		if in.ServicesCommission != nil {
			co.TotalServicesCommission = domain.Round2(*in.ServicesCommission)
		}
		if in.ProductsCommission != nil {
			co.TotalProductsCommission = domain.Round2(*in.ProductsCommission)
		}

		items, err := tx.ListItems(ctx, co.ID)
		if err != nil {
			return err
		}

		domain.Allocate(co, items, true)
		if err := tx.SaveItems(ctx, items); err != nil {
			return err
		}

		if err := tx.UpdateComanda(ctx, co); err != nil {
			return err
		}

		recalculated = co
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "commission_recalculated",
		Entity:   "comanda",
		EntityID: &recalculated.ID,
	})

	return recalculated, nil
}
