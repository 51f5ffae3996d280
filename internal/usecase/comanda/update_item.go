package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type UpdateItemInput struct {
	ItemID  uint
	SalonID uint
	ActorID uint

	Quantity       *int
	DiscountAmount *float64
}

type UpdateItem struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	taxRate float64
}

func NewUpdateItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
	taxRate float64,
) *UpdateItem {
	return &UpdateItem{
		repo:    repo,
		audit:   audit,
		taxRate: taxRate,
	}
}

func (uc *UpdateItem) Execute(
	ctx context.Context,
	in UpdateItemInput,
) (*models.ComandaItem, error) {

	if in.Quantity == nil && in.DiscountAmount == nil {
		return nil, httperr.Validation("nothing_to_update", "Nada para atualizar.")
	}
	if in.Quantity != nil && *in.Quantity <= 0 {
		return nil, httperr.Validation("invalid_quantity", "Quantidade deve ser maior que zero.")
	}
	if in.DiscountAmount != nil && *in.DiscountAmount < 0 {
		return nil, httperr.Validation("invalid_discount", "Desconto não pode ser negativo.")
	}

	var updated *models.ComandaItem
	var before models.ComandaItem

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		item, err := tx.GetItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		before = *item

		co, err := tx.GetComandaForUpdate(ctx, item.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanMutateItems(domain.Status(co.Status)); err != nil {
			return err
		}

		newQty := item.Quantity
		if in.Quantity != nil {
			newQty = *in.Quantity
		}
		newDiscount := item.DiscountAmount
		if in.DiscountAmount != nil {
			newDiscount = *in.DiscountAmount
		}

		total, err := domain.ItemTotal(item.UnitPrice, newQty, newDiscount)
		if err != nil {
			return err
		}

		// Delta de estoque: aumento vende, redução devolve.
		if item.IsProduct() && newQty != item.Quantity {
			delta := newQty - item.Quantity
			if delta > 0 {
				err = domain.ReserveStock(ctx, tx, co.SalonID, *item.ProductID, delta, co.ID, in.ActorID)
			} else {
				err = domain.ReleaseStock(ctx, tx, co.SalonID, *item.ProductID, -delta, co.ID, in.ActorID)
			}
			if err != nil {
				return err
			}
		}

		item.Quantity = newQty
		item.DiscountAmount = newDiscount
		item.TotalPrice = total

		// A mudança invalida qualquer alocação anterior de comissão.
		item.CommissionValue = nil
		item.CommissionPercentage = nil

		if err := tx.UpdateItem(ctx, item); err != nil {
			return err
		}

		if err := recomputeComanda(ctx, tx, co, uc.taxRate); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_item_updated",
		Entity:   "comanda_item",
		EntityID: &updated.ID,
		Metadata: audit.Change{Before: before, After: updated},
	})

	return updated, nil
}
