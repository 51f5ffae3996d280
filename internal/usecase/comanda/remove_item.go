package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type RemoveItemInput struct {
	ItemID  uint
	SalonID uint
	ActorID uint
}

type RemoveItem struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	taxRate float64
}

func NewRemoveItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
	taxRate float64,
) *RemoveItem {
	return &RemoveItem{
		repo:    repo,
		audit:   audit,
		taxRate: taxRate,
	}
}

func (uc *RemoveItem) Execute(
	ctx context.Context,
	in RemoveItemInput,
) error {

	var removed models.ComandaItem

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		item, err := tx.GetItem(ctx, in.ItemID)
		if err != nil {
			return err
		}

		co, err := tx.GetComandaForUpdate(ctx, item.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanMutateItems(domain.Status(co.Status)); err != nil {
			return err
		}

		// Produto removido volta integralmente ao estoque.
		if item.IsProduct() {
			if err := domain.ReleaseStock(
				ctx, tx,
				co.SalonID, *item.ProductID,
				item.Quantity, co.ID, in.ActorID,
			); err != nil {
				return err
			}
		}

		if err := tx.DeleteItem(ctx, item.ID); err != nil {
			return err
		}

		if err := recomputeComanda(ctx, tx, co, uc.taxRate); err != nil {
			return err
		}

		removed = *item
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_item_removed",
		Entity:   "comanda_item",
		EntityID: &removed.ID,
		Metadata: audit.Change{Before: removed},
	})

	return nil
}
