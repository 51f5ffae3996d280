package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type AddItemInput struct {
	ComandaID uint
	SalonID   uint
	ActorID   uint

	ServiceID *uint
	ProductID *uint

	Quantity       int
	UnitPrice      *float64 // nil = preço atual do catálogo
	DiscountAmount float64
}

type AddItem struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	taxRate float64
}

func NewAddItem(
	repo domain.Repository,
	audit *audit.Dispatcher,
	taxRate float64,
) *AddItem {
	return &AddItem{
		repo:    repo,
		audit:   audit,
		taxRate: taxRate,
	}
}

func (uc *AddItem) Execute(
	ctx context.Context,
	in AddItemInput,
) (*models.ComandaItem, error) {

	if (in.ServiceID == nil) == (in.ProductID == nil) {
		return nil, httperr.Validation("invalid_item_reference", "Informe serviço ou produto, nunca ambos.")
	}
	if in.Quantity <= 0 {
		return nil, httperr.Validation("invalid_quantity", "Quantidade deve ser maior que zero.")
	}
	if in.DiscountAmount < 0 {
		return nil, httperr.Validation("invalid_discount", "Desconto não pode ser negativo.")
	}

	var created *models.ComandaItem

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		co, err := tx.GetComandaForUpdate(ctx, in.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanMutateItems(domain.Status(co.Status)); err != nil {
			return err
		}

		unitPrice, err := resolveUnitPrice(ctx, tx, co.SalonID, in)
		if err != nil {
			return err
		}

		total, err := domain.ItemTotal(unitPrice, in.Quantity, in.DiscountAmount)
		if err != nil {
			return err
		}

		if in.ProductID != nil {
			if err := domain.ReserveStock(
				ctx, tx,
				co.SalonID, *in.ProductID,
				in.Quantity, co.ID, in.ActorID,
			); err != nil {
				return err
			}
		}

		item := &models.ComandaItem{
			ComandaID:      co.ID,
			ServiceID:      in.ServiceID,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			UnitPrice:      unitPrice,
			DiscountAmount: in.DiscountAmount,
			TotalPrice:     total,
		}

		if err := tx.CreateItem(ctx, item); err != nil {
			return err
		}

		if err := recomputeComanda(ctx, tx, co, uc.taxRate); err != nil {
			return err
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_item_added",
		Entity:   "comanda_item",
		EntityID: &created.ID,
		Metadata: audit.Change{After: created},
	})

	return created, nil
}

// resolveUnitPrice usa o preço informado ou busca o do catálogo; de quebra
// garante que a referência existe no salão.
func resolveUnitPrice(
	ctx context.Context,
	tx domain.Repository,
	salonID uint,
	in AddItemInput,
) (float64, error) {

	if in.ServiceID != nil {
		svc, err := tx.GetService(ctx, salonID, *in.ServiceID)
		if err != nil {
			return 0, err
		}
		if in.UnitPrice != nil {
			return *in.UnitPrice, nil
		}
		return svc.Price, nil
	}

	product, err := tx.GetProduct(ctx, salonID, *in.ProductID)
	if err != nil {
		return 0, err
	}
	if in.UnitPrice != nil {
		return *in.UnitPrice, nil
	}
	return product.Price, nil
}

// recomputeComanda refaz os totais a partir dos itens correntes e persiste.
func recomputeComanda(
	ctx context.Context,
	tx domain.Repository,
	co *models.Comanda,
	taxRate float64,
) error {

	items, err := tx.ListItems(ctx, co.ID)
	if err != nil {
		return err
	}

	domain.RecomputeTotals(co, items, taxRate)
	return tx.UpdateComanda(ctx, co)
}
