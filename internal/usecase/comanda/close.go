package comanda

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type CloseComandaInput struct {
	ComandaID     uint
	SalonID       uint
	ActorID       uint
	PaymentMethod string
}

type CloseComanda struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCloseComanda(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CloseComanda {
	return &CloseComanda{
		repo:  repo,
		audit: audit,
	}
}

// Execute fecha a comanda: aloca comissão, congela itens e registra o
// pagamento, tudo na mesma transação. Depois do commit os números são
// definitivos.
func (uc *CloseComanda) Execute(
	ctx context.Context,
	in CloseComandaInput,
) (*models.Comanda, error) {

	if in.PaymentMethod == "" {
		return nil, httperr.Validation("payment_method_required", "Forma de pagamento é obrigatória.")
	}

	var closed *models.Comanda

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		co, err := tx.GetComandaForUpdate(ctx, in.ComandaID, in.SalonID)
		if err != nil {
			return err
		}

		if err := domain.CanClose(domain.Status(co.Status)); err != nil {
			return err
		}

		items, err := tx.ListItems(ctx, co.ID)
		if err != nil {
			return err
		}

		domain.Allocate(co, items, false)
		if err := tx.SaveItems(ctx, items); err != nil {
			return err
		}

		now := time.Now()
		co.Status = string(domain.StatusClosed)
		co.PaymentMethod = &in.PaymentMethod
		co.ClosedAt = &now
		co.CashierID = &in.ActorID

		if err := tx.UpdateComanda(ctx, co); err != nil {
			return err
		}

		closed = co
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   &in.ActorID,
		Action:   "comanda_closed",
		Entity:   "comanda",
		EntityID: &closed.ID,
		Metadata: audit.Change{After: map[string]any{
			"payment_method":   in.PaymentMethod,
			"total_amount":     closed.TotalAmount,
			"total_commission": closed.TotalCommission,
		}},
	})

	return closed, nil
}
