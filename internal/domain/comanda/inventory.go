package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// ReserveStock baixa o estoque do produto e grava o movimento de venda.
// Falha com InsufficientStockError quando não há estoque suficiente; o
// chamador deve tratar como rejeição de negócio, não como falha.
// Deve rodar dentro de InTx junto com a mutação do item.
func ReserveStock(
	ctx context.Context,
	repo Repository,
	salonID uint,
	productID uint,
	quantity int,
	referenceID uint,
	actorID uint,
) error {

	if err := repo.AdjustStock(ctx, productID, -quantity); err != nil {
		return err
	}

	return repo.CreateStockMovement(ctx, &models.StockMovement{
		SalonID:      salonID,
		ProductID:    productID,
		Quantity:     -quantity,
		MovementType: models.MovementSale,
		ReferenceID:  referenceID,
		CreatedBy:    actorID,
	})
}

// ReleaseStock devolve quantidade ao estoque com movimento de retorno.
func ReleaseStock(
	ctx context.Context,
	repo Repository,
	salonID uint,
	productID uint,
	quantity int,
	referenceID uint,
	actorID uint,
) error {

	if err := repo.AdjustStock(ctx, productID, quantity); err != nil {
		return err
	}

	return repo.CreateStockMovement(ctx, &models.StockMovement{
		SalonID:      salonID,
		ProductID:    productID,
		Quantity:     quantity,
		MovementType: models.MovementReturn,
		ReferenceID:  referenceID,
		CreatedBy:    actorID,
	})
}
