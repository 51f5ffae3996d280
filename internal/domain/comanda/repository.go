package comanda

import (
	"context"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type Repository interface {
	// InTx é a unidade de atomicidade do motor: item + estoque + movimento
	// + totais entram e saem juntos. Erro em fn desfaz todas as escritas.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Comanda --------
	CreateComanda(
		ctx context.Context,
		co *models.Comanda,
	) error

	GetComanda(
		ctx context.Context,
		comandaID uint,
		salonID uint,
	) (*models.Comanda, error)

	// GetComandaForUpdate trava a linha da comanda pela transação corrente.
	GetComandaForUpdate(
		ctx context.Context,
		comandaID uint,
		salonID uint,
	) (*models.Comanda, error)

	// GetActiveComandaByAppointment retorna a comanda não cancelada do
	// agendamento, se existir.
	GetActiveComandaByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Comanda, error)

	UpdateComanda(
		ctx context.Context,
		co *models.Comanda,
	) error

	// -------- Items --------
	CreateItem(
		ctx context.Context,
		item *models.ComandaItem,
	) error

	GetItem(
		ctx context.Context,
		itemID uint,
	) (*models.ComandaItem, error)

	UpdateItem(
		ctx context.Context,
		item *models.ComandaItem,
	) error

	DeleteItem(
		ctx context.Context,
		itemID uint,
	) error

	ListItems(
		ctx context.Context,
		comandaID uint,
	) ([]models.ComandaItem, error)

	SaveItems(
		ctx context.Context,
		items []models.ComandaItem,
	) error

	// -------- Catalog (read-only) --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	GetProduct(
		ctx context.Context,
		salonID uint,
		productID uint,
	) (*models.Product, error)

	// -------- Inventory --------
	// AdjustStock aplica o delta em um único check-and-set atômico;
	// delta negativo falha com InsufficientStockError se não há saldo.
	AdjustStock(
		ctx context.Context,
		productID uint,
		delta int,
	) error

	CreateStockMovement(
		ctx context.Context,
		mv *models.StockMovement,
	) error
}
