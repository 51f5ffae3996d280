package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type ComandaGormRepository struct {
	db *gorm.DB
}

func NewComandaGormRepository(db *gorm.DB) *ComandaGormRepository {
	return &ComandaGormRepository{db: db}
}

func (r *ComandaGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ComandaGormRepository{db: tx})
	})
	return httperr.ClassifyTx(err)
}

// --------------------------------------------------
// Comanda
// --------------------------------------------------

func (r *ComandaGormRepository) CreateComanda(
	ctx context.Context,
	co *models.Comanda,
) error {
	return r.db.WithContext(ctx).Create(co).Error
}

func (r *ComandaGormRepository) GetComanda(
	ctx context.Context,
	comandaID uint,
	salonID uint,
) (*models.Comanda, error) {

	var co models.Comanda
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND salon_id = ?", comandaID, salonID).
		First(&co).Error; err != nil {
		return nil, notFound(err, "comanda_not_found", "Comanda não encontrada.")
	}

	return &co, nil
}

func (r *ComandaGormRepository) GetComandaForUpdate(
	ctx context.Context,
	comandaID uint,
	salonID uint,
) (*models.Comanda, error) {

	var co models.Comanda
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ? AND salon_id = ?", comandaID, salonID).
		First(&co).Error; err != nil {
		return nil, notFound(err, "comanda_not_found", "Comanda não encontrada.")
	}

	return &co, nil
}

func (r *ComandaGormRepository) GetActiveComandaByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Comanda, error) {

	var co models.Comanda
	err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND status <> ?", appointmentID, string(domain.StatusCanceled)).
		First(&co).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &co, nil
}

func (r *ComandaGormRepository) UpdateComanda(
	ctx context.Context,
	co *models.Comanda,
) error {
	return r.db.WithContext(ctx).Save(co).Error
}

// --------------------------------------------------
// Items
// --------------------------------------------------

func (r *ComandaGormRepository) CreateItem(
	ctx context.Context,
	item *models.ComandaItem,
) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *ComandaGormRepository) GetItem(
	ctx context.Context,
	itemID uint,
) (*models.ComandaItem, error) {

	var item models.ComandaItem
	if err := r.db.WithContext(ctx).First(&item, itemID).Error; err != nil {
		return nil, notFound(err, "item_not_found", "Item não encontrado.")
	}

	return &item, nil
}

func (r *ComandaGormRepository) UpdateItem(
	ctx context.Context,
	item *models.ComandaItem,
) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *ComandaGormRepository) DeleteItem(
	ctx context.Context,
	itemID uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ComandaItem{}, itemID).Error
}

func (r *ComandaGormRepository) ListItems(
	ctx context.Context,
	comandaID uint,
) ([]models.ComandaItem, error) {

	var items []models.ComandaItem
	if err := r.db.WithContext(ctx).
		Where("comanda_id = ?", comandaID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *ComandaGormRepository) SaveItems(
	ctx context.Context,
	items []models.ComandaItem,
) error {
	for i := range items {
		if err := r.db.WithContext(ctx).Save(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *ComandaGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, notFound(err, "service_not_found", "Serviço não encontrado.")
	}
	return &svc, nil
}

func (r *ComandaGormRepository) GetProduct(
	ctx context.Context,
	salonID uint,
	productID uint,
) (*models.Product, error) {

	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", productID, salonID).
		First(&product).Error; err != nil {
		return nil, notFound(err, "product_not_found", "Produto não encontrado.")
	}
	return &product, nil
}

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, message)
	}
	return httperr.Database("database_error", "Erro de acesso ao banco.", err)
}

// --------------------------------------------------
// Inventory
// --------------------------------------------------

// AdjustStock aplica o delta com um único UPDATE condicional, sem janela
// entre ler e gravar. RowsAffected = 0 com delta negativo significa saldo
// insuficiente (ou produto inexistente).
func (r *ComandaGormRepository) AdjustStock(
	ctx context.Context,
	productID uint,
	delta int,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity + ? >= 0", productID, delta).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		var product models.Product
		if err := r.db.WithContext(ctx).First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("product_not_found", "Produto não encontrado.")
			}
			return err
		}
		return httperr.InsufficientStock("insufficient_stock", "Estoque insuficiente.")
	}

	return nil
}

func (r *ComandaGormRepository) CreateStockMovement(
	ctx context.Context,
	mv *models.StockMovement,
) error {
	return r.db.WithContext(ctx).Create(mv).Error
}

// Compile-time check
var _ domain.Repository = (*ComandaGormRepository)(nil)
