package comanda

import (
	"context"
	"sort"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// fakeRepo guarda tudo em memória e emula a semântica transacional do
// repositório real: InTx tira um snapshot e restaura em caso de erro.
type fakeRepo struct {
	comandas  map[uint]models.Comanda
	items     map[uint]models.ComandaItem
	services  map[uint]models.Service
	products  map[uint]models.Product
	movements []models.StockMovement

	nextComandaID uint
	nextItemID    uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		comandas:      map[uint]models.Comanda{},
		items:         map[uint]models.ComandaItem{},
		services:      map[uint]models.Service{},
		products:      map[uint]models.Product{},
		nextComandaID: 1,
		nextItemID:    1,
	}
}

func (f *fakeRepo) snapshot() *fakeRepo {
	cp := newFakeRepo()
	cp.nextComandaID = f.nextComandaID
	cp.nextItemID = f.nextItemID
	for k, v := range f.comandas {
		cp.comandas[k] = v
	}
	for k, v := range f.items {
		cp.items[k] = v
	}
	for k, v := range f.services {
		cp.services[k] = v
	}
	for k, v := range f.products {
		cp.products[k] = v
	}
	cp.movements = append([]models.StockMovement(nil), f.movements...)
	return cp
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	saved := f.snapshot()
	if err := fn(f); err != nil {
		*f = *saved
		return httperr.ClassifyTx(err)
	}
	return nil
}

// brokenMovementRepo simula falha de armazenamento no meio da transação.
type brokenMovementRepo struct {
	*fakeRepo
	movementErr error
}

func (b *brokenMovementRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	saved := b.fakeRepo.snapshot()
	if err := fn(b); err != nil {
		*b.fakeRepo = *saved
		return httperr.ClassifyTx(err)
	}
	return nil
}

func (b *brokenMovementRepo) CreateStockMovement(ctx context.Context, mv *models.StockMovement) error {
	if b.movementErr != nil {
		return b.movementErr
	}
	return b.fakeRepo.CreateStockMovement(ctx, mv)
}

func (f *fakeRepo) CreateComanda(ctx context.Context, co *models.Comanda) error {
	co.ID = f.nextComandaID
	f.nextComandaID++
	f.comandas[co.ID] = *co
	return nil
}

func (f *fakeRepo) GetComanda(ctx context.Context, comandaID, salonID uint) (*models.Comanda, error) {
	co, ok := f.comandas[comandaID]
	if !ok || co.SalonID != salonID {
		return nil, httperr.ErrNotFound("comanda_not_found", "Comanda não encontrada.")
	}
	return &co, nil
}

func (f *fakeRepo) GetComandaForUpdate(ctx context.Context, comandaID, salonID uint) (*models.Comanda, error) {
	return f.GetComanda(ctx, comandaID, salonID)
}

func (f *fakeRepo) GetActiveComandaByAppointment(ctx context.Context, appointmentID uint) (*models.Comanda, error) {
	for _, co := range f.comandas {
		if co.AppointmentID != nil && *co.AppointmentID == appointmentID &&
			co.Status != string(domain.StatusCanceled) {
			cp := co
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdateComanda(ctx context.Context, co *models.Comanda) error {
	f.comandas[co.ID] = *co
	return nil
}

func (f *fakeRepo) CreateItem(ctx context.Context, item *models.ComandaItem) error {
	item.ID = f.nextItemID
	f.nextItemID++
	f.items[item.ID] = *item
	return nil
}

func (f *fakeRepo) GetItem(ctx context.Context, itemID uint) (*models.ComandaItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, httperr.ErrNotFound("item_not_found", "Item não encontrado.")
	}
	return &item, nil
}

func (f *fakeRepo) UpdateItem(ctx context.Context, item *models.ComandaItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeRepo) DeleteItem(ctx context.Context, itemID uint) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeRepo) ListItems(ctx context.Context, comandaID uint) ([]models.ComandaItem, error) {
	var out []models.ComandaItem
	for _, item := range f.items {
		if item.ComandaID == comandaID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (f *fakeRepo) SaveItems(ctx context.Context, items []models.ComandaItem) error {
	for _, item := range items {
		f.items[item.ID] = item
	}
	return nil
}

func (f *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}
	return &svc, nil
}

func (f *fakeRepo) GetProduct(ctx context.Context, salonID, productID uint) (*models.Product, error) {
	p, ok := f.products[productID]
	if !ok || p.SalonID != salonID {
		return nil, httperr.ErrNotFound("product_not_found", "Produto não encontrado.")
	}
	return &p, nil
}

func (f *fakeRepo) AdjustStock(ctx context.Context, productID uint, delta int) error {
	p, ok := f.products[productID]
	if !ok {
		return httperr.ErrNotFound("product_not_found", "Produto não encontrado.")
	}
	if p.StockQuantity+delta < 0 {
		return httperr.InsufficientStock("insufficient_stock", "Estoque insuficiente.")
	}
	p.StockQuantity += delta
	f.products[productID] = p
	return nil
}

func (f *fakeRepo) CreateStockMovement(ctx context.Context, mv *models.StockMovement) error {
	mv.ID = uint(len(f.movements) + 1)
	f.movements = append(f.movements, *mv)
	return nil
}
