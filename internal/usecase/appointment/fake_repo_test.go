package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	dcomanda "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

// fakeRepo é o repositório de agenda em memória usado nos testes.
type fakeRepo struct {
	salons       map[uint]models.Salon
	services     map[uint]models.Service
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment

	nextClientID      uint
	nextAppointmentID uint
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salons:            map[uint]models.Salon{},
		services:          map[uint]models.Service{},
		clients:           map[uint]models.Client{},
		appointments:      map[uint]models.Appointment{},
		nextClientID:      1,
		nextAppointmentID: 1,
	}
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	return httperr.ClassifyTx(fn(f))
}

func (f *fakeRepo) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	s, ok := f.salons[id]
	if !ok {
		return nil, httperr.ErrNotFound("salon_not_found", "Salão não encontrado.")
	}
	return &s, nil
}

func (f *fakeRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}
	return &svc, nil
}

func (f *fakeRepo) ListServices(ctx context.Context, salonID uint, serviceIDs []uint) ([]models.Service, error) {
	var out []models.Service
	seen := map[uint]bool{}
	for _, id := range serviceIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if svc, ok := f.services[id]; ok && svc.SalonID == salonID {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	for _, c := range f.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{
		ID:      f.nextClientID,
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}
	f.nextClientID++
	f.clients[c.ID] = c
	return &c, nil
}

func (f *fakeRepo) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.ID = f.nextAppointmentID
	f.nextAppointmentID++
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) FindConflicts(ctx context.Context, employeeID uint, start, end time.Time, excludeID uint) ([]models.Appointment, error) {
	active := map[string]bool{}
	for _, s := range domain.ActiveStatuses() {
		active[s] = true
	}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.EmployeeID != employeeID || ap.ID == excludeID || !active[ap.Status] {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, appointmentID, salonID uint) (*models.Appointment, error) {
	ap, ok := f.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, httperr.ErrNotFound("appointment_not_found", "Agendamento não encontrado.")
	}
	return &ap, nil
}

func (f *fakeRepo) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) ListAppointmentsForDay(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	active := map[string]bool{}
	for _, s := range domain.ActiveStatuses() {
		active[s] = true
	}

	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.EmployeeID != employeeID || !active[ap.Status] {
			continue
		}
		if domain.Overlaps(ap.StartTime, ap.EndTime, start, end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartTime.Before(out[b].StartTime) })
	return out, nil
}

func (f *fakeRepo) ListAppointmentsForPeriod(ctx context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	return f.listRange(employeeID, start, end), nil
}

func (f *fakeRepo) listRange(employeeID uint, start, end time.Time) []models.Appointment {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.EmployeeID == employeeID && !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].StartTime.Before(out[b].StartTime) })
	return out
}

// fakeComandaRepo cobre só o que a criação automática de comanda usa.
type fakeComandaRepo struct {
	comandas map[uint]models.Comanda
	items    map[uint]models.ComandaItem
	services map[uint]models.Service

	nextComandaID uint
	nextItemID    uint
}

var _ dcomanda.Repository = (*fakeComandaRepo)(nil)

func newFakeComandaRepo() *fakeComandaRepo {
	return &fakeComandaRepo{
		comandas:      map[uint]models.Comanda{},
		items:         map[uint]models.ComandaItem{},
		services:      map[uint]models.Service{},
		nextComandaID: 1,
		nextItemID:    1,
	}
}

func (f *fakeComandaRepo) InTx(ctx context.Context, fn func(dcomanda.Repository) error) error {
	return httperr.ClassifyTx(fn(f))
}

func (f *fakeComandaRepo) CreateComanda(ctx context.Context, co *models.Comanda) error {
	co.ID = f.nextComandaID
	f.nextComandaID++
	f.comandas[co.ID] = *co
	return nil
}

func (f *fakeComandaRepo) GetComanda(ctx context.Context, comandaID, salonID uint) (*models.Comanda, error) {
	co, ok := f.comandas[comandaID]
	if !ok {
		return nil, httperr.ErrNotFound("comanda_not_found", "Comanda não encontrada.")
	}
	return &co, nil
}

func (f *fakeComandaRepo) GetComandaForUpdate(ctx context.Context, comandaID, salonID uint) (*models.Comanda, error) {
	return f.GetComanda(ctx, comandaID, salonID)
}

func (f *fakeComandaRepo) GetActiveComandaByAppointment(ctx context.Context, appointmentID uint) (*models.Comanda, error) {
	for _, co := range f.comandas {
		if co.AppointmentID != nil && *co.AppointmentID == appointmentID && co.Status != string(dcomanda.StatusCanceled) {
			cp := co
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeComandaRepo) UpdateComanda(ctx context.Context, co *models.Comanda) error {
	f.comandas[co.ID] = *co
	return nil
}

func (f *fakeComandaRepo) CreateItem(ctx context.Context, item *models.ComandaItem) error {
	item.ID = f.nextItemID
	f.nextItemID++
	f.items[item.ID] = *item
	return nil
}

func (f *fakeComandaRepo) GetItem(ctx context.Context, itemID uint) (*models.ComandaItem, error) {
	item, ok := f.items[itemID]
	if !ok {
		return nil, httperr.ErrNotFound("item_not_found", "Item não encontrado.")
	}
	return &item, nil
}

func (f *fakeComandaRepo) UpdateItem(ctx context.Context, item *models.ComandaItem) error {
	f.items[item.ID] = *item
	return nil
}

func (f *fakeComandaRepo) DeleteItem(ctx context.Context, itemID uint) error {
	delete(f.items, itemID)
	return nil
}

func (f *fakeComandaRepo) ListItems(ctx context.Context, comandaID uint) ([]models.ComandaItem, error) {
	var out []models.ComandaItem
	for _, item := range f.items {
		if item.ComandaID == comandaID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (f *fakeComandaRepo) SaveItems(ctx context.Context, items []models.ComandaItem) error {
	for _, item := range items {
		f.items[item.ID] = item
	}
	return nil
}

func (f *fakeComandaRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, httperr.ErrNotFound("service_not_found", "Serviço não encontrado.")
	}
	return &svc, nil
}

func (f *fakeComandaRepo) GetProduct(ctx context.Context, salonID, productID uint) (*models.Product, error) {
	return nil, httperr.ErrNotFound("product_not_found", "Produto não encontrado.")
}

func (f *fakeComandaRepo) AdjustStock(ctx context.Context, productID uint, delta int) error {
	return httperr.ErrNotFound("product_not_found", "Produto não encontrado.")
}

func (f *fakeComandaRepo) CreateStockMovement(ctx context.Context, mv *models.StockMovement) error {
	return nil
}
