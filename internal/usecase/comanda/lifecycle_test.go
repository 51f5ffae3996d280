package comanda

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
)

func TestCreateComandaWithSeedServices(t *testing.T) {
	repo, _ := seedComanda(domain.StatusOpen)
	uc := NewCreateComanda(repo, nil, testTaxRate)

	co, err := uc.Execute(context.Background(), CreateComandaInput{
		SalonID:        1,
		ClientID:       3,
		ProfessionalID: 2,
		ActorID:        9,
		InitialServices: []SeedService{
			{ServiceID: 1, Quantity: 1}, // 35.00
			{ServiceID: 2, Quantity: 2}, // 50.00
		},
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, co.Code)
	assert.Equal(t, string(domain.StatusOpen), co.Status)
	assert.Equal(t, 85.00, co.Subtotal)
	assert.Equal(t, 8.50, co.TaxAmount)
	assert.Equal(t, 93.50, co.TotalAmount)

	items, _ := repo.ListItems(context.Background(), co.ID)
	require.Len(t, items, 2)
	assert.Equal(t, 35.00, items[0].UnitPrice)
	assert.Equal(t, 50.00, items[1].TotalPrice)
}

func TestCreateComandaDuplicateForAppointment(t *testing.T) {
	repo, _ := seedComanda(domain.StatusOpen)
	uc := NewCreateComanda(repo, nil, testTaxRate)
	ctx := context.Background()

	in := CreateComandaInput{
		SalonID:        1,
		AppointmentID:  uintPtr(42),
		ClientID:       3,
		ProfessionalID: 2,
	}

	_, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "duplicate_comanda"))
}

func TestCreateComandaAfterCancelAllowed(t *testing.T) {
	repo, _ := seedComanda(domain.StatusOpen)
	create := NewCreateComanda(repo, nil, testTaxRate)
	cancel := NewCancelComanda(repo, nil)
	ctx := context.Background()

	in := CreateComandaInput{
		SalonID:        1,
		AppointmentID:  uintPtr(42),
		ClientID:       3,
		ProfessionalID: 2,
	}

	first, err := create.Execute(ctx, in)
	require.NoError(t, err)

	_, err = cancel.Execute(ctx, CancelComandaInput{ComandaID: first.ID, SalonID: 1})
	require.NoError(t, err)

	// comanda cancelada não bloqueia uma nova para o mesmo agendamento
	_, err = create.Execute(ctx, in)
	assert.NoError(t, err)
}

func TestCreateComandaValidation(t *testing.T) {
	repo, _ := seedComanda(domain.StatusOpen)
	uc := NewCreateComanda(repo, nil, testTaxRate)

	_, err := uc.Execute(context.Background(), CreateComandaInput{SalonID: 1})
	assert.True(t, httperr.IsBusiness(err, "missing_parties"))

	_, err = uc.Execute(context.Background(), CreateComandaInput{
		SalonID: 1, ClientID: 3, ProfessionalID: 2,
		InitialServices: []SeedService{{ServiceID: 1, Quantity: 0}},
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))
}

func TestCloseComandaAllocatesCommission(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	ctx := context.Background()

	add := NewAddItem(repo, nil, testTaxRate)
	itemA, err := add.Execute(ctx, AddItemInput{
		ComandaID: co.ID, SalonID: 1, ServiceID: uintPtr(1),
		Quantity: 1, UnitPrice: floatPtr(60.00),
	})
	require.NoError(t, err)
	itemB, err := add.Execute(ctx, AddItemInput{
		ComandaID: co.ID, SalonID: 1, ServiceID: uintPtr(2),
		Quantity: 1, UnitPrice: floatPtr(40.00),
	})
	require.NoError(t, err)

	stored := repo.comandas[co.ID]
	stored.TotalServicesCommission = 20.00
	repo.comandas[co.ID] = stored

	uc := NewCloseComanda(repo, nil)
	closed, err := uc.Execute(ctx, CloseComandaInput{
		ComandaID:     co.ID,
		SalonID:       1,
		ActorID:       7,
		PaymentMethod: "pix",
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusClosed), closed.Status)
	require.NotNil(t, closed.PaymentMethod)
	assert.Equal(t, "pix", *closed.PaymentMethod)
	assert.NotNil(t, closed.ClosedAt)
	require.NotNil(t, closed.CashierID)
	assert.Equal(t, uint(7), *closed.CashierID)
	assert.Equal(t, 20.00, closed.TotalCommission)

	a := repo.items[itemA.ID]
	b := repo.items[itemB.ID]
	require.NotNil(t, a.CommissionValue)
	require.NotNil(t, b.CommissionValue)
	assert.Equal(t, 12.00, *a.CommissionValue)
	assert.Equal(t, 8.00, *b.CommissionValue)
}

func TestCloseComandaRequiresPaymentMethod(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	uc := NewCloseComanda(repo, nil)

	_, err := uc.Execute(context.Background(), CloseComandaInput{
		ComandaID: co.ID, SalonID: 1,
	})
	assert.True(t, httperr.IsBusiness(err, "payment_method_required"))
}

func TestCloseComandaTwice(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	uc := NewCloseComanda(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, CloseComandaInput{
		ComandaID: co.ID, SalonID: 1, PaymentMethod: "cash",
	})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CloseComandaInput{
		ComandaID: co.ID, SalonID: 1, PaymentMethod: "cash",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "comanda_not_open"))
}

func TestReopenComanda(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	ctx := context.Background()

	add := NewAddItem(repo, nil, testTaxRate)
	item, err := add.Execute(ctx, AddItemInput{
		ComandaID: co.ID, SalonID: 1, ServiceID: uintPtr(1), Quantity: 1,
	})
	require.NoError(t, err)

	stored := repo.comandas[co.ID]
	stored.TotalServicesCommission = 10.00
	repo.comandas[co.ID] = stored

	closeUC := NewCloseComanda(repo, nil)
	_, err = closeUC.Execute(ctx, CloseComandaInput{
		ComandaID: co.ID, SalonID: 1, PaymentMethod: "card",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.items[item.ID].CommissionValue)

	uc := NewReopenComanda(repo, nil)
	reopened, err := uc.Execute(ctx, ReopenComandaInput{ComandaID: co.ID, SalonID: 1})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusOpen), reopened.Status)
	assert.Nil(t, reopened.PaymentMethod)
	assert.Nil(t, reopened.ClosedAt)

	// reabrir zera a alocação para o próximo fechamento refazer
	assert.Nil(t, repo.items[item.ID].CommissionValue)
}

func TestReopenRequiresClosed(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	uc := NewReopenComanda(repo, nil)

	_, err := uc.Execute(context.Background(), ReopenComandaInput{ComandaID: co.ID, SalonID: 1})
	assert.True(t, httperr.IsBusiness(err, "comanda_not_closed"))
}

func TestCancelComandaReturnsStock(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	ctx := context.Background()

	add := NewAddItem(repo, nil, testTaxRate)
	_, err := add.Execute(ctx, AddItemInput{
		ComandaID: co.ID, SalonID: 1, ActorID: 9,
		ProductID: uintPtr(1), Quantity: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 7, repo.products[1].StockQuantity)

	uc := NewCancelComanda(repo, nil)
	canceled, err := uc.Execute(ctx, CancelComandaInput{ComandaID: co.ID, SalonID: 1, ActorID: 9})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCanceled), canceled.Status)
	assert.NotNil(t, canceled.CanceledAt)
	assert.Equal(t, 10, repo.products[1].StockQuantity)

	require.Len(t, repo.movements, 2)
	assert.Equal(t, 3, repo.movements[1].Quantity)

	// itens ficam para histórico
	items, _ := repo.ListItems(ctx, co.ID)
	assert.Len(t, items, 1)
}

func TestCancelClosedComanda(t *testing.T) {
	repo, co := seedComanda(domain.StatusClosed)
	uc := NewCancelComanda(repo, nil)

	_, err := uc.Execute(context.Background(), CancelComandaInput{ComandaID: co.ID, SalonID: 1})
	assert.True(t, httperr.IsBusiness(err, "comanda_not_open"))
}

func TestRecalculateCommissionOverrides(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	ctx := context.Background()

	add := NewAddItem(repo, nil, testTaxRate)
	item, err := add.Execute(ctx, AddItemInput{
		ComandaID: co.ID, SalonID: 1, ServiceID: uintPtr(1), Quantity: 1,
	})
	require.NoError(t, err)

	uc := NewRecalculateCommission(repo, nil)
	out, err := uc.Execute(ctx, RecalculateCommissionInput{
		ComandaID:          co.ID,
		SalonID:            1,
		ServicesCommission: floatPtr(17.50),
	})
	require.NoError(t, err)

	assert.Equal(t, 17.50, out.TotalServicesCommission)
	assert.Equal(t, 17.50, out.TotalCommission)

	stored := repo.items[item.ID]
	require.NotNil(t, stored.CommissionValue)
	assert.Equal(t, 17.50, *stored.CommissionValue)
}

func TestRecalculateCommissionRejectsNegative(t *testing.T) {
	repo, co := seedComanda(domain.StatusOpen)
	uc := NewRecalculateCommission(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, RecalculateCommissionInput{
		ComandaID: co.ID, SalonID: 1, ServicesCommission: floatPtr(-5.00),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_commission"))
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	_, err = uc.Execute(ctx, RecalculateCommissionInput{
		ComandaID: co.ID, SalonID: 1, ProductsCommission: floatPtr(-0.01),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_commission"))
}

func TestRecalculateCommissionRequiresOpen(t *testing.T) {
	repo, co := seedComanda(domain.StatusClosed)
	uc := NewRecalculateCommission(repo, nil)

	_, err := uc.Execute(context.Background(), RecalculateCommissionInput{
		ComandaID: co.ID, SalonID: 1,
	})
	assert.True(t, httperr.IsBusiness(err, "comanda_not_open"))
}
