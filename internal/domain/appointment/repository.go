package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type Repository interface {
	// InTx executa fn dentro de uma transação; o Repository recebido por
	// fn opera sobre a mesma transação. Qualquer erro desfaz tudo.
	InTx(ctx context.Context, fn func(Repository) error) error

	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Catalog (read-only) --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	ListServices(
		ctx context.Context,
		salonID uint,
		serviceIDs []uint,
	) ([]models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment (create / conflict) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// FindConflicts retorna os agendamentos ativos que intersectam
	// [start, end) para o profissional, ignorando excludeID (0 = nenhum).
	// Dentro de transação, trava as linhas encontradas.
	FindConflicts(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
		salonID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListAppointmentsForDay(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		employeeID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
