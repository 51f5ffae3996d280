package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

func (r *AppointmentGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
	return httperr.ClassifyTx(err)
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	salonID uint,
	serviceIDs []uint,
) ([]models.Service, error) {

	var svcs []models.Service
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ? AND active = true", salonID, serviceIDs).
		Find(&svcs).Error; err != nil {
		return nil, err
	}
	return svcs, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) FindConflicts(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			employeeID,
			domain.ActiveStatuses(),
			end,
			start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Appointment
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Services").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListAppointmentsForDay(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	// Filtro por interseção, não por início: agendamento que começa antes
	// da janela mas invade ela ainda ocupa a grade.
	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"employee_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			employeeID, domain.ActiveStatuses(), end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	employeeID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services.Service").
		Where(
			"employee_id = ? AND start_time >= ? AND start_time < ?",
			employeeID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
