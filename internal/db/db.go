package db

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-comanda/internal/config"
	"github.com/BruksfildServices01/salon-comanda/internal/logging"
	"github.com/BruksfildServices01/salon-comanda/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	log := logging.WithComponent("db")

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Comanda{},
		&models.ComandaItem{},
		&models.StockMovement{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	// Dois agendamentos ativos do mesmo profissional nunca se sobrepõem,
	// mesmo que duas requisições concorrentes passem pela checagem da
	// aplicação: a segunda inserção é rejeitada pelo banco (23P01).
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    employee_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status NOT IN ('canceled', 'completed'));
        EXCEPTION
            WHEN duplicate_object THEN NULL;
            WHEN duplicate_table THEN NULL;
        END $$;
    `)

	// No máximo uma comanda não cancelada por agendamento.
	db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_comandas_active_appointment
        ON comandas (appointment_id)
        WHERE appointment_id IS NOT NULL AND status <> 'canceled'
    `)

	return db
}
