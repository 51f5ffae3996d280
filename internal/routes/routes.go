package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-comanda/internal/audit"
	"github.com/BruksfildServices01/salon-comanda/internal/cache"
	"github.com/BruksfildServices01/salon-comanda/internal/config"
	"github.com/BruksfildServices01/salon-comanda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/salon-comanda/internal/infra/repository"
	"github.com/BruksfildServices01/salon-comanda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-comanda/internal/usecase/appointment"
	ucComanda "github.com/BruksfildServices01/salon-comanda/internal/usecase/comanda"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	comandaRepo := infraRepo.NewComandaGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	availabilityCache := cache.NewAvailability(cfg.RedisAddr)

	// ======================================================
	// USE CASES — COMANDAS
	// ======================================================
	createComandaUC := ucComanda.NewCreateComanda(comandaRepo, auditDispatcher, cfg.TaxRate)
	addItemUC := ucComanda.NewAddItem(comandaRepo, auditDispatcher, cfg.TaxRate)
	updateItemUC := ucComanda.NewUpdateItem(comandaRepo, auditDispatcher, cfg.TaxRate)
	removeItemUC := ucComanda.NewRemoveItem(comandaRepo, auditDispatcher, cfg.TaxRate)
	closeComandaUC := ucComanda.NewCloseComanda(comandaRepo, auditDispatcher)
	reopenComandaUC := ucComanda.NewReopenComanda(comandaRepo, auditDispatcher)
	cancelComandaUC := ucComanda.NewCancelComanda(comandaRepo, auditDispatcher)
	recalculateUC := ucComanda.NewRecalculateCommission(comandaRepo, auditDispatcher)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		createComandaUC,
		auditDispatcher,
		availabilityCache,
	)

	rescheduleUC := ucAppointment.NewRescheduleAppointment(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		auditDispatcher,
		availabilityCache,
	)

	checkConflictUC := ucAppointment.NewCheckConflict(appointmentRepo)

	availabilityUC := ucAppointment.NewGetAvailability(
		appointmentRepo,
		availabilityCache,
	)

	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		rescheduleUC,
		changeStatusUC,
		checkConflictUC,
		availabilityUC,
		listByDateUC,
	)

	comandaHandler := handlers.NewComandaHandler(
		comandaRepo,
		createComandaUC,
		addItemUC,
		updateItemUC,
		removeItemUC,
		closeComandaUC,
		reopenComandaUC,
		cancelComandaUC,
		recalculateUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/me/appointments", appointmentHandler.Book)
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.PATCH("/me/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/me/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.GET("/me/availability", appointmentHandler.Availability)
			secured.GET("/me/availability/conflicts", appointmentHandler.CheckConflict)

			// ------------------------------
			// COMANDAS
			// ------------------------------
			secured.POST("/me/comandas", comandaHandler.Create)
			secured.GET("/me/comandas/:id", comandaHandler.Get)
			secured.POST("/me/comandas/:id/items", comandaHandler.AddItem)
			secured.PATCH("/me/comandas/:id/items/:itemID", comandaHandler.UpdateItem)
			secured.DELETE("/me/comandas/:id/items/:itemID", comandaHandler.RemoveItem)
			secured.POST("/me/comandas/:id/close", comandaHandler.Close)
			secured.POST("/me/comandas/:id/reopen", comandaHandler.Reopen)
			secured.POST("/me/comandas/:id/cancel", comandaHandler.Cancel)
			secured.POST("/me/comandas/:id/recalculate-commission", comandaHandler.RecalculateCommission)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
