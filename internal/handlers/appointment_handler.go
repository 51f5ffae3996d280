package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-comanda/internal/dto"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/httpresp"
	"github.com/BruksfildServices01/salon-comanda/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-comanda/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	bookUC         *ucAppointment.BookAppointment
	rescheduleUC   *ucAppointment.RescheduleAppointment
	changeStatusUC *ucAppointment.ChangeStatus
	checkUC        *ucAppointment.CheckConflict
	availabilityUC *ucAppointment.GetAvailability
	listByDateUC   *ucAppointment.ListAppointmentsByDate
}

func NewAppointmentHandler(
	bookUC *ucAppointment.BookAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	changeStatusUC *ucAppointment.ChangeStatus,
	checkUC *ucAppointment.CheckConflict,
	availabilityUC *ucAppointment.GetAvailability,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookUC:         bookUC,
		rescheduleUC:   rescheduleUC,
		changeStatusUC: changeStatusUC,
		checkUC:        checkUC,
		availabilityUC: availabilityUC,
		listByDateUC:   listByDateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type bookedServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type BookAppointmentRequest struct {
	EmployeeID  uint                   `json:"employee_id" binding:"required"`
	ClientName  string                 `json:"client_name" binding:"required"`
	ClientPhone string                 `json:"client_phone" binding:"required"`
	ClientEmail string                 `json:"client_email"`
	Services    []bookedServiceRequest `json:"services" binding:"required"`
	Date        string                 `json:"date" binding:"required"`
	Time        string                 `json:"time" binding:"required"`
	Notes       string                 `json:"notes"`
}

type RescheduleRequest struct {
	EmployeeID *uint   `json:"employee_id"`
	Date       *string `json:"date"`
	Time       *string `json:"time"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// BOOK
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucAppointment.BookInput{
		SalonID:     salonID,
		EmployeeID:  req.EmployeeID,
		ActorID:     actorID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	}
	for _, s := range req.Services {
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		in.Services = append(in.Services, ucAppointment.BookedService{
			ServiceID: s.ServiceID,
			Quantity:  qty,
		})
	}

	result, err := h.bookUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucAppointment.RescheduleInput{
		AppointmentID: id,
		SalonID:       salonID,
		ActorID:       actorID,
		NewEmployeeID: req.EmployeeID,
		NewDate:       req.Date,
		NewTime:       req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.changeStatusUC.Execute(c.Request.Context(), ucAppointment.ChangeStatusInput{
		AppointmentID: id,
		SalonID:       salonID,
		ActorID:       actorID,
		NewStatus:     req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// AVAILABILITY / CONFLICTS
// ======================================================

func (h *AppointmentHandler) CheckConflict(c *gin.Context) {
	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_employee", "Profissional inválido.")
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		httperr.BadRequest(c, "invalid_interval", "Intervalo inválido.")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil || !end.After(start) {
		httperr.BadRequest(c, "invalid_interval", "Intervalo inválido.")
		return
	}

	var excludeID uint
	if raw := c.Query("exclude_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", "ID inválido.")
			return
		}
		excludeID = uint(id)
	}

	set, err := h.checkUC.Execute(c.Request.Context(), ucAppointment.CheckConflictInput{
		EmployeeID:           employeeID,
		Start:                start,
		End:                  end,
		ExcludeAppointmentID: excludeID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"available": set.Empty(),
		"conflicts": set.Conflicts,
	})
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_employee", "Profissional inválido.")
		return
	}

	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var serviceIDs []uint
	for _, raw := range c.QueryArray("service_id") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_service", "Serviço inválido.")
			return
		}
		serviceIDs = append(serviceIDs, uint(id))
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:    salonID,
		EmployeeID: employeeID,
		ServiceIDs: serviceIDs,
		Date:       date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	aps, err := h.listByDateUC.Execute(c.Request.Context(), userID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}

	httpresp.List(c, out)
}

// ======================================================
// HELPERS
// ======================================================

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	return uint(id), err
}

func queryID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(id), err
}
