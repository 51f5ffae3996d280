package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-comanda/internal/domain/comanda"
	"github.com/BruksfildServices01/salon-comanda/internal/httperr"
	"github.com/BruksfildServices01/salon-comanda/internal/httpresp"
	"github.com/BruksfildServices01/salon-comanda/internal/middleware"
	ucComanda "github.com/BruksfildServices01/salon-comanda/internal/usecase/comanda"
)

// ======================================================
// HANDLER
// ======================================================

type ComandaHandler struct {
	repo domain.Repository

	createUC      *ucComanda.CreateComanda
	addItemUC     *ucComanda.AddItem
	updateItemUC  *ucComanda.UpdateItem
	removeItemUC  *ucComanda.RemoveItem
	closeUC       *ucComanda.CloseComanda
	reopenUC      *ucComanda.ReopenComanda
	cancelUC      *ucComanda.CancelComanda
	recalculateUC *ucComanda.RecalculateCommission
}

func NewComandaHandler(
	repo domain.Repository,
	createUC *ucComanda.CreateComanda,
	addItemUC *ucComanda.AddItem,
	updateItemUC *ucComanda.UpdateItem,
	removeItemUC *ucComanda.RemoveItem,
	closeUC *ucComanda.CloseComanda,
	reopenUC *ucComanda.ReopenComanda,
	cancelUC *ucComanda.CancelComanda,
	recalculateUC *ucComanda.RecalculateCommission,
) *ComandaHandler {
	return &ComandaHandler{
		repo:          repo,
		createUC:      createUC,
		addItemUC:     addItemUC,
		updateItemUC:  updateItemUC,
		removeItemUC:  removeItemUC,
		closeUC:       closeUC,
		reopenUC:      reopenUC,
		cancelUC:      cancelUC,
		recalculateUC: recalculateUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type seedServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateComandaRequest struct {
	AppointmentID  *uint                `json:"appointment_id"`
	ClientID       uint                 `json:"client_id" binding:"required"`
	ProfessionalID uint                 `json:"professional_id" binding:"required"`
	Services       []seedServiceRequest `json:"services"`
}

type AddItemRequest struct {
	ServiceID      *uint    `json:"service_id"`
	ProductID      *uint    `json:"product_id"`
	Quantity       int      `json:"quantity" binding:"required"`
	UnitPrice      *float64 `json:"unit_price"`
	DiscountAmount float64  `json:"discount_amount"`
}

type UpdateItemRequest struct {
	Quantity       *int     `json:"quantity"`
	DiscountAmount *float64 `json:"discount_amount"`
}

type CloseComandaRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type RecalculateRequest struct {
	ServicesCommission *float64 `json:"total_services_commission"`
	ProductsCommission *float64 `json:"total_products_commission"`
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *ComandaHandler) Create(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	var req CreateComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	in := ucComanda.CreateComandaInput{
		SalonID:        salonID,
		AppointmentID:  req.AppointmentID,
		ClientID:       req.ClientID,
		ProfessionalID: req.ProfessionalID,
		ActorID:        actorID,
	}
	for _, s := range req.Services {
		qty := s.Quantity
		if qty == 0 {
			qty = 1
		}
		in.InitialServices = append(in.InitialServices, ucComanda.SeedService{
			ServiceID: s.ServiceID,
			Quantity:  qty,
		})
	}

	co, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, co)
}

func (h *ComandaHandler) Get(c *gin.Context) {
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	co, err := h.repo.GetComanda(c.Request.Context(), id, salonID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, co)
}

func (h *ComandaHandler) Close(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req CloseComandaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	co, err := h.closeUC.Execute(c.Request.Context(), ucComanda.CloseComandaInput{
		ComandaID:     id,
		SalonID:       salonID,
		ActorID:       actorID,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, co)
}

func (h *ComandaHandler) Reopen(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	co, err := h.reopenUC.Execute(c.Request.Context(), ucComanda.ReopenComandaInput{
		ComandaID: id,
		SalonID:   salonID,
		ActorID:   actorID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, co)
}

func (h *ComandaHandler) Cancel(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	co, err := h.cancelUC.Execute(c.Request.Context(), ucComanda.CancelComandaInput{
		ComandaID: id,
		SalonID:   salonID,
		ActorID:   actorID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, co)
}

func (h *ComandaHandler) RecalculateCommission(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req RecalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	co, err := h.recalculateUC.Execute(c.Request.Context(), ucComanda.RecalculateCommissionInput{
		ComandaID:          id,
		SalonID:            salonID,
		ActorID:            actorID,
		ServicesCommission: req.ServicesCommission,
		ProductsCommission: req.ProductsCommission,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, co)
}

// ======================================================
// ITEMS
// ======================================================

func (h *ComandaHandler) AddItem(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	id, err := pathID(c, "id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item, err := h.addItemUC.Execute(c.Request.Context(), ucComanda.AddItemInput{
		ComandaID:      id,
		SalonID:        salonID,
		ActorID:        actorID,
		ServiceID:      req.ServiceID,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, item)
}

func (h *ComandaHandler) UpdateItem(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	itemID, err := pathID(c, "itemID")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	item, err := h.updateItemUC.Execute(c.Request.Context(), ucComanda.UpdateItemInput{
		ItemID:         itemID,
		SalonID:        salonID,
		ActorID:        actorID,
		Quantity:       req.Quantity,
		DiscountAmount: req.DiscountAmount,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, item)
}

func (h *ComandaHandler) RemoveItem(c *gin.Context) {
	actorID := c.MustGet(middleware.ContextUserID).(uint)
	salonID := c.MustGet(middleware.ContextSalonID).(uint)

	itemID, err := pathID(c, "itemID")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	if err := h.removeItemUC.Execute(c.Request.Context(), ucComanda.RemoveItemInput{
		ItemID:  itemID,
		SalonID: salonID,
		ActorID: actorID,
	}); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(204)
}
