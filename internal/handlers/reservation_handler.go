package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services/dto"
)

type ReservationHandler struct {
	*BaseHandler
	reservationService services.ReservationService
}

func NewReservationHandler(base *BaseHandler, reservationService services.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		BaseHandler:        base,
		reservationService: reservationService,
	}
}

// RegisterRoutes mounts the authenticated reservation endpoints.
func (h *ReservationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reservations := rg.Group("/reservations")
	{
		reservations.GET("", h.List)
		reservations.POST("", h.Create)
		reservations.GET("/:id", h.Get)
		reservations.DELETE("/:id", h.Cancel)
		reservations.POST("/:id/report-payment", h.ReportPayment)
	}
}

// RegisterAdminRoutes mounts the admin-only reservation endpoints.
func (h *ReservationHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.PATCH("/reservations/:id", h.AdminUpdate)
	admin := rg.Group("/admin/reservations")
	{
		admin.GET("/pending", h.PendingPayments)
		admin.POST("/:id/approve", h.ApprovePayment)
		admin.POST("/:id/reject", h.RejectPayment)
	}
}

func (h *ReservationHandler) Create(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.CreateReservationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservation, err := h.reservationService.Create(db, claims, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateReservationResponse{
		OK:            true,
		ReservationID: reservation.ID,
		DepositAmount: reservation.DepositAmount,
		PaymentStatus: reservation.PaymentStatus,
		Reservation:   reservation,
	})
}

func (h *ReservationHandler) Get(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservation, err := h.reservationService.GetByID(db, claims, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

func (h *ReservationHandler) List(c *gin.Context) {
	var q dto.ListReservationsQuery
	if !h.BindAndValidate_Query(c, &q) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservations, err := h.reservationService.List(db, &q)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *ReservationHandler) ReportPayment(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservation, err := h.reservationService.ReportPayment(db, claims, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reservation": reservation})
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.reservationService.Cancel(db, claims, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ReservationHandler) AdminUpdate(c *gin.Context) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReservationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservation, err := h.reservationService.AdminUpdate(db, id, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reservation": reservation})
}

func (h *ReservationHandler) PendingPayments(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservations, err := h.reservationService.PendingPayments(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}

func (h *ReservationHandler) ApprovePayment(c *gin.Context) {
	h.settlePayment(c, h.reservationService.ApprovePayment)
}

func (h *ReservationHandler) RejectPayment(c *gin.Context) {
	h.settlePayment(c, h.reservationService.RejectPayment)
}

func (h *ReservationHandler) settlePayment(c *gin.Context, settle func(db *gorm.DB, id uint) (*models.Reservation, error)) {
	id, ok := h.ParseParamUint(c, "id")
	if !ok {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reservation, err := settle(db, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "reservation": reservation})
}
