package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// RegisterAdminRoutes mounts the admin user-management endpoints.
func (h *UserHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", h.List)
		users.POST("/promote", h.Promote)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	users, err := h.userService.ListUsers(db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) Promote(c *gin.Context) {
	var req dto.PromoteUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.PromoteToAdmin(db, req.UserID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
