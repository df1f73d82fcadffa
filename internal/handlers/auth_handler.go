package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/forgot", h.ForgotPassword)
		authGroup.POST("/reset", h.ResetPassword)
	}
}

// RegisterMeRoute mounts GET /me on an authenticated group.
func (h *AuthHandler) RegisterMeRoute(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.authService.Register(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.authService.Login(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	claims, err := h.GetClaims(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	user, err := h.authService.Me(db, claims.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp, err := h.authService.ForgotPassword(db, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db, err := h.GetDB(c)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.authService.ResetPassword(db, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
