package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/auth"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/validator"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/contextkeys"
)

// BaseHandler carries the plumbing every handler needs: the request-scoped
// database handle, request binding plus validation, and error rendering.
type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

// GetDB pulls the *gorm.DB that DBMiddleware put on the request context.
func (h *BaseHandler) GetDB(c *gin.Context) (*gorm.DB, error) {
	value, exists := c.Get(string(contextkeys.DBContextKey))
	if !exists {
		return nil, errors.New("database handle missing from request context")
	}
	db, ok := value.(*gorm.DB)
	if !ok {
		return nil, errors.New("database handle has wrong type")
	}
	return db, nil
}

// GetClaims pulls the authenticated identity that AuthMiddleware stored.
func (h *BaseHandler) GetClaims(c *gin.Context) (*auth.Claims, error) {
	value, exists := c.Get(string(contextkeys.ClaimsContextKey))
	if !exists {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	return claims, nil
}

// BindAndValidate_JSON binds the JSON body and runs struct validation. On
// failure it writes the error response and returns false.
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid JSON body"))
		return false
	}
	return h.validate(c, obj)
}

// BindAndValidate_Query binds query parameters (form tags) and validates them.
func (h *BaseHandler) BindAndValidate_Query(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	return h.validate(c, obj)
}

func (h *BaseHandler) validate(c *gin.Context, obj interface{}) bool {
	if err := h.validator.Validate(obj); err != nil {
		var validationErr *validator.ValidationError
		if errors.As(err, &validationErr) {
			apperrors.HandleError(c, apperrors.ValidationError(validationErr.Errors))
		} else {
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ParseParamUint reads a numeric path parameter. On failure it writes the
// error response and returns false.
func (h *BaseHandler) ParseParamUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid id parameter"))
		return 0, false
	}
	return uint(id), true
}

// HandleServiceError renders a service error.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
}
