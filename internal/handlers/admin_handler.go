package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
)

// AdminHandler covers the operational endpoints that do not belong to a
// domain entity, currently just the database backup.
type AdminHandler struct {
	*BaseHandler
	backupService services.BackupService
}

func NewAdminHandler(base *BaseHandler, backupService services.BackupService) *AdminHandler {
	return &AdminHandler{
		BaseHandler:   base,
		backupService: backupService,
	}
}

func (h *AdminHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/admin/db/backup", h.Backup)
}

func (h *AdminHandler) Backup(c *gin.Context) {
	path, err := h.backupService.Run()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "backup": path})
}
