package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/handlers"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/middleware"
)

// Handlers groups everything SetupRoutes mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Reservation *handlers.ReservationHandler
	User        *handlers.UserHandler
	Admin       *handlers.AdminHandler
}

// SetupRoutes wires middleware and mounts the route tree:
//
//	public:        /auth/*
//	authenticated: /me, /reservations/*
//	admin:         /users/*, /reservations/:id (PATCH), /admin/*
func SetupRoutes(router *gin.Engine, db *gorm.DB, h *Handlers) {
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	root := router.Group("")
	h.Auth.RegisterRoutes(root)

	authenticated := router.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	h.Auth.RegisterMeRoute(authenticated)
	h.Reservation.RegisterRoutes(authenticated)

	admin := router.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	h.Reservation.RegisterAdminRoutes(admin)
	h.User.RegisterAdminRoutes(admin)
	h.Admin.RegisterAdminRoutes(admin)
}
