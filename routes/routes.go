package routes

import (
	"travel-agency/config"
	"travel-agency/controllers/admin"
	"travel-agency/controllers/auth"
	"travel-agency/controllers/blog"
	"travel-agency/controllers/booking"
	"travel-agency/controllers/gallery"
	"travel-agency/controllers/hotel"
	"travel-agency/controllers/operator_config"
	"travel-agency/controllers/server"
	"travel-agency/controllers/tour"
	"travel-agency/controllers/travel_service"
	"travel-agency/controllers/upload"
	"travel-agency/logger"
	"travel-agency/metrics"
	"travel-agency/middleware"
	authService "travel-agency/services/auth"
	bookingService "travel-agency/services/booking"
	operatorService "travel-agency/services/operator_config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies are the long-lived components the HTTP layer is built from.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *logger.AsyncLogger
	Auth      *authService.Service
	Bookings  *bookingService.Service
	Operators *operatorService.Service
	Jobs      admin.JobHistory
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	cfg := deps.Config
	authController := auth.NewAuthController(deps.Auth, deps.Logger, cfg.IsProduction())
	bookingController := booking.NewBookingController(deps.Bookings, deps.Logger)
	tourController := tour.NewTourController(deps.DB, deps.Logger)
	hotelController := hotel.NewHotelController(deps.DB, deps.Logger)
	serviceController := travel_service.NewServiceController(deps.DB, deps.Logger)
	blogController := blog.NewBlogController(deps.DB, deps.Logger)
	galleryController := gallery.NewGalleryController(deps.DB, deps.Logger)
	operatorController := operator_config.NewOperatorConfigController(deps.Operators, deps.Logger)
	adminController := admin.NewAdminController(deps.DB, deps.Jobs, deps.Logger)
	uploadController := upload.NewUploadController(cfg.Upload, deps.Logger)
	serverController := server.NewServerController(cfg.App)

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Get("/health", serverController.Health)
	api.Get("/metrics", metrics.Handler())
	api.Static("/uploads", cfg.Upload.Dir)

	api.Post("/auth/login", authController.Login)
	api.Post("/auth/logout", authController.Logout)

	api.Get("/tours", tourController.Index)
	api.Get("/tours/:id", tourController.Show)
	api.Get("/hotels", hotelController.Index)
	api.Get("/hotels/:id", hotelController.Show)
	api.Get("/services", serviceController.Index)
	api.Get("/services/:id", serviceController.Show)
	api.Get("/blog", blogController.Index)
	api.Get("/blog/:slug", blogController.Show)
	api.Get("/gallery", galleryController.Index)
	api.Get("/gallery/:id", galleryController.Show)

	api.Post("/bookings", bookingController.Store)
	api.Get("/bookings", bookingController.Index)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	requireAdmin := middleware.RequireAdmin(deps.Auth)

	api.Get("/auth/verify", requireAdmin, authController.Verify)
	api.Post("/upload", requireAdmin, uploadController.Store)

	adminGroup := api.Group("/admin", requireAdmin)
	adminGroup.Get("/stats", adminController.Stats)
	adminGroup.Get("/jobs", adminController.Jobs)

	/*=============================================================================
	| Content Management Routes
	===============================================================================*/
	adminGroup.Get("/tours", tourController.AdminIndex)
	adminGroup.Post("/tours", tourController.Store)
	adminGroup.Put("/tours/:id", tourController.Update)
	adminGroup.Delete("/tours/:id", tourController.Destroy)

	adminGroup.Get("/hotels", hotelController.AdminIndex)
	adminGroup.Post("/hotels", hotelController.Store)
	adminGroup.Put("/hotels/:id", hotelController.Update)
	adminGroup.Delete("/hotels/:id", hotelController.Destroy)

	adminGroup.Post("/services", serviceController.Store)
	adminGroup.Put("/services/:id", serviceController.Update)
	adminGroup.Delete("/services/:id", serviceController.Destroy)

	adminGroup.Get("/blog", blogController.AdminIndex)
	adminGroup.Get("/blog/:id", blogController.AdminShow)
	adminGroup.Post("/blog", blogController.Store)
	adminGroup.Put("/blog/:id", blogController.Update)
	adminGroup.Delete("/blog/:id", blogController.Destroy)

	adminGroup.Post("/gallery", galleryController.Store)
	adminGroup.Put("/gallery/:id", galleryController.Update)
	adminGroup.Delete("/gallery/:id", galleryController.Destroy)

	/*=============================================================================
	| Booking Management Routes
	===============================================================================*/
	adminGroup.Get("/bookings", bookingController.AdminIndex)
	adminGroup.Get("/bookings/:id", bookingController.Show)
	adminGroup.Get("/bookings/:id/events", bookingController.Events)
	adminGroup.Put("/bookings/:id", bookingController.UpdateStatus)
	adminGroup.Delete("/bookings/:id", bookingController.Destroy)

	adminGroup.Get("/operator-configs", operatorController.Index)
	adminGroup.Get("/operator-configs/:id", operatorController.Show)
	adminGroup.Post("/operator-configs", operatorController.Store)
	adminGroup.Put("/operator-configs/:id", operatorController.Update)
	adminGroup.Delete("/operator-configs/:id", operatorController.Destroy)
}
