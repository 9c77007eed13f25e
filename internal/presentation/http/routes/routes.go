package routes

import (
	"github.com/dentwise/dentwise-api/internal/application/ratelimit"
	"github.com/dentwise/dentwise-api/internal/application/service"
	"github.com/dentwise/dentwise-api/internal/config"
	"github.com/dentwise/dentwise-api/internal/infrastructure/state"
	"github.com/dentwise/dentwise-api/internal/presentation/http/handler"
	"github.com/dentwise/dentwise-api/internal/presentation/http/middleware"
	"github.com/dentwise/dentwise-api/pkg/identity"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Appointment *handler.AppointmentHandler
	Doctor      *handler.DoctorHandler
	Video       *handler.VideoHandler
	User        *handler.UserHandler
	Dashboard   *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	Verifier    *identity.Verifier
	UserService *service.UserService
	Limiter     *ratelimit.Limiter
	StateStore  state.Store
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerPublicRoutes(v1, h, deps)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.Verifier, deps.UserService, deps.Cfg.App.AdminEmail))
		registerProtectedRoutes(protected, h, deps)

		admin := v1.Group("/admin")
		admin.Use(middleware.AuthMiddleware(deps.Verifier, deps.UserService, deps.Cfg.App.AdminEmail))
		admin.Use(middleware.RequireAdmin())
		registerAdminRoutes(admin, h, deps)
	}

	return router
}

// registerPublicRoutes covers pre-authentication reads; these are throttled
// by origin address since no user identity exists yet.
func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	perOrigin := middleware.RateLimit(deps.Limiter, ratelimit.PerOrigin)

	doctors := v1.Group("/doctors")
	doctors.Use(perOrigin)
	{
		doctors.GET("", h.Doctor.List)
		doctors.GET("/:id", h.Doctor.Get)
		doctors.GET("/:id/slots", h.Appointment.BookedSlots)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	read := middleware.RateLimit(deps.Limiter, ratelimit.Lenient)
	write := middleware.RateLimit(deps.Limiter, ratelimit.Moderate)
	idempotent := middleware.Idempotency(deps.StateStore)

	// Profile
	protected.GET("/users/me", read, h.User.Me)
	protected.PUT("/users/me", write, h.User.UpdateMe)

	// Appointments
	appointments := protected.Group("/appointments")
	{
		appointments.GET("", read, h.Appointment.List)
		appointments.GET("/stats", read, h.Appointment.Stats)
		appointments.GET("/:id", read, h.Appointment.Get)
		appointments.POST("", write, idempotent, h.Appointment.Book)
		appointments.PATCH("/:id/status", write, h.Appointment.UpdateStatus)
		appointments.DELETE("/:id", write, h.Appointment.Cancel)
	}

	// Course videos
	videos := protected.Group("/videos")
	{
		videos.GET("", read, h.Video.List)
		videos.GET("/:id", read, h.Video.Get)
		videos.PUT("/:id/progress", write, h.Video.UpdateProgress)
	}
}

func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers, deps *Deps) {
	read := middleware.RateLimit(deps.Limiter, ratelimit.Lenient)
	strict := middleware.RateLimit(deps.Limiter, ratelimit.Strict)

	admin.GET("/stats", read, h.Dashboard.GetStats)

	appointments := admin.Group("/appointments")
	{
		appointments.GET("", read, h.Appointment.ListAll)
		appointments.POST("/:id/complete", strict, h.Appointment.Complete)
	}

	doctors := admin.Group("/doctors")
	{
		doctors.GET("", read, h.Doctor.ListWithLoad)
		doctors.POST("", strict, h.Doctor.Create)
		doctors.PUT("/:id", strict, h.Doctor.Update)
	}

	videos := admin.Group("/videos")
	{
		videos.GET("", read, h.Video.ListAll)
		videos.GET("/analytics", read, h.Video.Analytics)
		videos.GET("/:id/analytics", read, h.Video.DetailAnalytics)
		videos.POST("", strict, h.Video.Create)
		videos.POST("/uploads", strict, h.Video.CreateUpload)
		videos.POST("/:id/refresh", strict, h.Video.RefreshUpload)
		videos.PUT("/:id", strict, h.Video.Update)
		videos.DELETE("/:id", strict, h.Video.Delete)
	}
}
