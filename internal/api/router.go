package api

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/api/handler"
	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// Deps bundles everything the router needs; main constructs them once and
// passes them in by reference.
type Deps struct {
	AuthService     ports.AuthService
	Users           ports.UserRepository
	UserService     ports.UserService
	BootcampService ports.BootcampService
	CourseService   ports.CourseService
	ReviewService   ports.ReviewService
	RateLimiter     middleware.Limiter

	CookieTTL    time.Duration
	SecureCookie bool
	// MaxBodyBytes caps every request body; zero disables the limit.
	MaxBodyBytes int64
	Health       *handler.HealthHandler
	Readiness    *handler.ReadinessHandler
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	if d.MaxBodyBytes > 0 {
		e.Use(echomiddleware.BodyLimit(strconv.FormatInt(d.MaxBodyBytes, 10) + "B"))
	}
	e.Use(middleware.RateLimit(d.RateLimiter, d.Log))

	protect := middleware.Protect(d.AuthService, d.Users)
	publisherOrAdmin := middleware.Authorize(domain.RolePublisher, domain.RoleAdmin)
	userOrAdmin := middleware.Authorize(domain.RoleUser, domain.RoleAdmin)
	adminOnly := middleware.Authorize(domain.RoleAdmin)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.AuthService, d.CookieTTL, d.SecureCookie)
	bootcampHandler := handler.NewBootcampHandler(d.BootcampService)
	courseHandler := handler.NewCourseHandler(d.CourseService)
	reviewHandler := handler.NewReviewHandler(d.ReviewService)
	userHandler := handler.NewUserHandler(d.UserService)

	v1 := e.Group("/api/v1")

	// --- Auth routes ---
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.PUT("/reset-password/:resetToken", authHandler.ResetPassword)
	auth.GET("/me", authHandler.Me, protect)
	auth.GET("/logout", authHandler.Logout, protect)
	auth.PUT("/update-detail", authHandler.UpdateDetails, protect)
	auth.PUT("/update-password", authHandler.UpdatePassword, protect)

	// --- Bootcamp routes ---
	bootcamps := v1.Group("/bootcamps")
	bootcamps.GET("", bootcampHandler.List)
	bootcamps.GET("/radius/:zipcode/:distance", bootcampHandler.InRadius)
	bootcamps.GET("/:id", bootcampHandler.Get)
	bootcamps.POST("", bootcampHandler.Create, protect, publisherOrAdmin)
	bootcamps.PUT("/:id", bootcampHandler.Update, protect, publisherOrAdmin)
	bootcamps.DELETE("/:id", bootcampHandler.Delete, protect, publisherOrAdmin)
	bootcamps.PUT("/:id/photo", bootcampHandler.UploadPhoto, protect, publisherOrAdmin)

	// --- Nested course/review routes (scoped by bootcamp) ---
	bootcamps.GET("/:bootcampId/courses", courseHandler.List)
	bootcamps.POST("/:bootcampId/courses", courseHandler.Add, protect, publisherOrAdmin)
	bootcamps.GET("/:bootcampId/reviews", reviewHandler.List)
	bootcamps.POST("/:bootcampId/reviews", reviewHandler.Add, protect, userOrAdmin)

	// --- Flat course routes ---
	courses := v1.Group("/courses")
	courses.GET("", courseHandler.List)
	courses.GET("/:id", courseHandler.Get)
	courses.PUT("/:id", courseHandler.Update, protect, publisherOrAdmin)
	courses.DELETE("/:id", courseHandler.Delete, protect, publisherOrAdmin)

	// --- Flat review routes ---
	reviews := v1.Group("/reviews")
	reviews.GET("", reviewHandler.List)
	reviews.GET("/:id", reviewHandler.Get)
	reviews.PUT("/:id", reviewHandler.Update, protect, userOrAdmin)
	reviews.DELETE("/:id", reviewHandler.Delete, protect, userOrAdmin)

	// --- Admin user routes ---
	users := v1.Group("/admin/users")
	users.GET("", userHandler.List, protect, adminOnly)
	users.POST("", userHandler.Create, protect, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update, protect, adminOnly)
	users.DELETE("/:id", userHandler.Delete, protect, adminOnly)

	// --- Probes and metrics ---
	e.GET("/health", d.Health.Liveness)
	e.GET("/health/ready", d.Readiness.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
