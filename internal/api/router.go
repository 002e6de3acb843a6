package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/medscript/clinical-records/internal/api/handler"
	"github.com/medscript/clinical-records/internal/api/middleware"
	"github.com/medscript/clinical-records/internal/core/access"
	"github.com/medscript/clinical-records/internal/core/ports"
	"github.com/medscript/clinical-records/internal/core/service"
	"github.com/medscript/clinical-records/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs to assemble the service.
// Mongo and Redis are nil when the respective backend is not in use; the
// readiness probe skips absent dependencies.
type Deps struct {
	Store     ports.RecordStore
	Sessions  ports.SessionManager
	JWTSecret string
	TokenTTL  time.Duration
	Location  *time.Location
	Mongo     *mongo.Database
	Redis     *redis.Client
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("medscript"))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Store, deps.Sessions, deps.JWTSecret, deps.TokenTTL)
	recordService := service.NewRecordService(deps.Store, deps.Location, deps.Log)

	authHandler := handler.NewAuthHandler(authService, deps.Sessions)
	userHandler := handler.NewUserHandler(recordService)
	prescriptionHandler := handler.NewPrescriptionHandler(recordService)
	dashboardHandler := handler.NewDashboardHandler(recordService)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Authenticated routes, gated by the capability table ---
	authed := e.Group("", middleware.Auth(deps.JWTSecret))
	authed.GET("/auth/session", authHandler.Session)
	authed.POST("/auth/logout", authHandler.Logout)

	authed.GET("/dashboard", dashboardHandler.Show)

	authed.GET("/users", userHandler.List,
		middleware.RequireRoute(access.RouteUsers))
	authed.POST("/users", userHandler.Create,
		middleware.RequireMutation(access.MutationAddUser))
	authed.DELETE("/users/:id", userHandler.Delete,
		middleware.RequireMutation(access.MutationDeleteUser))

	// Doctors browse via /prescriptions, pharmacists via the verification
	// hub, patients via their vault; all three read the same listing.
	authed.GET("/prescriptions", prescriptionHandler.List,
		middleware.RequireRoute(access.RoutePrescriptions, access.RouteVerify, access.RouteVault))
	authed.POST("/prescriptions", prescriptionHandler.Issue,
		middleware.RequireMutation(access.MutationIssuePrescription))
	authed.POST("/prescriptions/:id/status", prescriptionHandler.SetStatus,
		middleware.RequireMutation(access.MutationVerifyPrescription))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
