package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/workforce/identity-service/internal/api/handler"
	"github.com/workforce/identity-service/internal/api/middleware"
	"github.com/workforce/identity-service/internal/core/domain"
	"github.com/workforce/identity-service/internal/core/service"
	"github.com/workforce/identity-service/internal/infrastructure/config"
	mongodb "github.com/workforce/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/workforce/identity-service/internal/infrastructure/db/redis"
	"github.com/workforce/identity-service/internal/infrastructure/email"
	"github.com/workforce/identity-service/internal/infrastructure/mail"
	"github.com/workforce/identity-service/internal/infrastructure/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)

	verifier := email.NewCachedVerifier(
		email.NewAbstractClient(cfg.Email.ValidationAPIKey, cfg.Email.ValidationBaseURL),
		redisdb.NewVerificationCache(rdb),
		log,
	)
	emailValidator := service.NewEmailValidatorService(verifier, log)

	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	})

	issuer := token.NewJWTIssuer(cfg.JWTSecret, 24*time.Hour)

	userService := service.NewUserService(userRepo, emailValidator, issuer, log)
	recoveryService := service.NewRecoveryService(userRepo, mailer, log)

	userHandler := handler.NewUserHandler(userService)
	recoveryHandler := handler.NewRecoveryHandler(recoveryService)

	// --- Public routes: registration, login, and the recovery flow (a
	// locked-out user holds no token) ---
	e.POST("/users", userHandler.Create)
	e.POST("/users/login", userHandler.Login)
	e.POST("/users/forgot-password/:phone", recoveryHandler.ForgotPassword)
	e.POST("/users/verify-otp/:phone", recoveryHandler.VerifyOTP)
	e.PUT("/users/forgot-password/change-password", recoveryHandler.ResetPassword)

	// --- Protected routes ---
	protected := e.Group("/users",
		middleware.Auth(cfg.JWTSecret),
		middleware.RequireRole(domain.RoleAdmin, domain.RoleEmployee),
	)
	protected.GET("", userHandler.List)
	protected.GET("/employees", userHandler.ListEmployees)
	protected.GET("/:id", userHandler.GetByID)
	protected.GET("/phone/:phone", userHandler.GetByPhone)
	protected.DELETE("/:id/:targetId", userHandler.Delete)
	protected.PUT("/edit-profile/:id", userHandler.EditProfile)
	protected.PUT("/change-password", userHandler.ChangePassword)

	// --- Health probes and operational surfaces (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
