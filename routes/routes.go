package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/L1nkStart/cgm-system-v1-sub000/cache"
	"github.com/L1nkStart/cgm-system-v1-sub000/config"
	"github.com/L1nkStart/cgm-system-v1-sub000/controllers"
	"github.com/L1nkStart/cgm-system-v1-sub000/handlers"
	"github.com/L1nkStart/cgm-system-v1-sub000/middlewares"
	"github.com/L1nkStart/cgm-system-v1-sub000/repositories"
	"github.com/L1nkStart/cgm-system-v1-sub000/services"
)

// SetupRoutes initializes the routes and middleware for the server
func SetupRoutes(cache *cache.Cache, config *config.AppConfig, db *gorm.DB) http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.Default()

	corsConfig := &middlewares.CorsConfig{
		AllowedOrigins:   config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	router.Use(middlewares.CorsMiddleware(corsConfig))

	router.Use(middlewares.NewRateLimiterMiddleware(middlewares.RateLimiterConfig{
		RequestsPerSecond: 15,
		Burst:             30,
	}))

	router.Use(middlewares.LoggingMiddleware())

	// Repositories share the same cache; services talk to them through
	// their store interfaces.
	caseRepo := repositories.NewCaseRepository(cache)
	paymentRepo := repositories.NewPaymentRepository(cache)
	clientRepo := repositories.NewClientRepository(cache)
	patientRepo := repositories.NewPatientRepository(cache)
	holderRepo := repositories.NewInsuranceHolderRepository(cache)
	baremoRepo := repositories.NewBaremoRepository(cache)
	userRepo := repositories.NewUserRepository(cache)

	userService := services.NewUserService(userRepo)
	caseService := services.NewCaseService(caseRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo)
	clientService := services.NewClientService(clientRepo)
	patientService := services.NewPatientService(patientRepo)
	holderService := services.NewInsuranceHolderService(holderRepo)
	baremoService := services.NewBaremoService(baremoRepo)
	authService := services.NewAuthService(userRepo)

	caseHandler := handlers.NewCaseHandler(caseService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	clientHandler := handlers.NewClientHandler(clientService)
	patientHandler := handlers.NewPatientHandler(patientService)
	holderHandler := handlers.NewInsuranceHolderHandler(holderService)
	baremoHandler := handlers.NewBaremoHandler(baremoService)
	userHandler := handlers.NewUserHandler(userService)
	authHandler := handlers.NewAuthHandler(authService, userService)

	controllers.SetupCaseRoutes(router, caseHandler, paymentHandler)
	controllers.SetupRecordRoutes(router, clientHandler, patientHandler, holderHandler, baremoHandler, userHandler)

	authController := controllers.NewAuthController(authHandler)
	authController.RegisterRoutes(router)

	controllers.SetupRootRoute(router)

	return router
}
