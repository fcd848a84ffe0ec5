package routes

import (
	"equiptrack/internal/adapters/http/handlers"
	"equiptrack/internal/adapters/http/middleware"
	"equiptrack/internal/adapters/persistence/repositories"
	"equiptrack/internal/config"
	"equiptrack/internal/core/domain"
	"equiptrack/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := services.NewUserService(userRepo, roleRepo)
	inventoryService := services.NewInventoryService(itemRepo)
	requestService := services.NewRequestService(requestRepo, itemRepo)
	loanService := services.NewLoanService(loanRepo)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	itemHandler := handlers.NewItemHandler(inventoryService)
	requestHandler := handlers.NewRequestHandler(requestService)
	loanHandler := handlers.NewLoanHandler(loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, authHandler, userHandler, itemHandler,
		requestHandler, loanHandler, dashboardHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	itemHandler *handlers.ItemHandler,
	requestHandler *handlers.RequestHandler,
	loanHandler *handlers.LoanHandler,
	dashboardHandler *handlers.DashboardHandler,
	cfg *config.Config,
) {
	// Auth routes (public)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, cfg)

	// Item routes (read: authenticated, mutate: inventory admin)
	itemRoutes := router.Group("/items")
	itemRoutes.Use(middleware.AuthMiddleware(cfg))
	setupItemRoutes(itemRoutes, itemHandler)

	// Label routes (read: authenticated, mutate: inventory admin)
	labelRoutes := router.Group("/labels")
	labelRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLabelRoutes(labelRoutes, itemHandler)

	// Request routes (authenticated, role-shaped)
	requestRoutes := router.Group("/requests")
	requestRoutes.Use(middleware.AuthMiddleware(cfg))
	setupRequestRoutes(requestRoutes, requestHandler)

	// Loan routes (authenticated)
	loanRoutes := router.Group("/loans")
	loanRoutes.Use(middleware.AuthMiddleware(cfg))
	setupLoanRoutes(loanRoutes, loanHandler)

	// User management routes (superadmin only)
	userRoutes := router.Group("/users")
	userRoutes.Use(middleware.AuthMiddleware(cfg))
	userRoutes.Use(middleware.SuperadminOnly())
	setupUserRoutes(userRoutes, userHandler)

	// Role list (authenticated)
	router.Get("/roles", middleware.AuthMiddleware(cfg), userHandler.ListRoles)

	// Profile routes (authenticated)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Dashboard routes (authenticated)
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Use(middleware.AuthMiddleware(cfg))
	dashboardRoutes.Get("/", dashboardHandler.GetDashboard)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, cfg *config.Config) {
	// Public routes (strict limiter on credential endpoints)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), handler.Me)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupItemRoutes configures inventory item routes
func setupItemRoutes(router fiber.Router, handler *handlers.ItemHandler) {
	router.Get("/", handler.ListItems)

	// Mutations are inventory admin only
	adminRoutes := router.Group("")
	adminRoutes.Use(middleware.RoleMiddleware(domain.RoleAdminInventory))
	adminRoutes.Post("/", handler.CreateItem)
	adminRoutes.Put("/", handler.UpdateItem)
	adminRoutes.Delete("/", handler.DeleteItem)
}

// setupLabelRoutes configures label routes
func setupLabelRoutes(router fiber.Router, handler *handlers.ItemHandler) {
	router.Get("/", handler.ListLabels)
	router.Post("/", middleware.RoleMiddleware(domain.RoleAdminInventory), handler.CreateLabel)
}

// setupRequestRoutes configures borrow request routes
func setupRequestRoutes(router fiber.Router, handler *handlers.RequestHandler) {
	router.Get("/", handler.List)
	router.Post("/", middleware.RoleMiddleware(domain.RoleUser), handler.Submit)
	router.Put("/", handler.Act)
}

// setupLoanRoutes configures loan routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Get("/", handler.List)
	router.Put("/", handler.Return)
}

// setupUserRoutes configures user management routes (superadmin only)
func setupUserRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.ListUsers)
	router.Post("/", handler.CreateUser)
	router.Put("/:id", handler.UpdateUser)
	router.Delete("/:id", handler.DeleteUser)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
}
