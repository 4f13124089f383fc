package httpEngine

import (
	"net/http"
	"time"

	"greenhouse-server/internal/controllers"
	"greenhouse-server/internal/logics"
	"greenhouse-server/internal/middlewares"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterRoutes sets up all the server routes.
//
// Reads under /api are open except the user listing, which exposes
// account details and therefore requires a logged-in session. Mutations
// require a valid access token plus a freshly resolved ADMIN role; the
// one exception is the assignment update, whose handler carries its own
// owner-or-admin check.
func RegisterRoutes(e *echo.Echo) {
	// Basic health check
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Hello, from Greenhouse Server!")
	})

	loginLimiter := middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      5,
				Burst:     10,
				ExpiresIn: 1 * time.Hour,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			// Rate limiting based on IP and email (if available)
			email := ""
			if req := ctx.Request(); req.Method == "POST" {
				email = ctx.FormValue("email")
			}
			id := ctx.RealIP()
			if email != "" {
				id += ":" + email
			}
			return id, nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Too many requests. Please try again later.",
			})
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Too many requests. Please try again later.",
			})
		},
	}

	userController := controllers.NewUserController(logics.UserSvc)
	greenhouseController := controllers.NewGreenhouseController(logics.GreenhouseSvc)
	inventoryController := controllers.NewInventoryController(logics.InventorySvc)
	inventoryLogController := controllers.NewInventoryLogController(logics.InventoryLogSvc)
	scheduleController := controllers.NewScheduleController(logics.ScheduleSvc)
	assignmentController := controllers.NewAssignmentController(logics.AssignmentSvc, logics.UserSvc)

	// Authentication endpoints
	authGroup := e.Group("/auth")
	authGroup.Use(middlewares.SessionMiddleware)
	{
		authGroup.GET("/me", controllers.MeHandler)
		authGroup.POST("/register", controllers.RegisterHandler, middleware.RateLimiterWithConfig(loginLimiter))
		authGroup.POST("/login", controllers.LoginHandler, middleware.RateLimiterWithConfig(loginLimiter))
		authGroup.POST("/logout", controllers.LogoutHandler)
	}

	// Resource endpoints. Updates and deletes are registered both on the
	// collection path, with the id carried in the body, and on the /:id
	// path for callers that address the resource directly.
	apiGroup := e.Group("/api")
	{
		// Users. The listing and detail reads are session-gated.
		userGroup := apiGroup.Group("/users")
		userGroup.GET("", userController.ListUsers, middlewares.SessionMiddleware)
		userGroup.GET("/:id", userController.GetUser, middlewares.SessionMiddleware)
		userGroup.POST("", userController.CreateUser, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		userGroup.PUT("", userController.UpdateUser, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		userGroup.PUT("/:id", userController.UpdateUser, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		userGroup.DELETE("", userController.DeleteUser, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		userGroup.DELETE("/:id", userController.DeleteUser, middlewares.JWTMiddleware, middlewares.AdminMiddleware)

		// Greenhouses
		greenhouseGroup := apiGroup.Group("/greenhouses")
		greenhouseGroup.GET("", greenhouseController.ListGreenhouses)
		greenhouseGroup.GET("/:id", greenhouseController.GetGreenhouse)
		greenhouseGroup.POST("", greenhouseController.CreateGreenhouse, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		greenhouseGroup.PUT("", greenhouseController.UpdateGreenhouse, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		greenhouseGroup.PUT("/:id", greenhouseController.UpdateGreenhouse, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		greenhouseGroup.DELETE("", greenhouseController.DeleteGreenhouse, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		greenhouseGroup.DELETE("/:id", greenhouseController.DeleteGreenhouse, middlewares.JWTMiddleware, middlewares.AdminMiddleware)

		// Inventory items. low-stock must be registered before /:id.
		inventoryGroup := apiGroup.Group("/inventory")
		inventoryGroup.GET("", inventoryController.ListItems)
		inventoryGroup.GET("/low-stock", inventoryController.ListLowStockItems)
		inventoryGroup.GET("/:id", inventoryController.GetItem)
		inventoryGroup.POST("", inventoryController.CreateItem, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryGroup.PUT("", inventoryController.UpdateItem, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryGroup.PUT("/:id", inventoryController.UpdateItem, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryGroup.DELETE("", inventoryController.DeleteItem, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryGroup.DELETE("/:id", inventoryController.DeleteItem, middlewares.JWTMiddleware, middlewares.AdminMiddleware)

		// Inventory movement logs
		inventoryLogGroup := apiGroup.Group("/inventory-logs")
		inventoryLogGroup.GET("", inventoryLogController.ListLogs)
		inventoryLogGroup.GET("/:id", inventoryLogController.GetLog)
		inventoryLogGroup.POST("", inventoryLogController.CreateLog, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryLogGroup.PUT("", inventoryLogController.UpdateLog, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryLogGroup.PUT("/:id", inventoryLogController.UpdateLog, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryLogGroup.DELETE("", inventoryLogController.DeleteLog, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		inventoryLogGroup.DELETE("/:id", inventoryLogController.DeleteLog, middlewares.JWTMiddleware, middlewares.AdminMiddleware)

		// Fertilizer schedules. mine must be registered before /:id.
		scheduleGroup := apiGroup.Group("/schedules")
		scheduleGroup.GET("", scheduleController.ListSchedules)
		scheduleGroup.GET("/mine", scheduleController.ListMySchedules, middlewares.JWTMiddleware)
		scheduleGroup.GET("/:id", scheduleController.GetSchedule)
		scheduleGroup.POST("", scheduleController.CreateSchedule, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		scheduleGroup.PUT("", scheduleController.UpdateSchedule, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		scheduleGroup.PUT("/:id", scheduleController.UpdateSchedule, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		scheduleGroup.DELETE("", scheduleController.DeleteSchedule, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		scheduleGroup.DELETE("/:id", scheduleController.DeleteSchedule, middlewares.JWTMiddleware, middlewares.AdminMiddleware)

		// Assignments. The update is open to the assignee for the
		// status/completed_at/notes fields; the handler enforces it.
		assignmentGroup := apiGroup.Group("/assignments")
		assignmentGroup.GET("", assignmentController.ListAssignments)
		assignmentGroup.GET("/:id", assignmentController.GetAssignment)
		assignmentGroup.POST("", assignmentController.CreateAssignment, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		assignmentGroup.PUT("", assignmentController.UpdateAssignment, middlewares.JWTMiddleware)
		assignmentGroup.PUT("/:id", assignmentController.UpdateAssignment, middlewares.JWTMiddleware)
		assignmentGroup.DELETE("", assignmentController.DeleteAssignment, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
		assignmentGroup.DELETE("/:id", assignmentController.DeleteAssignment, middlewares.JWTMiddleware, middlewares.AdminMiddleware)
	}

	// Identity-provider webhooks. Authenticated by shared secret header,
	// not by session or token.
	webhookGroup := e.Group("/webhooks")
	{
		webhookGroup.POST("/user-created", controllers.UserCreatedHandler)
	}
}
