package api

import (
	"errors"

	"spendwise/docs"
	"spendwise/internal/api/handlers"
	"spendwise/pkg/config"
	"spendwise/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	Expense  *handlers.ExpenseHandler
	Budget   *handlers.BudgetHandler
	Analysis *handlers.AnalysisHandler
	Report   *handlers.ReportHandler
}

func SetupRouter(
	h Handlers,
	tokens middleware.TokenValidator,
	serverCfg *config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled error",
					zap.String("path", c.Path()),
					zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	allowOrigins := serverCfg.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "*"
	}

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// docs registers itself with swag in init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth routes (public)
	auth := app.Group("/user/auth")
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(tokens, appLogger))
	protected.Get("/me", h.Auth.Me)

	expenses := protected.Group("/expenses")
	expenses.Get("", h.Expense.ListExpenses)
	expenses.Post("", h.Expense.CreateExpense)
	expenses.Get("/:id", h.Expense.GetExpense)
	expenses.Put("/:id", h.Expense.UpdateExpense)
	expenses.Delete("/:id", h.Expense.DeleteExpense)

	budgets := protected.Group("/budgets")
	budgets.Get("", h.Budget.ListBudgets)
	budgets.Post("", h.Budget.CreateBudget)
	budgets.Get("/:id", h.Budget.GetBudget)
	budgets.Put("/:id", h.Budget.UpdateBudget)
	budgets.Delete("/:id", h.Budget.DeleteBudget)

	protected.Get("/analysis", h.Analysis.GetAnalysis)
	protected.Get("/insights", h.Analysis.GetInsights)
	protected.Get("/advice", h.Analysis.GetAdvice)

	reports := protected.Group("/reports")
	reports.Get("", h.Report.ListReports)
	reports.Post("/:month", h.Report.GenerateReport)

	return app
}
