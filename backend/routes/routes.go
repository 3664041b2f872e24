package routes

import (
	"github.com/rodrigoanasco/nwHacks/backend/config"
	"github.com/rodrigoanasco/nwHacks/backend/controllers"
	"github.com/rodrigoanasco/nwHacks/backend/middleware"
	"github.com/rodrigoanasco/nwHacks/backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewApp создает Fiber приложение с общими middleware.
func NewApp(cfg *config.Config, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "practice-progress",
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	return app
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	catalog := services.NewCatalog(db)
	store := services.NewProgressStore(db, catalog, logger.Named("progress"))
	reconciler := services.NewReconciler(db, catalog, logger.Named("reconciler"))
	dashboard := services.NewDashboard(catalog, store)
	gateway := services.NewGateway(catalog, services.NewWorkerClient(cfg.ConverterURL), logger.Named("dispatch"))

	healthController := controllers.NewHealthController(db, logger)
	app.Get("/api/health", healthController.Health)

	api := app.Group("/api", middleware.Identity(cfg))

	// Identity routes
	identityController := controllers.NewIdentityController()
	api.Get("/me", identityController.Me)

	// Question routes
	questionsController := controllers.NewQuestionsController(catalog, gateway, logger)
	api.Get("/question/all", questionsController.ListQuestions)
	api.Get("/question/:name", questionsController.GetQuestion)
	api.Post("/question", questionsController.LoadQuestion)

	// Progress routes
	progressController := controllers.NewProgressController(store, reconciler, dashboard, logger)
	api.Get("/progress", progressController.GetProgress)
	api.Get("/dashboard", progressController.GetDashboard)
	api.Post("/submit", progressController.Submit)
}
