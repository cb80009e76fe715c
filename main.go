package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sitestock-backend/config"
	"sitestock-backend/controllers"
	"sitestock-backend/models"
	"sitestock-backend/routes"
	"sitestock-backend/services"
	"sitestock-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

// run поднимает сервер и блокируется до остановки.
// Ошибка Listen (например, занятый порт) возвращается вызывающему.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализация базы данных
	db, err := models.InitDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := models.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Миграции
	if err := models.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database connected and tables ready")

	// Базовый справочник материалов
	if err := models.SeedDefaultMaterials(db); err != nil {
		return fmt.Errorf("failed to seed materials: %w", err)
	}

	utils.SetJWTSecret(cfg.JWTSecret)

	// Инициализация WebSocket хаба
	hub := services.NewHub(cfg.AuthEnabled)
	go hub.Run()
	defer hub.Stop()

	app := setupApp(db, cfg, hub)

	// Корректное завершение по SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	defer close(quit)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	go func() {
		if _, ok := <-quit; !ok {
			return
		}
		log.Println("Shutting down...")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Backend running on port %s", cfg.Port)
	// После Shutdown Listen возвращает nil
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", cfg.Port, err)
	}
	return nil
}

// setupApp собирает Fiber приложение со всеми маршрутами
func setupApp(db *gorm.DB, cfg *config.Config, hub *services.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	opts := services.Options{
		BurnRateWindowDays: cfg.BurnRateWindowDays,
		DeadStockDays:      cfg.DeadStockDays,
	}

	// Инициализация сервисов и контроллеров
	store := services.NewGormStore(db)

	var events services.EventPublisher
	if hub != nil {
		events = hub
	}
	inventoryService := services.NewInventoryService(store, opts, events)
	requestService := services.NewRequestService(store, opts)

	siteController := controllers.NewSiteController(store)
	inventoryController := controllers.NewInventoryController(inventoryService)
	requestController := controllers.NewRequestController(requestService)
	authController := controllers.NewAuthController(cfg.OperatorKeyHash)

	protect := utils.OptionalAuth(cfg.AuthEnabled)

	// Health check
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Inventory backend is running")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	if cfg.MetricsEnabled {
		app.Get("/metrics", utils.MetricsHandler())
	}

	// Настройка маршрутов
	routes.SetupAuthRoutes(app, authController)
	routes.SetupSiteRoutes(app, siteController, protect)
	routes.SetupInventoryRoutes(app, inventoryController, protect)
	routes.SetupRequestRoutes(app, requestController)
	if hub != nil {
		routes.SetupWebSocketRoutes(app, hub)
	}

	return app
}
