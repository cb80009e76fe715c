package routes

import (
	"sitestock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupRequestRoutes настраивает маршруты запросов материала
func SetupRequestRoutes(app *fiber.App, requestController *controllers.RequestController) {
	request := app.Group("/request")
	request.Post("/", requestController.RequestMaterial)       // POST /request - переброска или закупка
	request.Post("/analyze", requestController.AnalyzeRequest) // POST /request/analyze - оценка риска
}
