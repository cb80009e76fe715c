package routes

import (
	"sitestock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes настраивает выдачу токенов операторам
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/auth")
	auth.Post("/token", authController.IssueToken) // POST /auth/token - JWT оператора
}
