package routes

import (
	"sitestock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupSiteRoutes настраивает маршруты площадок и материалов
func SetupSiteRoutes(app *fiber.App, siteController *controllers.SiteController, protect fiber.Handler) {
	sites := app.Group("/sites")
	sites.Get("/", siteController.GetSites)             // GET /sites - список площадок
	sites.Post("/", protect, siteController.CreateSite) // POST /sites - регистрация площадки

	app.Get("/materials", siteController.GetMaterials) // GET /materials - справочник материалов
}
