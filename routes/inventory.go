package routes

import (
	"sitestock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupInventoryRoutes настраивает маршруты складских позиций
func SetupInventoryRoutes(app *fiber.App, inventoryController *controllers.InventoryController, protect fiber.Handler) {
	inventory := app.Group("/inventory")

	// GET /inventory - позиции с расходом, запасом в днях и мертвыми остатками
	inventory.Get("/", inventoryController.GetInventory)

	// GET /inventory/export - тот же отчет в XLSX
	inventory.Get("/export", inventoryController.ExportInventory)

	// POST /inventory - добавить позицию
	inventory.Post("/", protect, inventoryController.CreateInventory)

	// POST /inventory/check-in - зафиксировать расход
	inventory.Post("/check-in", protect, inventoryController.CheckIn)

	// GET /inventory/:id/runway-history - траектория запаса
	inventory.Get("/:id/runway-history", inventoryController.GetRunwayHistory)

	// GET /inventory/:id/usage-history - журнал списаний
	inventory.Get("/:id/usage-history", inventoryController.GetUsageHistory)

	// DELETE /inventory/:id - удалить позицию вместе с журналом
	inventory.Delete("/:id", protect, inventoryController.DeleteInventory)
}
