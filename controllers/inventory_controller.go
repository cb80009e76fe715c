package controllers

import (
	"strconv"
	"time"

	"sitestock-backend/services"

	"github.com/gofiber/fiber/v2"
)

// InventoryController обрабатывает HTTP запросы для складских позиций
type InventoryController struct {
	inventory *services.InventoryService
}

// NewInventoryController создает контроллер позиций
func NewInventoryController(inventory *services.InventoryService) *InventoryController {
	return &InventoryController{inventory: inventory}
}

func parseInventoryID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, &services.ValidationError{Message: "Invalid inventory ID"}
	}
	return uint(id), nil
}

// GetInventory возвращает позиции с расчетом запаса в днях
func (ic *InventoryController) GetInventory(c *fiber.Ctx) error {
	report, err := ic.inventory.Report()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// ExportInventory отдает тот же отчет в XLSX
func (ic *InventoryController) ExportInventory(c *fiber.Ctx) error {
	report, err := ic.inventory.Report()
	if err != nil {
		return respondError(c, err)
	}

	data, err := services.ExportReport(report)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Attachment(services.ExportFileName(time.Now()))
	return c.Send(data)
}

// CreateInventory добавляет позицию
func (ic *InventoryController) CreateInventory(c *fiber.Ctx) error {
	var req services.CreatePositionInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	inv, err := ic.inventory.CreatePosition(req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":      inv.ID,
		"message": "Inventory added successfully",
	})
}

// CheckIn фиксирует дневной расход
func (ic *InventoryController) CheckIn(c *fiber.Ctx) error {
	var req services.CheckInInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := ic.inventory.CheckIn(req); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Daily usage recorded successfully",
	})
}

// GetRunwayHistory GET /inventory/:id/runway-history
func (ic *InventoryController) GetRunwayHistory(c *fiber.Ctx) error {
	id, err := parseInventoryID(c)
	if err != nil {
		return respondError(c, err)
	}

	history, err := ic.inventory.RunwayHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// GetUsageHistory GET /inventory/:id/usage-history
func (ic *InventoryController) GetUsageHistory(c *fiber.Ctx) error {
	id, err := parseInventoryID(c)
	if err != nil {
		return respondError(c, err)
	}

	history, err := ic.inventory.UsageHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(history)
}

// DeleteInventory удаляет позицию и ее журнал списаний
func (ic *InventoryController) DeleteInventory(c *fiber.Ctx) error {
	id, err := parseInventoryID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := ic.inventory.Delete(id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Inventory deleted successfully",
	})
}
