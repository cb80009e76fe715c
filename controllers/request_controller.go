package controllers

import (
	"sitestock-backend/services"

	"github.com/gofiber/fiber/v2"
)

// RequestController запросы площадок на материал
type RequestController struct {
	requests *services.RequestService
}

// NewRequestController создает контроллер запросов
func NewRequestController(requests *services.RequestService) *RequestController {
	return &RequestController{requests: requests}
}

// RequestMaterial POST /request - проверка мертвых остатков перед закупкой
func (rc *RequestController) RequestMaterial(c *fiber.Ctx) error {
	var req services.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	advice, err := rc.requests.AdviseTransfer(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(advice)
}

// AnalyzeRequest POST /request/analyze - влияние запроса на запас в днях
func (rc *RequestController) AnalyzeRequest(c *fiber.Ctx) error {
	var req services.StockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	assessment, err := rc.requests.AnalyzeRisk(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(assessment)
}
