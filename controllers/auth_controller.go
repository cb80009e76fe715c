package controllers

import (
	"strings"

	"sitestock-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// AuthController выдает токены операторам
type AuthController struct {
	operatorKeyHash string
}

// NewAuthController создает контроллер; operatorKeyHash - bcrypt-хэш общего ключа
func NewAuthController(operatorKeyHash string) *AuthController {
	return &AuthController{operatorKeyHash: operatorKeyHash}
}

// TokenRequest тело POST /auth/token
type TokenRequest struct {
	Operator string `json:"operator"`
	APIKey   string `json:"api_key"`
}

// IssueToken проверяет ключ оператора и выдает JWT
func (ac *AuthController) IssueToken(c *fiber.Ctx) error {
	var req TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	operator := strings.TrimSpace(req.Operator)
	if operator == "" || req.APIKey == "" {
		return badRequest(c, "operator and api_key are required")
	}

	if !utils.CheckOperatorKey(ac.operatorKeyHash, req.APIKey) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid operator key",
		})
	}

	token, err := utils.GenerateJWT(operator)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token":    token,
		"operator": operator,
	})
}
