package controllers

import (
	"errors"
	"log"

	"sitestock-backend/services"

	"github.com/gofiber/fiber/v2"
)

// respondError переводит ошибку сервиса в HTTP ответ
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	var notFoundErr *services.NotFoundError
	var constraintErr *services.ConstraintViolation

	status := fiber.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.As(err, &validationErr):
		status, message = fiber.StatusBadRequest, validationErr.Error()
	case errors.As(err, &notFoundErr):
		status, message = fiber.StatusNotFound, notFoundErr.Error()
	case errors.As(err, &constraintErr):
		status, message = fiber.StatusBadRequest, constraintErr.Error()
	default:
		log.Printf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
