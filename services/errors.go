package services

import "fmt"

// ValidationError отсутствующие или неверные поля запроса (400)
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError площадка или складская позиция не найдена (404)
type NotFoundError struct {
	Resource string
	Message  string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConstraintViolation списание превышает остаток (400)
type ConstraintViolation struct {
	Message string
}

func (e *ConstraintViolation) Error() string { return e.Message }

// ErrInventoryNotFound стандартная ошибка для отсутствующей позиции
var ErrInventoryNotFound = &NotFoundError{Resource: "inventory", Message: "Inventory not found"}

// ErrExceedsStock списание больше, чем есть на складе
var ErrExceedsStock = &ConstraintViolation{Message: "Used quantity exceeds available stock"}
