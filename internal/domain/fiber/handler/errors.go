package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/resumeready/backend/internal/repository"
	"github.com/resumeready/backend/internal/usecase"
)

// statusFromError maps the error taxonomy to HTTP statuses at the handler
// boundary. Parse failures from the model output stay 500: they are upstream
// faults, not client mistakes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, usecase.ErrNoResume):
		return fiber.StatusNotFound
	case errors.Is(err, repository.ErrAlreadyExists):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrInvalidStatus):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
