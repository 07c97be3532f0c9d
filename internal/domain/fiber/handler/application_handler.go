package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/resumeready/backend/internal/dto"
	"github.com/resumeready/backend/internal/usecase"
	"github.com/resumeready/backend/internal/util"
)

type ApplicationHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewApplicationHandler(uc *usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/generateQuestions", h.GenerateQuestions)
	app.Post("/api/applications/updateStatus", h.UpdateStatus)
	app.Post("/api/applications/delete", h.Delete)
}

func (h *ApplicationHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || req.JobID == "" || strings.TrimSpace(req.JobDescription) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "User ID, Job ID, and job description are required",
		})
	}

	questions, err := h.uc.GenerateQuestions(c.Context(), req.UserID, req.JobID, req.JobDescription, req.QuestionType, req.NumQuestions)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "Failed to generate questions",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Questions appended successfully",
		Data:    fiber.Map{"newQuestions": questions},
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || req.ApplicationID == "" || req.NewStatus == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "User ID, Application ID, and new status are required",
		})
	}

	if err := h.uc.UpdateStatus(c.Context(), req.UserID, req.ApplicationID, req.NewStatus); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "Application not found or status already set",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application status updated successfully",
	})
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	var req dto.DeleteApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || req.ApplicationID == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "User ID and Application ID are required",
		})
	}

	if err := h.uc.DeleteApplication(c.Context(), req.UserID, req.ApplicationID); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "Application not found or already deleted",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application deleted successfully",
	})
}
