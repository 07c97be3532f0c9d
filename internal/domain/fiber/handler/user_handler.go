package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/resumeready/backend/internal/dto"
	"github.com/resumeready/backend/internal/usecase"
	"github.com/resumeready/backend/internal/util"
)

type UserHandler struct {
	uc *usecase.ApplicationUsecase
}

func NewUserHandler(uc *usecase.ApplicationUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/users/signup", h.Signup)
	app.Get("/api/users/:userId", h.GetUser)
	app.Put("/api/users/:userId/resume", h.SaveResume)
	app.Get("/api/users/:userId/applications", h.ListApplications)
	app.Get("/api/plus/success", h.PlusSuccess)
}

func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || req.FirstName == "" || req.LastName == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "All fields are required",
		})
	}

	if err := h.uc.Signup(c.Context(), req.UserID, req.Email, req.FirstName, req.LastName); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "failed to create user",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "User created successfully",
	})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	user, err := h.uc.GetUser(c.Context(), userID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "User not found",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get user",
		Data:    user,
	})
}

func (h *UserHandler) SaveResume(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req dto.SaveResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if strings.TrimSpace(req.Resume) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Resume text is required",
		})
	}

	if err := h.uc.SaveResume(c.Context(), userID, req.Resume); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "failed to save resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume saved successfully",
	})
}

func (h *UserHandler) ListApplications(c *fiber.Ctx) error {
	userID := c.Params("userId")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	apps, pagination, err := h.uc.ListApplications(c.Context(), userID, page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "failed to list applications",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get applications",
		Data:       apps,
		Pagination: pagination,
	})
}

// PlusSuccess is the payment-processor success callback. The checkout flow
// itself lives with the processor; this only flips the membership tier and
// sends the user back to the dashboard, errors included (original behavior).
func (h *UserHandler) PlusSuccess(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	userID := c.Query("userId")

	if sessionID == "" || userID == "" {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	if err := h.uc.ActivatePlus(c.Context(), userID); err != nil {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}

	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
