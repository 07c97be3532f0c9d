package handler

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/resumeready/backend/internal/config"
	"github.com/resumeready/backend/internal/dto"
	"github.com/resumeready/backend/internal/service"
	"github.com/resumeready/backend/internal/usecase"
	"github.com/resumeready/backend/internal/util"
)

const maxUploadSize = 5 * 1024 * 1024

// ResumeHandler owns the ingestion entry points: raw text, job-posting URL,
// uploaded image, and resume PDF. Every path ends as plain text handed to the
// enrichment workflow.
type ResumeHandler struct {
	uc     *usecase.ApplicationUsecase
	gemini service.GeminiServiceInterface
}

func NewResumeHandler(uc *usecase.ApplicationUsecase, gemini service.GeminiServiceInterface) *ResumeHandler {
	return &ResumeHandler{uc: uc, gemini: gemini}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/api/resume/analyzeText", h.AnalyzeText)
	app.Post("/api/resume/uploadImage", h.UploadImage)
	app.Post("/api/resume/uploadUrl", h.AnalyzeURL)
	app.Post("/api/extract-pdf-text", h.ExtractPDFText)
}

func (h *ResumeHandler) AnalyzeText(c *fiber.Ctx) error {
	var req dto.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || strings.TrimSpace(req.JobDescription) == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "User ID and job description are required",
		})
	}

	app, err := h.uc.AnalyzeJobDescription(c.Context(), req.UserID, req.JobDescription)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "Failed to generate feedback",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Application appended successfully",
		Data:    fiber.Map{"application": app},
	})
}

func (h *ResumeHandler) AnalyzeURL(c *fiber.Ctx) error {
	var req dto.AnalyzeURLRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if req.UserID == "" || req.URL == "" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "URL and User ID are required",
		})
	}

	jobDescription, err := util.ScrapeJobPosting(c.Context(), req.URL)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "failed to read job posting from URL",
		}, err)
	}

	app, err := h.uc.AnalyzeJobDescription(c.Context(), req.UserID, jobDescription)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "Failed to generate feedback",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Text successfully scraped and analyzed",
		Data:    fiber.Map{"application": app},
	})
}

func (h *ResumeHandler) UploadImage(c *fiber.Ctx) error {
	file, userID, err := h.formUpload(c)
	if err != nil {
		return err
	}

	savePath, err := h.saveUpload(c, file, userID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save uploaded file",
		}, err)
	}

	data, err := os.ReadFile(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot read uploaded file",
		}, err)
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}

	extractedText, err := h.gemini.ExtractImageText(c.Context(), data, mimeType)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "Failed to extract text from image",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success extract text from image",
		Data:    fiber.Map{"extractedText": extractedText},
	})
}

func (h *ResumeHandler) ExtractPDFText(c *fiber.Ctx) error {
	file, userID, err := h.formUpload(c)
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "unsupported file type",
		})
	}

	savePath, err := h.saveUpload(c, file, userID)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "cannot save uploaded file",
		}, err)
	}

	organizedText, err := util.ExtractPDFText(savePath)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Message: "failed to extract resume text",
		}, err)
	}

	if err := h.uc.SaveResume(c.Context(), userID, organizedText); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    statusFromError(err),
			Message: "failed to save resume",
		}, err)
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume uploaded successfully",
		Data:    fiber.Map{"organizedText": organizedText},
	})
}

func (h *ResumeHandler) formUpload(c *fiber.Ctx) (*multipart.FileHeader, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file is required",
		}, err)
	}
	userID := c.FormValue("userId")
	if userID == "" {
		return nil, "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "File and User ID are required",
		})
	}
	if file.Size > maxUploadSize {
		return nil, "", util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "file size is too large (max 5MB)",
		})
	}
	return file, userID, nil
}

// saveUpload keeps the uploaded blob on disk under a user-prefixed,
// timestamped key so it stays retrievable through the static route.
func (h *ResumeHandler) saveUpload(c *fiber.Ctx, file *multipart.FileHeader, userID string) (string, error) {
	uploadDir := config.LoadStorageConfig().UploadDir
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%d%s", userID, time.Now().UnixNano(), filepath.Ext(file.Filename))
	savePath := filepath.Join(uploadDir, name)
	if err := c.SaveFile(file, savePath); err != nil {
		return "", err
	}
	return savePath, nil
}
