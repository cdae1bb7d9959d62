package handlers

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/services"
)

const maxImageBytes = 5 << 20

type postApplicationService interface {
	Create(ctx context.Context, userID string, input services.CreatePostInput) (*models.Post, error)
	Feed(ctx context.Context, limit int) ([]models.FeedPost, error)
	Recent(ctx context.Context, userID string, limit int) ([]models.Post, error)
}

type PostHandler struct {
	service postApplicationService
	storage services.StorageService
}

// storage may be nil, in which case image uploads answer 503.
func NewPostHandler(service postApplicationService, storage services.StorageService) *PostHandler {
	return &PostHandler{service: service, storage: storage}
}

type createPostRequest struct {
	Content      string   `json:"content" form:"content"`
	ImageURL     *string  `json:"image_url" form:"image_url"`
	ActivityType string   `json:"activity_type" form:"activity_type"`
	Duration     string   `json:"duration" form:"duration"`
	Distance     *float64 `json:"distance" form:"distance"`
}

// CreatePost accepts JSON, or a multipart form carrying the same fields plus
// an optional "image" file that is uploaded before the insert.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var uploadedURL string
	if isMultipart(c) {
		if fileHeader, err := c.FormFile("image"); err == nil {
			url, uploadErr := h.uploadImage(c, userID, fileHeader)
			if uploadErr != nil {
				return errorJSON(c, uploadErr.Code, uploadErr.Message)
			}
			uploadedURL = url
			req.ImageURL = &uploadedURL
		}
	}

	post, err := h.service.Create(c.Context(), userID, services.CreatePostInput{
		Content:      req.Content,
		ImageURL:     req.ImageURL,
		ActivityType: req.ActivityType,
		Duration:     req.Duration,
		Distance:     req.Distance,
	})
	if err != nil {
		if uploadedURL != "" {
			h.discardUpload(c, uploadedURL)
		}
		return mapPostError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"post": post})
}

func (h *PostHandler) UploadImage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "image file is required")
	}

	url, uploadErr := h.uploadImage(c, userID, fileHeader)
	if uploadErr != nil {
		return errorJSON(c, uploadErr.Code, uploadErr.Message)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"image_url": url})
}

func (h *PostHandler) Feed(c *fiber.Ctx) error {
	// No ?limit= means the whole feed; an explicit limit is capped.
	limit := parseLimit(c.Query("limit"), 0, maxFeedLimit)

	posts, err := h.service.Feed(c.Context(), limit)
	if err != nil {
		return mapPostError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts})
}

func (h *PostHandler) RecentWorkouts(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}
	limit := parseLimit(c.Query("limit"), defaultPageLimit, maxPageLimit)

	posts, err := h.service.Recent(c.Context(), userID, limit)
	if err != nil {
		return mapPostError(c, err)
	}
	return c.JSON(fiber.Map{"workouts": posts})
}

func (h *PostHandler) uploadImage(c *fiber.Ctx, userID string, fileHeader *multipart.FileHeader) (string, *fiber.Error) {
	if h.storage == nil {
		return "", fiber.NewError(fiber.StatusServiceUnavailable, "Image storage is not configured")
	}
	if fileHeader.Size > maxImageBytes {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, fmt.Sprintf("image must be at most %d MB", maxImageBytes>>20))
	}
	contentType := fileHeader.Header.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, "image/") {
		return "", fiber.NewError(fiber.StatusBadRequest, "image must be an image file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Failed to read image")
	}
	defer file.Close()

	filename := uuid.NewString() + strings.ToLower(filepath.Ext(fileHeader.Filename))
	url, err := h.storage.UploadFile(c.Context(), file, filename, contentType, "posts/"+userID)
	if err != nil {
		logs.LogJSON("ERROR", "image upload failed", map[string]any{
			"error":   err.Error(),
			"route":   c.Path(),
			"user_id": userID,
		})
		return "", fiber.NewError(fiber.StatusBadGateway, "Failed to upload image")
	}
	return url, nil
}

func (h *PostHandler) discardUpload(c *fiber.Ctx, url string) {
	if err := h.storage.DeleteFile(c.Context(), url); err != nil {
		logs.LogJSON("WARN", "orphaned post image", map[string]any{
			"error":     err.Error(),
			"image_url": url,
		})
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

func mapPostError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidActivityType):
		return errorJSON(c, fiber.StatusBadRequest, "Invalid activity type")
	case errors.Is(err, services.ErrInvalidDuration):
		return errorJSON(c, fiber.StatusBadRequest, "Invalid duration, expected HH:MM:SS")
	case errors.Is(err, services.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Profile not found")
	default:
		logs.LogJSON("ERROR", "post request failed", map[string]any{
			"error": err.Error(),
			"route": c.Path(),
		})
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to process post request")
	}
}
