package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/services"
)

type profileApplicationService interface {
	Create(ctx context.Context, userID, email string, input services.CreateProfileInput) (*models.Profile, error)
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Stats(ctx context.Context, userID string) (*models.WorkoutStats, error)
}

type ProfileHandler struct {
	service profileApplicationService
}

func NewProfileHandler(service profileApplicationService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

type createProfileRequest struct {
	ID          string   `json:"id"`
	FitnessGoal *string  `json:"fitness_goal"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Age         *int     `json:"age"`
}

func (h *ProfileHandler) CreateProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	var req createProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}
	// The row id is the auth user id; a body id may only repeat it.
	if req.ID != "" && req.ID != userID {
		return errorJSON(c, fiber.StatusForbidden, "Forbidden")
	}

	profile, err := h.service.Create(c.Context(), userID, currentEmail(c), services.CreateProfileInput{
		FitnessGoal: req.FitnessGoal,
		Weight:      req.Weight,
		Height:      req.Height,
		Age:         req.Age,
	})
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	profile, err := h.service.Get(c.Context(), userID)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

func (h *ProfileHandler) Stats(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	}

	stats, err := h.service.Stats(c.Context(), userID)
	if err != nil {
		return mapProfileError(c, err)
	}
	return c.JSON(fiber.Map{"stats": stats})
}

func mapProfileError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Not authenticated")
	case errors.Is(err, services.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "Profile already exists")
	case errors.Is(err, services.ErrProfileNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Profile not found")
	default:
		logs.LogJSON("ERROR", "profile request failed", map[string]any{
			"error": err.Error(),
			"route": c.Path(),
		})
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to process profile request")
	}
}
