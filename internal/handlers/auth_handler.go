package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/middleware"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/services"
)

type authApplicationService interface {
	SignUp(ctx context.Context, email, password string) (*models.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	Register(ctx context.Context, input services.RegisterInput) (*models.Session, *models.Profile, error)
	CurrentUser(ctx context.Context, accessToken string) (*models.AuthUser, error)
}

type AuthHandler struct {
	service authApplicationService
}

func NewAuthHandler(service authApplicationService) *AuthHandler {
	return &AuthHandler{service: service}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	FitnessGoal *string  `json:"fitness_goal"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Age         *int     `json:"age"`
}

// Register creates the account and the profile row in one request.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	session, profile, err := h.service.Register(c.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Profile: services.CreateProfileInput{
			FitnessGoal: req.FitnessGoal,
			Weight:      req.Weight,
			Height:      req.Height,
			Age:         req.Age,
		},
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session": session,
		"profile": profile,
	})
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.service.SignUp(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	session, err := h.service.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(session)
}

func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := middleware.BearerToken(c)
	if token == "" {
		return errorJSON(c, fiber.StatusUnauthorized, "Missing authorization header")
	}

	user, err := h.service.CurrentUser(c.Context(), token)
	if err != nil {
		return mapAuthError(c, err)
	}
	return c.JSON(fiber.Map{"user": user})
}

// Logout is an acknowledgement only; tokens are stateless and the client
// drops its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Signed out"})
}

func mapAuthError(c *fiber.Ctx, err error) error {
	var authErr *services.AuthError
	switch {
	case errors.As(err, &authErr):
		status := authErr.Status
		if status < fiber.StatusBadRequest {
			status = fiber.StatusBadGateway
		}
		return errorJSON(c, status, authErr.Message)
	case errors.Is(err, services.ErrInvalidInput):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid login credentials")
	case errors.Is(err, services.ErrEmailTaken):
		return errorJSON(c, fiber.StatusConflict, "User already registered")
	case errors.Is(err, services.ErrConflict):
		return errorJSON(c, fiber.StatusConflict, "Profile already exists")
	case errors.Is(err, services.ErrUnauthorized):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid or expired token")
	default:
		logs.LogJSON("ERROR", "auth request failed", map[string]any{
			"error": err.Error(),
			"route": c.Path(),
		})
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to process authentication request")
	}
}
