package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/observability"
	"github.com/ogc16/FitnessApp/pkg/utils"
)

const minPasswordLength = 6

// AuthProvider is the identity backend: Supabase GoTrue or the local
// accounts table.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*models.AuthUser, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error)
}

type accountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

type LocalAuthProvider struct {
	accounts  accountStore
	jwtSecret string
}

func NewLocalAuthProvider(accounts accountStore, jwtSecret string) *LocalAuthProvider {
	return &LocalAuthProvider{accounts: accounts, jwtSecret: jwtSecret}
}

func (p *LocalAuthProvider) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := p.accounts.Create(ctx, account); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &models.AuthUser{ID: account.ID, Email: account.Email}, nil
}

func (p *LocalAuthProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	account, err := p.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if !utils.CheckPassword(password, account.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(account.ID, account.Email, p.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &models.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        models.AuthUser{ID: account.ID, Email: account.Email},
	}, nil
}

func (p *LocalAuthProvider) GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	claims, err := utils.ValidateToken(accessToken, p.jwtSecret)
	if err != nil {
		return nil, ErrUnauthorized
	}

	account, err := p.accounts.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return &models.AuthUser{ID: account.ID, Email: account.Email}, nil
}

type profileCreator interface {
	Create(ctx context.Context, userID, email string, input CreateProfileInput) (*models.Profile, error)
}

type AuthService struct {
	provider AuthProvider
	profiles profileCreator
}

func NewAuthService(provider AuthProvider, profiles profileCreator) *AuthService {
	return &AuthService{provider: provider, profiles: profiles}
}

func normalizeCredentials(email, password string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return strings.ToLower(parsed.Address), nil
}

func (s *AuthService) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}
	user, err := s.provider.SignUp(ctx, email, password)
	observability.RecordAuth("signup", err)
	return user, err
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || password == "" {
		observability.RecordAuth("login", ErrInvalidCredentials)
		return nil, ErrInvalidCredentials
	}
	session, err := s.provider.SignIn(ctx, strings.ToLower(parsed.Address), password)
	observability.RecordAuth("login", err)
	return session, err
}

type RegisterInput struct {
	Email    string
	Password string
	Profile  CreateProfileInput
}

// Register signs the user up, creates their profile row and signs them in,
// which is the whole registration screen in one call.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.Session, *models.Profile, error) {
	if err := input.Profile.Validate(); err != nil {
		return nil, nil, err
	}

	user, err := s.SignUp(ctx, input.Email, input.Password)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.profiles.Create(ctx, user.ID, user.Email, input.Profile)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.SignIn(ctx, user.Email, input.Password)
	if err != nil {
		return nil, nil, err
	}
	return session, profile, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	if strings.TrimSpace(accessToken) == "" {
		return nil, ErrUnauthorized
	}
	return s.provider.GetUser(ctx, accessToken)
}
