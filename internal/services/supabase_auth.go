package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ogc16/FitnessApp/internal/models"
)

// SupabaseAuthProvider talks to the GoTrue endpoints of a Supabase project.
type SupabaseAuthProvider struct {
	client *resty.Client
}

func NewSupabaseAuthProvider(baseURL, anonKey string) *SupabaseAuthProvider {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/auth/v1").
		SetHeader("apikey", anonKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)
	return &SupabaseAuthProvider{client: client}
}

type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type goTrueSession struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	ExpiresAt   int64      `json:"expires_at"`
	User        goTrueUser `json:"user"`
}

// GoTrue has used all three keys for its error text across versions.
type goTrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
}

func (e goTrueError) text() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	default:
		return e.Message
	}
}

func authErrorFrom(resp *resty.Response, apiErr *goTrueError) error {
	message := apiErr.text()
	if message == "" {
		message = strings.TrimSpace(resp.String())
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return &AuthError{Status: resp.StatusCode(), Message: message}
}

func (p *SupabaseAuthProvider) SignUp(ctx context.Context, email, password string) (*models.AuthUser, error) {
	// With email confirmation on, GoTrue returns the user at the top level;
	// otherwise it returns a session wrapping it.
	var result struct {
		goTrueUser
		User *goTrueUser `json:"user"`
	}
	var apiErr goTrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/signup")
	if err != nil {
		return nil, fmt.Errorf("supabase signup: %w", err)
	}
	if resp.IsError() {
		return nil, authErrorFrom(resp, &apiErr)
	}

	user := result.goTrueUser
	if result.User != nil && result.User.ID != "" {
		user = *result.User
	}
	if user.ID == "" {
		return nil, fmt.Errorf("supabase signup: no user id in response")
	}
	return &models.AuthUser{ID: user.ID, Email: user.Email}, nil
}

func (p *SupabaseAuthProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var result goTrueSession
	var apiErr goTrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParam("grant_type", "password").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/token")
	if err != nil {
		return nil, fmt.Errorf("supabase sign in: %w", err)
	}
	if resp.IsError() {
		return nil, authErrorFrom(resp, &apiErr)
	}

	expiresAt := time.Now().Add(time.Duration(result.ExpiresIn) * time.Second)
	if result.ExpiresAt > 0 {
		expiresAt = time.Unix(result.ExpiresAt, 0)
	}
	return &models.Session{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresAt:   expiresAt.UTC(),
		User:        models.AuthUser{ID: result.User.ID, Email: result.User.Email},
	}, nil
}

func (p *SupabaseAuthProvider) GetUser(ctx context.Context, accessToken string) (*models.AuthUser, error) {
	var result goTrueUser
	var apiErr goTrueError
	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&result).
		SetError(&apiErr).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("supabase get user: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return nil, ErrUnauthorized
	}
	if resp.IsError() {
		return nil, authErrorFrom(resp, &apiErr)
	}
	return &models.AuthUser{ID: result.ID, Email: result.Email}, nil
}
