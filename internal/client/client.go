package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/ogc16/FitnessApp/internal/models"
)

var ErrNotAuthenticated = errors.New("Not authenticated")

type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

type SessionEvent struct {
	Type    EventType
	Session *models.Session
}

// APIError is a non-2xx answer from the backend. Error returns the
// server's message unchanged so screens can show it as is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

type apiErrorBody struct {
	Error string `json:"error"`
}

// Client is the backend client used by every screen. It owns the session
// and tells subscribers when it appears or goes away.
type Client struct {
	http  *resty.Client
	store SessionStore

	mu        sync.Mutex
	session   *models.Session
	loaded    bool
	listeners map[int]func(SessionEvent)
	nextID    int
}

func New(baseURL string, store SessionStore) *Client {
	if store == nil {
		store = &MemorySessionStore{}
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{
		http:      httpClient,
		store:     store,
		listeners: make(map[int]func(SessionEvent)),
	}
}

// OnSessionChange registers handler for sign-in and sign-out events.
// Handlers run synchronously on the goroutine that changed the session.
func (c *Client) OnSessionChange(handler func(SessionEvent)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = handler
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Client) emit(event SessionEvent) {
	c.mu.Lock()
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]func(SessionEvent), 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, c.listeners[id])
	}
	c.mu.Unlock()

	for _, handler := range handlers {
		handler(event)
	}
}

func (c *Client) setSession(session *models.Session) error {
	c.mu.Lock()
	c.session = session
	c.loaded = true
	c.mu.Unlock()

	if session == nil {
		return c.store.Clear()
	}
	return c.store.Save(session)
}

func (c *Client) currentSession() (*models.Session, error) {
	c.mu.Lock()
	if c.loaded {
		session := c.session
		c.mu.Unlock()
		return session, nil
	}
	c.mu.Unlock()

	session, err := c.store.Load()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		c.session = session
		c.loaded = true
	}
	return c.session, nil
}

// dropSession forgets an expired or rejected session and announces the
// sign-out.
func (c *Client) dropSession() {
	c.mu.Lock()
	hadSession := c.session != nil
	c.mu.Unlock()

	_ = c.setSession(nil)
	if hadSession {
		c.emit(SessionEvent{Type: EventSignedOut})
	}
}

func responseError(resp *resty.Response) error {
	if body, ok := resp.Error().(*apiErrorBody); ok && body.Error != "" {
		return &APIError{Status: resp.StatusCode(), Message: body.Error}
	}
	message := strings.TrimSpace(resp.String())
	if message == "" {
		message = http.StatusText(resp.StatusCode())
	}
	return &APIError{Status: resp.StatusCode(), Message: message}
}

func (c *Client) Authenticate(ctx context.Context, email, password string) (*models.Session, error) {
	var session models.Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&session).
		SetError(&apiErrorBody{}).
		Post("/api/auth/login")
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	if resp.IsError() {
		return nil, responseError(resp)
	}

	if err := c.setSession(&session); err != nil {
		return nil, err
	}
	c.emit(SessionEvent{Type: EventSignedIn, Session: &session})
	return &session, nil
}

// Register creates the account and signs in with it, so the follow-up
// profile insert is authenticated.
func (c *Client) Register(ctx context.Context, email, password string) (*models.AuthUser, error) {
	var result struct {
		User models.AuthUser `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&result).
		SetError(&apiErrorBody{}).
		Post("/api/auth/signup")
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	if resp.IsError() {
		return nil, responseError(resp)
	}

	if _, err := c.Authenticate(ctx, email, password); err != nil {
		return nil, err
	}
	return &result.User, nil
}

// GetSession returns the stored session after checking it with the backend,
// or nil when there is none or it was rejected.
func (c *Client) GetSession(ctx context.Context) (*models.Session, error) {
	session, err := c.currentSession()
	if err != nil || session == nil {
		return nil, err
	}
	if !session.ExpiresAt.IsZero() && time.Now().After(session.ExpiresAt) {
		_ = c.setSession(nil)
		return nil, nil
	}

	var result struct {
		User models.AuthUser `json:"user"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.AccessToken).
		SetResult(&result).
		SetError(&apiErrorBody{}).
		Get("/api/auth/session")
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		_ = c.setSession(nil)
		return nil, nil
	}
	if resp.IsError() {
		return nil, responseError(resp)
	}

	session.User = result.User
	return session, nil
}

// GetUser returns the signed-in user without a network round trip.
func (c *Client) GetUser() (*models.AuthUser, error) {
	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}
	user := session.User
	return &user, nil
}

func (c *Client) SignOut(ctx context.Context) error {
	session, err := c.currentSession()
	if err != nil {
		return err
	}
	if session != nil {
		// Best effort: the server keeps no state for the token.
		_, _ = c.http.R().
			SetContext(ctx).
			SetAuthToken(session.AccessToken).
			Post("/api/auth/logout")
	}
	if err := c.setSession(nil); err != nil {
		return err
	}
	c.emit(SessionEvent{Type: EventSignedOut})
	return nil
}

func (c *Client) authorized(ctx context.Context) (*resty.Request, error) {
	session, err := c.currentSession()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNotAuthenticated
	}
	return c.http.R().
		SetContext(ctx).
		SetAuthToken(session.AccessToken).
		SetError(&apiErrorBody{}), nil
}

func (c *Client) check(resp *resty.Response, err error, op string) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		c.dropSession()
	}
	if resp.IsError() {
		return responseError(resp)
	}
	return nil
}

// Feed returns every post joined with its author, newest first.
func (c *Client) Feed(ctx context.Context) ([]models.FeedPost, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Posts []models.FeedPost `json:"posts"`
	}
	resp, err := req.SetResult(&result).Get("/api/v1/feed")
	if err := c.check(resp, err, "query feed"); err != nil {
		return nil, err
	}
	return result.Posts, nil
}

type NewPost struct {
	UserID       string   `json:"user_id"`
	Content      string   `json:"content"`
	ImageURL     *string  `json:"image_url,omitempty"`
	ActivityType string   `json:"activity_type"`
	Duration     string   `json:"duration"`
	Distance     *float64 `json:"distance"`
}

func (c *Client) InsertPost(ctx context.Context, post NewPost) (*models.Post, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Post models.Post `json:"post"`
	}
	resp, err := req.SetBody(post).SetResult(&result).Post("/api/v1/posts")
	if err := c.check(resp, err, "insert post"); err != nil {
		return nil, err
	}
	return &result.Post, nil
}

// UploadImage sends a local file to post image storage and returns its URL.
func (c *Client) UploadImage(ctx context.Context, path string) (string, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return "", err
	}
	var result struct {
		ImageURL string `json:"image_url"`
	}
	resp, err := req.SetFile("image", path).SetResult(&result).Post("/api/v1/posts/image")
	if err := c.check(resp, err, "upload image"); err != nil {
		return "", err
	}
	return result.ImageURL, nil
}

type NewProfile struct {
	ID          string   `json:"id"`
	Weight      *float64 `json:"weight"`
	Height      *float64 `json:"height"`
	Age         *int     `json:"age"`
	FitnessGoal *string  `json:"fitness_goal"`
}

func (c *Client) InsertProfile(ctx context.Context, profile NewProfile) (*models.Profile, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Profile models.Profile `json:"profile"`
	}
	resp, err := req.SetBody(profile).SetResult(&result).Post("/api/v1/profiles")
	if err := c.check(resp, err, "insert profile"); err != nil {
		return nil, err
	}
	return &result.Profile, nil
}

func (c *Client) Profile(ctx context.Context) (*models.Profile, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Profile models.Profile `json:"profile"`
	}
	resp, err := req.SetResult(&result).Get("/api/v1/profile")
	if err := c.check(resp, err, "get profile"); err != nil {
		return nil, err
	}
	return &result.Profile, nil
}

func (c *Client) Stats(ctx context.Context) (*models.WorkoutStats, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Stats models.WorkoutStats `json:"stats"`
	}
	resp, err := req.SetResult(&result).Get("/api/v1/profile/stats")
	if err := c.check(resp, err, "get stats"); err != nil {
		return nil, err
	}
	return &result.Stats, nil
}

func (c *Client) RecentWorkouts(ctx context.Context) ([]models.Post, error) {
	req, err := c.authorized(ctx)
	if err != nil {
		return nil, err
	}
	var result struct {
		Workouts []models.Post `json:"workouts"`
	}
	resp, err := req.SetResult(&result).Get("/api/v1/workouts/recent")
	if err := c.check(resp, err, "recent workouts"); err != nil {
		return nil, err
	}
	return result.Workouts, nil
}
