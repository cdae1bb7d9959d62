package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func testSession(token string) *models.Session {
	return &models.Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   time.Now().Add(time.Hour),
		User:        models.AuthUser{ID: "user-1", Email: "ana@example.com"},
	}
}

func TestAuthenticateStoresSessionAndNotifies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		writeJSON(w, http.StatusOK, testSession("token-1"))
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	c := New(server.URL, store)

	var events []SessionEvent
	unsubscribe := c.OnSessionChange(func(event SessionEvent) {
		events = append(events, event)
	})
	defer unsubscribe()

	session, err := c.Authenticate(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "token-1", session.AccessToken)

	stored, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "token-1", stored.AccessToken)

	require.Len(t, events, 1)
	assert.Equal(t, EventSignedIn, events[0].Type)
	assert.Equal(t, "user-1", events[0].Session.User.ID)
}

func TestAuthenticateReturnsServerMessageVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid login credentials"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Authenticate(context.Background(), "ana@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestRegisterSignsUpThenSignsIn(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/api/auth/signup":
			writeJSON(w, http.StatusCreated, map[string]any{"user": models.AuthUser{ID: "user-1", Email: "ana@example.com"}})
		case "/api/auth/login":
			writeJSON(w, http.StatusOK, testSession("token-1"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil)
	user, err := c.Register(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, []string{"/api/auth/signup", "/api/auth/login"}, paths)

	current, err := c.GetUser()
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", current.Email)
}

func TestRegisterSurfacesDuplicateEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "User already registered"})
	}))
	defer server.Close()

	c := New(server.URL, nil)
	_, err := c.Register(context.Background(), "ana@example.com", "secret123")
	require.Error(t, err)
	assert.Equal(t, "User already registered", err.Error())
}

func TestGetSessionWithoutStoredSession(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	session, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestGetSessionValidatesStoredToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/session", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer token-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": models.AuthUser{ID: "user-1", Email: "ana@example.com"}})
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("token-1")))

	c := New(server.URL, store)
	session, err := c.GetSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "user-1", session.User.ID)
}

func TestGetSessionClearsRejectedToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("stale")))

	c := New(server.URL, store)
	session, err := c.GetSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, session)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestSignOutClearsSessionAndNotifies(t *testing.T) {
	var logoutCalled bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/logout" {
			logoutCalled = true
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Signed out"})
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("token-1")))
	c := New(server.URL, store)

	var events []SessionEvent
	c.OnSessionChange(func(event SessionEvent) {
		events = append(events, event)
	})

	require.NoError(t, c.SignOut(context.Background()))
	assert.True(t, logoutCalled)
	require.Len(t, events, 1)
	assert.Equal(t, EventSignedOut, events[0].Type)

	_, err := c.GetUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, testSession("token-1"))
	}))
	defer server.Close()

	c := New(server.URL, nil)
	calls := 0
	unsubscribe := c.OnSessionChange(func(SessionEvent) { calls++ })
	unsubscribe()
	unsubscribe()

	_, err := c.Authenticate(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
	assert.Zero(t, calls)
}

func TestFeedRequiresSession(t *testing.T) {
	c := New("http://127.0.0.1:1", nil)
	_, err := c.Feed(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestFeedDecodesPostsWithAuthors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/feed", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"posts":[{"id":"p1","user_id":"user-1","content":"Morning run","image_url":null,"activity_type":"Running","duration":"00:30:00","distance":5,"created_at":"2026-01-02T08:00:00Z","profiles":{"id":"user-1","email":"ana@example.com","fitness_goal":"Endurance"}}]}`))
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("token-1")))
	c := New(server.URL, store)

	posts, err := c.Feed(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Running", posts[0].ActivityType)
	assert.Equal(t, "ana@example.com", posts[0].Profiles.Email)
	require.NotNil(t, posts[0].Distance)
	assert.Equal(t, 5.0, *posts[0].Distance)
}

func TestUnauthorizedCallDropsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("stale")))
	c := New(server.URL, store)

	var events []SessionEvent
	c.OnSessionChange(func(event SessionEvent) {
		events = append(events, event)
	})

	_, err := c.Stats(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired token", err.Error())
	require.Len(t, events, 1)
	assert.Equal(t, EventSignedOut, events[0].Type)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestInsertPostSendsEncodedDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/posts", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "00:45:00", body["duration"])
		assert.Equal(t, "Cycling", body["activity_type"])
		assert.Nil(t, body["distance"])
		writeJSON(w, http.StatusCreated, map[string]any{"post": models.Post{ID: "p1", ActivityType: "Cycling", Duration: "00:45:00"}})
	}))
	defer server.Close()

	store := &MemorySessionStore{}
	require.NoError(t, store.Save(testSession("token-1")))
	c := New(server.URL, store)

	post, err := c.InsertPost(context.Background(), NewPost{
		UserID:       "user-1",
		ActivityType: "Cycling",
		Duration:     "00:45:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", post.ID)
}

func TestFileSessionStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileSessionStore(path)

	missing, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, store.Save(testSession("token-1")))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "token-1", loaded.AccessToken)

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	cleared, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, cleared)
}
