package navigation

import (
	"context"
	"sync"

	"github.com/ogc16/FitnessApp/internal/client"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

type SessionSource interface {
	GetSession(ctx context.Context) (*models.Session, error)
	OnSessionChange(handler func(client.SessionEvent)) (unsubscribe func())
}

// Guard keeps the current route consistent with the session: signed-out
// users are sent to login and signed-in users are kept out of the auth area.
type Guard struct {
	source SessionSource
	router Router

	mu          sync.Mutex
	state       State
	unsubscribe func()
}

func NewGuard(source SessionSource, router Router) *Guard {
	return &Guard{source: source, router: router}
}

// Start performs the initial session lookup and subscribes to changes.
// A failed lookup counts as no session.
func (g *Guard) Start(ctx context.Context) State {
	session, err := g.source.GetSession(ctx)
	if err != nil {
		logs.LogJSON("WARN", "session lookup failed", map[string]any{"error": err.Error()})
		session = nil
	}

	unsubscribe := g.source.OnSessionChange(g.Handle)

	g.mu.Lock()
	previous := g.unsubscribe
	g.unsubscribe = unsubscribe
	if session != nil {
		g.state = Authenticated
	} else {
		g.state = Unauthenticated
	}
	g.mu.Unlock()

	if previous != nil {
		previous()
	}

	g.Enforce()
	return g.State()
}

func (g *Guard) Handle(event client.SessionEvent) {
	g.mu.Lock()
	switch event.Type {
	case client.EventSignedIn:
		g.state = Authenticated
	case client.EventSignedOut:
		g.state = Unauthenticated
	default:
		g.mu.Unlock()
		return
	}
	g.mu.Unlock()

	g.Enforce()
}

// Enforce applies the redirect rules to the current route.
func (g *Guard) Enforce() {
	state := g.State()
	inAuth := g.router.Current().InAuthArea()

	switch {
	case state == Unauthenticated && !inAuth:
		g.router.Replace(RouteLogin)
	case state == Authenticated && inAuth:
		g.router.Replace(RouteTabs)
	}
}

func (g *Guard) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Close releases the session subscription.
func (g *Guard) Close() {
	g.mu.Lock()
	unsubscribe := g.unsubscribe
	g.unsubscribe = nil
	g.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
