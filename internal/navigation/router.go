// Package navigation routes the terminal client between the auth screens and
// the tabbed area, following the signed-in state.
package navigation

import (
	"strings"
	"sync"
)

type Route string

const (
	RouteLogin    Route = "/auth/login"
	RouteRegister Route = "/auth/register"
	RouteTabs     Route = "/(tabs)"
	RouteWorkouts Route = "/(tabs)/workouts"
	RouteProfile  Route = "/(tabs)/profile"
	RouteNewPost  Route = "/new-post"
)

const authSegment = "auth"

// Segments splits a route into its path segments.
func (r Route) Segments() []string {
	trimmed := strings.Trim(string(r), "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

// InAuthArea reports whether the first segment is the auth group.
func (r Route) InAuthArea() bool {
	segments := r.Segments()
	return len(segments) > 0 && segments[0] == authSegment
}

type Router interface {
	Current() Route
	Replace(route Route)
}

// Stack is an in-memory history of routes. Replace swaps the top entry, so a
// forced redirect cannot be undone with Back.
type Stack struct {
	mu     sync.Mutex
	routes []Route
}

func NewStack(initial Route) *Stack {
	return &Stack{routes: []Route{initial}}
}

func (s *Stack) Current() Route {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.routes) == 0 {
		return ""
	}
	return s.routes[len(s.routes)-1]
}

func (s *Stack) Push(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes = append(s.routes, route)
}

func (s *Stack) Replace(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.routes) == 0 {
		s.routes = []Route{route}
		return
	}
	s.routes[len(s.routes)-1] = route
}

// Back pops the top route and reports false when there is nothing to go
// back to.
func (s *Stack) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.routes) <= 1 {
		return false
	}
	s.routes = s.routes[:len(s.routes)-1]
	return true
}
