package screens

import (
	"context"
	"fmt"
	"io"

	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/navigation"
)

type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.Session, error)
}

type Login struct {
	auth Authenticator
	nav  Navigator

	Email    string
	Password string
	Loading  bool
	Error    string
}

func NewLogin(auth Authenticator, nav Navigator) *Login {
	return &Login{auth: auth, nav: nav}
}

func (s *Login) Submit(ctx context.Context) error {
	s.Loading = true
	s.Error = ""
	defer func() { s.Loading = false }()

	if _, err := s.auth.Authenticate(ctx, s.Email, s.Password); err != nil {
		s.Error = err.Error()
		return err
	}

	s.nav.Replace(navigation.RouteTabs)
	return nil
}

func (s *Login) ButtonLabel() string {
	return buttonLabel(s.Loading, "Sign In", "Signing in...")
}

func (s *Login) Render(w io.Writer) {
	fmt.Fprintln(w, "Welcome Back")
	if s.Error != "" {
		fmt.Fprintln(w, s.Error)
	}
	fmt.Fprintf(w, "[%s]\n", s.ButtonLabel())
	fmt.Fprintln(w, "Don't have an account? Sign up")
}
