package screens

import (
	"context"
	"fmt"
	"io"

	"github.com/ogc16/FitnessApp/internal/client"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/navigation"
)

type Registrar interface {
	Register(ctx context.Context, email, password string) (*models.AuthUser, error)
	InsertProfile(ctx context.Context, profile client.NewProfile) (*models.Profile, error)
}

// Register creates the account and then its profile row. Numeric fields
// that do not parse are sent as null.
type Register struct {
	backend Registrar
	nav     Navigator

	Email       string
	Password    string
	Weight      string
	Height      string
	Age         string
	FitnessGoal string
	Loading     bool
	Error       string
}

func NewRegister(backend Registrar, nav Navigator) *Register {
	return &Register{backend: backend, nav: nav}
}

func (s *Register) Submit(ctx context.Context) error {
	s.Loading = true
	s.Error = ""
	defer func() { s.Loading = false }()

	user, err := s.backend.Register(ctx, s.Email, s.Password)
	if err != nil {
		s.Error = err.Error()
		return err
	}

	if _, err := s.backend.InsertProfile(ctx, s.profile(user.ID)); err != nil {
		s.Error = err.Error()
		return err
	}

	s.nav.Replace(navigation.RouteTabs)
	return nil
}

func (s *Register) profile(userID string) client.NewProfile {
	return client.NewProfile{
		ID:          userID,
		Weight:      optionalFloat(s.Weight),
		Height:      optionalFloat(s.Height),
		Age:         optionalInt(s.Age),
		FitnessGoal: optionalString(s.FitnessGoal),
	}
}

func (s *Register) ButtonLabel() string {
	return buttonLabel(s.Loading, "Create Account", "Creating account...")
}

func (s *Register) Render(w io.Writer) {
	fmt.Fprintln(w, "Create Account")
	if s.Error != "" {
		fmt.Fprintln(w, s.Error)
	}
	fmt.Fprintf(w, "[%s]\n", s.ButtonLabel())
	fmt.Fprintln(w, "Already have an account? Sign in")
}
