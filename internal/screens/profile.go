package screens

import (
	"context"
	"fmt"
	"io"

	"github.com/ogc16/FitnessApp/internal/models"
)

type ProfileSource interface {
	Profile(ctx context.Context) (*models.Profile, error)
	Stats(ctx context.Context) (*models.WorkoutStats, error)
}

type Profile struct {
	source ProfileSource

	Profile *models.Profile
	Stats   models.WorkoutStats
	Error   string
}

func NewProfile(source ProfileSource) *Profile {
	return &Profile{source: source}
}

func (s *Profile) Load(ctx context.Context) error {
	s.Error = ""

	profile, err := s.source.Profile(ctx)
	if err != nil {
		s.Error = err.Error()
		return err
	}
	stats, err := s.source.Stats(ctx)
	if err != nil {
		s.Error = err.Error()
		return err
	}

	s.Profile = profile
	s.Stats = *stats
	return nil
}

// TotalHours renders accumulated workout time as H:MM.
func (s *Profile) TotalHours() string {
	return fmt.Sprintf("%d:%02d", s.Stats.TotalMinutes/60, s.Stats.TotalMinutes%60)
}

func (s *Profile) Render(w io.Writer) {
	if s.Error != "" {
		fmt.Fprintln(w, s.Error)
		return
	}
	if s.Profile == nil {
		return
	}

	fmt.Fprintln(w, authorName(s.Profile.Email))
	if s.Profile.FitnessGoal != nil {
		fmt.Fprintln(w, *s.Profile.FitnessGoal)
	}
	if s.Profile.Weight != nil {
		fmt.Fprintf(w, "Weight: %s kg\n", formatNumber(*s.Profile.Weight))
	}
	if s.Profile.Height != nil {
		fmt.Fprintf(w, "Height: %s cm\n", formatNumber(*s.Profile.Height))
	}
	if s.Profile.Age != nil {
		fmt.Fprintf(w, "Age: %d\n", *s.Profile.Age)
	}
	fmt.Fprintf(w, "Workouts: %d\n", s.Stats.Workouts)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Activity Overview")
	fmt.Fprintf(w, "  %s km\n", formatNumber(s.Stats.TotalDistanceKM))
	fmt.Fprintf(w, "  %s Hours\n", s.TotalHours())
	fmt.Fprintf(w, "  %d Activity types\n", s.Stats.ActivityTypes)
}
