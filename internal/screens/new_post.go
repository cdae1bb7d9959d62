package screens

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ogc16/FitnessApp/internal/client"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/workout"
)

var (
	ErrActivityTypeRequired = errors.New("Please select an activity type")
	ErrDurationRequired     = errors.New("Please enter the duration")
	ErrDurationInvalid      = errors.New("Duration must be a whole number of minutes")
)

type PostPublisher interface {
	GetUser() (*models.AuthUser, error)
	InsertPost(ctx context.Context, post client.NewPost) (*models.Post, error)
	UploadImage(ctx context.Context, path string) (string, error)
}

type NewPost struct {
	backend PostPublisher
	nav     Navigator

	ActivityType string
	Duration     string
	Distance     string
	Content      string
	ImagePath    string
	Loading      bool
	Error        string
}

func NewNewPost(backend PostPublisher, nav Navigator) *NewPost {
	return &NewPost{backend: backend, nav: nav}
}

// Validate checks the form without touching the backend.
func (s *NewPost) Validate() error {
	if strings.TrimSpace(s.ActivityType) == "" {
		return ErrActivityTypeRequired
	}
	if _, ok := workout.ParseActivityType(s.ActivityType); !ok {
		return ErrActivityTypeRequired
	}
	if strings.TrimSpace(s.Duration) == "" {
		return ErrDurationRequired
	}
	if _, err := workout.ParseMinutes(s.Duration); err != nil {
		return ErrDurationInvalid
	}
	return nil
}

func (s *NewPost) Submit(ctx context.Context) error {
	if err := s.Validate(); err != nil {
		s.Error = err.Error()
		return err
	}

	s.Loading = true
	s.Error = ""
	defer func() { s.Loading = false }()

	post, err := s.build(ctx)
	if err == nil {
		_, err = s.backend.InsertPost(ctx, post)
	}
	if err != nil {
		s.Error = err.Error()
		return err
	}

	s.nav.Back()
	return nil
}

func (s *NewPost) build(ctx context.Context) (client.NewPost, error) {
	user, err := s.backend.GetUser()
	if err != nil || user == nil {
		return client.NewPost{}, client.ErrNotAuthenticated
	}

	activityType, _ := workout.ParseActivityType(s.ActivityType)
	minutes, _ := workout.ParseMinutes(s.Duration)

	post := client.NewPost{
		UserID:       user.ID,
		Content:      s.Content,
		ActivityType: string(activityType),
		Duration:     workout.EncodeMinutes(minutes),
		Distance:     optionalFloat(s.Distance),
	}

	if path := strings.TrimSpace(s.ImagePath); path != "" {
		imageURL, err := s.backend.UploadImage(ctx, path)
		if err != nil {
			return client.NewPost{}, err
		}
		post.ImageURL = &imageURL
	}
	return post, nil
}

func (s *NewPost) ButtonLabel() string {
	return buttonLabel(s.Loading, "Post", "Posting...")
}

func (s *NewPost) Render(w io.Writer) {
	fmt.Fprintf(w, "New Post  [%s]\n", s.ButtonLabel())
	if s.Error != "" {
		fmt.Fprintln(w, s.Error)
	}
	fmt.Fprintf(w, "Activity Type: %s\n", strings.Join(workout.ActivityTypeNames(), ", "))
}
