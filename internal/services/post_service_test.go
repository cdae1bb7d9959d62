package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogc16/FitnessApp/internal/events"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/repository"
)

type stubPostRepo struct {
	createErr  error
	lastCreate repository.CreatePostInput
	feed       []models.FeedPost
	feedErr    error
	lastLimit  int
	recent     []models.Post
}

func (r *stubPostRepo) Create(_ context.Context, input repository.CreatePostInput) (*models.Post, error) {
	r.lastCreate = input
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &models.Post{
		ID:           "p-1",
		UserID:       input.UserID,
		Content:      input.Content,
		ImageURL:     input.ImageURL,
		ActivityType: input.ActivityType,
		Duration:     input.Duration,
		Distance:     input.Distance,
		CreatedAt:    time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC),
	}, nil
}

func (r *stubPostRepo) Feed(_ context.Context, limit int) ([]models.FeedPost, error) {
	r.lastLimit = limit
	return r.feed, r.feedErr
}

func (r *stubPostRepo) ListByUser(_ context.Context, _ string, limit int) ([]models.Post, error) {
	r.lastLimit = limit
	return r.recent, nil
}

type recordingPublisher struct {
	events []events.PostCreated
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.PostCreated) error {
	p.events = append(p.events, event)
	return p.err
}

func TestPostServiceCreateNormalizesAndPublishes(t *testing.T) {
	repo := &stubPostRepo{}
	publisher := &recordingPublisher{}
	service := NewPostService(repo, publisher)

	distance := 5.2
	blank := "  "
	post, err := service.Create(context.Background(), "u-1", CreatePostInput{
		Content:      "  Morning run  ",
		ImageURL:     &blank,
		ActivityType: "running",
		Duration:     "00:45:00",
		Distance:     &distance,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if repo.lastCreate.ActivityType != "Running" {
		t.Fatalf("expected canonical activity type, got %q", repo.lastCreate.ActivityType)
	}
	if repo.lastCreate.Content != "Morning run" || repo.lastCreate.ImageURL != nil {
		t.Fatalf("unexpected insert %+v", repo.lastCreate)
	}
	if len(publisher.events) != 1 || publisher.events[0].Post.ID != post.ID {
		t.Fatalf("expected one post.created event, got %+v", publisher.events)
	}
}

func TestPostServiceCreateValidation(t *testing.T) {
	negative := -1.0
	cases := []struct {
		name  string
		input CreatePostInput
		want  error
	}{
		{"missing activity", CreatePostInput{Duration: "00:30:00"}, ErrInvalidActivityType},
		{"unknown activity", CreatePostInput{ActivityType: "Skydiving", Duration: "00:30:00"}, ErrInvalidActivityType},
		{"missing duration", CreatePostInput{ActivityType: "Yoga"}, ErrInvalidDuration},
		{"malformed duration", CreatePostInput{ActivityType: "Yoga", Duration: "45"}, ErrInvalidDuration},
		{"zero duration", CreatePostInput{ActivityType: "Yoga", Duration: "00:00:00"}, ErrInvalidDuration},
		{"negative distance", CreatePostInput{ActivityType: "Running", Duration: "00:30:00", Distance: &negative}, ErrInvalidInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubPostRepo{}
			service := NewPostService(repo, nil)
			_, err := service.Create(context.Background(), "u-1", tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if repo.lastCreate.UserID != "" {
				t.Fatal("repository should not be called for invalid input")
			}
		})
	}
}

func TestPostServiceCreateKeepsPostWhenPublishFails(t *testing.T) {
	service := NewPostService(&stubPostRepo{}, &recordingPublisher{err: errors.New("broker down")})

	post, err := service.Create(context.Background(), "u-1", CreatePostInput{ActivityType: "HIIT", Duration: "00:20:00"})
	if err != nil {
		t.Fatalf("expected publish failure to be swallowed, got %v", err)
	}
	if post == nil || post.ID != "p-1" {
		t.Fatalf("unexpected post %+v", post)
	}
}

type blockingPublisher struct {
	hadDeadline bool
}

func (p *blockingPublisher) Publish(ctx context.Context, _ events.PostCreated) error {
	_, p.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func TestPostServiceCreateBoundsSlowPublish(t *testing.T) {
	publisher := &blockingPublisher{}
	service := NewPostService(&stubPostRepo{}, publisher)
	service.publishTimeout = 20 * time.Millisecond

	done := make(chan error, 1)
	go func() {
		_, err := service.Create(context.Background(), "u-1", CreatePostInput{ActivityType: "Running", Duration: "00:30:00"})
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected slow publish to be swallowed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Create blocked on a publisher that never returns")
	}
	if !publisher.hadDeadline {
		t.Fatal("expected publish context to carry a deadline")
	}
}

func TestPostServiceCreateMapsMissingProfile(t *testing.T) {
	repo := &stubPostRepo{createErr: &pgconn.PgError{Code: "23503"}}
	service := NewPostService(repo, nil)

	_, err := service.Create(context.Background(), "u-1", CreatePostInput{ActivityType: "Yoga", Duration: "01:00:00"})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestPostServiceCreateRequiresUser(t *testing.T) {
	service := NewPostService(&stubPostRepo{}, nil)
	if _, err := service.Create(context.Background(), "", CreatePostInput{ActivityType: "Yoga", Duration: "01:00:00"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestPostServiceFeedWithoutLimitReturnsEverything(t *testing.T) {
	repo := &stubPostRepo{feed: []models.FeedPost{{Post: models.Post{ID: "p-2"}}}}
	service := NewPostService(repo, nil)

	posts, err := service.Feed(context.Background(), 0)
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	if repo.lastLimit != 0 || len(posts) != 1 {
		t.Fatalf("unexpected feed call: limit=%d posts=%d", repo.lastLimit, len(posts))
	}

	repo.feedErr = errors.New("timeout")
	if _, err := service.Feed(context.Background(), 5); err == nil {
		t.Fatal("expected feed error")
	}
}

func TestPostServiceRecentDefaultsLimit(t *testing.T) {
	repo := &stubPostRepo{}
	service := NewPostService(repo, nil)
	if _, err := service.Recent(context.Background(), "u-1", -1); err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if repo.lastLimit != DefaultRecentLimit {
		t.Fatalf("expected limit %d, got %d", DefaultRecentLimit, repo.lastLimit)
	}
}
