package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogc16/FitnessApp/internal/events"
	"github.com/ogc16/FitnessApp/internal/logs"
	"github.com/ogc16/FitnessApp/internal/models"
	"github.com/ogc16/FitnessApp/internal/observability"
	"github.com/ogc16/FitnessApp/internal/repository"
	"github.com/ogc16/FitnessApp/internal/workout"
)

const (
	DefaultRecentLimit  = 10
	maxPostContentRunes = 2000

	// The post is committed before publishing, so a slow broker only gets
	// this long on the request path.
	defaultPublishTimeout = 3 * time.Second
)

type postStore interface {
	Create(ctx context.Context, input repository.CreatePostInput) (*models.Post, error)
	Feed(ctx context.Context, limit int) ([]models.FeedPost, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]models.Post, error)
}

type PostService struct {
	postRepo       postStore
	publisher      events.Publisher
	publishTimeout time.Duration
}

func NewPostService(postRepo postStore, publisher events.Publisher) *PostService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &PostService{
		postRepo:       postRepo,
		publisher:      publisher,
		publishTimeout: defaultPublishTimeout,
	}
}

type CreatePostInput struct {
	Content      string
	ImageURL     *string
	ActivityType string
	Duration     string
	Distance     *float64
}

func (in *CreatePostInput) normalize() error {
	activity, ok := workout.ParseActivityType(in.ActivityType)
	if !ok {
		return ErrInvalidActivityType
	}
	in.ActivityType = string(activity)

	in.Duration = strings.TrimSpace(in.Duration)
	if !workout.ValidInterval(in.Duration) {
		return ErrInvalidDuration
	}
	if in.Distance != nil && *in.Distance < 0 {
		return fmt.Errorf("%w: distance cannot be negative", ErrInvalidInput)
	}

	in.Content = strings.TrimSpace(in.Content)
	if len([]rune(in.Content)) > maxPostContentRunes {
		return fmt.Errorf("%w: content is too long", ErrInvalidInput)
	}
	if in.ImageURL != nil && strings.TrimSpace(*in.ImageURL) == "" {
		in.ImageURL = nil
	}
	return nil
}

// Create stores the post and then announces it. Announcement failures are
// logged; the post is already committed.
func (s *PostService) Create(ctx context.Context, userID string, input CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	if err := input.normalize(); err != nil {
		return nil, err
	}

	post, err := s.postRepo.Create(ctx, repository.CreatePostInput{
		UserID:       userID,
		Content:      input.Content,
		ImageURL:     input.ImageURL,
		ActivityType: input.ActivityType,
		Duration:     input.Duration,
		Distance:     input.Distance,
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	observability.RecordPostCreated(post.ActivityType)

	publishCtx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(publishCtx, events.NewPostCreated(*post)); err != nil {
		observability.RecordPublishFailure("post_events")
		logs.LogJSON("WARN", "post.created publish failed", map[string]any{
			"error":   err.Error(),
			"post_id": post.ID,
			"user_id": userID,
		})
	}
	return post, nil
}

// Feed returns every post unless limit is positive.
func (s *PostService) Feed(ctx context.Context, limit int) ([]models.FeedPost, error) {
	started := time.Now()
	posts, err := s.postRepo.Feed(ctx, limit)
	observability.ObserveFeedQuery(started)
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	return posts, nil
}

func (s *PostService) Recent(ctx context.Context, userID string, limit int) ([]models.Post, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	posts, err := s.postRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent workouts: %w", err)
	}
	return posts, nil
}
